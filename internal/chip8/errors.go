package chip8

import (
	"errors"
	"fmt"
)

// Errors reported by the machine. Every error returned by Step is an
// *ExecError wrapping one of these.
var (
	ErrInvalidOpcode     = errors.New("invalid opcode")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrInvalidKey        = errors.New("invalid key index")
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrReservedWrite     = errors.New("write to reserved interpreter memory")
	ErrProgramTooLarge   = errors.New("program too large")
)

// ExecError describes a fatal condition that halted the machine.
type ExecError struct {
	PC   uint16 // address of the instruction that failed
	Word uint16 // raw instruction word, 0 if it could not be fetched
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("executing $%04X at address $%03X: %s", e.Word, e.PC, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
