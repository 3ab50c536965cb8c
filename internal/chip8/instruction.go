package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction is a decoded instruction word with all operand fields
// extracted. The fields are computed once per cycle, independent of which
// operands the opcode actually uses.
type Instruction struct {
	Op   Opcode
	Word uint16

	X   uint8  // bits 8-11
	Y   uint8  // bits 4-7
	KK  uint8  // low byte
	NNN uint16 // low 12 bits
	N   uint8  // low nibble
}

// DecodeInstruction decodes the word and extracts its operand fields.
func DecodeInstruction(word uint16) Instruction {
	return Instruction{
		Op:   Decode(word),
		Word: word,
		X:    uint8((word & 0x0F00) >> 8),
		Y:    uint8((word & 0x00F0) >> 4),
		KK:   uint8(word & 0x00FF),
		NNN:  word & 0x0FFF,
		N:    uint8(word & 0x000F),
	}
}

// mnemonics maps every opcode to the instruction definition it shares its
// assembler mnemonic with.
var mnemonics = [opcodeCount]*chip8.Instruction{
	OpCls:       chip8.Cls,
	OpRet:       chip8.Ret,
	OpJp:        chip8.Jp,
	OpCall:      chip8.Call,
	OpSeVxByte:  chip8.Se,
	OpSneVxByte: chip8.Sne,
	OpSeVxVy:    chip8.Se,
	OpLdVxByte:  chip8.Ld,
	OpAddVxByte: chip8.Add,
	OpLdVxVy:    chip8.Ld,
	OpOrVxVy:    chip8.Or,
	OpAndVxVy:   chip8.And,
	OpXorVxVy:   chip8.Xor,
	OpAddVxVy:   chip8.Add,
	OpSubVxVy:   chip8.Sub,
	OpShrVx:     chip8.Shr,
	OpSubnVxVy:  chip8.Subn,
	OpShlVx:     chip8.Shl,
	OpSneVxVy:   chip8.Sne,
	OpLdIAddr:   chip8.Ld,
	OpJpV0Addr:  chip8.Jp,
	OpRndVxByte: chip8.Rnd,
	OpDrw:       chip8.Drw,
	OpSkpVx:     chip8.Skp,
	OpSknpVx:    chip8.Sknp,
	OpLdVxDT:    chip8.Ld,
	OpLdVxK:     chip8.Ld,
	OpLdDTVx:    chip8.Ld,
	OpLdSTVx:    chip8.Ld,
	OpAddIVx:    chip8.Add,
	OpLdFVx:     chip8.Ld,
	OpLdBVx:     chip8.Ld,
	OpLdIVx:     chip8.Ld,
	OpLdVxI:     chip8.Ld,
}

// Mnemonic returns the assembler mnemonic of the opcode.
func (o Opcode) Mnemonic() string {
	switch o {
	case OpSys:
		return "sys"
	case OpInvalid:
		return ""
	}
	if o >= opcodeCount || mnemonics[o] == nil {
		return ""
	}
	return mnemonics[o].Name
}

// String returns the instruction in assembly notation, for example
// "add V0, V1" or "drw V1, V2, $5". Invalid words are shown as data bytes.
func (i Instruction) String() string {
	name := i.Op.Mnemonic()
	if name == "" {
		return fmt.Sprintf(".word $%04X", i.Word)
	}
	if params := i.params(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// params formats the operand part of the instruction.
func (i Instruction) params() string {
	switch i.Op {
	case OpCls, OpRet:
		return ""
	case OpSys, OpJp, OpCall:
		return fmt.Sprintf("$%03X", i.NNN)
	case OpJpV0Addr:
		return fmt.Sprintf("V0, $%03X", i.NNN)
	case OpSeVxByte, OpSneVxByte, OpLdVxByte, OpAddVxByte, OpRndVxByte:
		return fmt.Sprintf("V%X, $%02X", i.X, i.KK)
	case OpSeVxVy, OpSneVxVy, OpLdVxVy, OpOrVxVy, OpAndVxVy, OpXorVxVy,
		OpAddVxVy, OpSubVxVy, OpSubnVxVy:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case OpShrVx, OpShlVx, OpSkpVx, OpSknpVx:
		return fmt.Sprintf("V%X", i.X)
	case OpLdIAddr:
		return fmt.Sprintf("I, $%03X", i.NNN)
	case OpDrw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)
	case OpLdVxDT:
		return fmt.Sprintf("V%X, DT", i.X)
	case OpLdVxK:
		return fmt.Sprintf("V%X, K", i.X)
	case OpLdDTVx:
		return fmt.Sprintf("DT, V%X", i.X)
	case OpLdSTVx:
		return fmt.Sprintf("ST, V%X", i.X)
	case OpAddIVx:
		return fmt.Sprintf("I, V%X", i.X)
	case OpLdFVx:
		return fmt.Sprintf("F, V%X", i.X)
	case OpLdBVx:
		return fmt.Sprintf("B, V%X", i.X)
	case OpLdIVx:
		return fmt.Sprintf("[I], V%X", i.X)
	case OpLdVxI:
		return fmt.Sprintf("V%X, [I]", i.X)
	}
	return ""
}

