// Package chip8 implements the CHIP-8 virtual machine: the instruction
// decoder, the execution engine and the monochrome framebuffer.
//
// A Machine is driven from the outside. The caller loads a program image,
// calls Step once per executed instruction and TickTimers once per timer
// tick, updates the key states with SetKey and reads the display through
// Snapshot. All state is owned by the Machine instance, there is no package
// level mutable state.
//
// Memory layout:
//
//	0x000-0x04F: built-in hex digit font
//	0x050-0x1FF: reserved interpreter area
//	0x200-0xFFF: program image and data
package chip8

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// Machine dimensions.
const (
	MemorySize     = 0x1000
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart
	RegisterCount  = 16
	StackSize      = 16
	KeyCount       = 16
)

// flag is the index of the VF register that carries carry, borrow and
// collision results.
const flag = 0xF

// Status describes the state of the machine after a step.
type Status uint8

const (
	// StatusRunning means the instruction executed and the program counter
	// points at the next instruction.
	StatusRunning Status = iota
	// StatusAwaitingKey means a wait-for-key instruction found no pressed
	// key. The program counter was not advanced, the next Step retries.
	StatusAwaitingKey
	// StatusHalted means a fatal error stopped the machine.
	StatusHalted
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusAwaitingKey:
		return "awaiting key"
	case StatusHalted:
		return "halted"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Beeper is the audio collaborator that is told to play the tone.
type Beeper interface {
	PlayTone()
}

// Option configures a Machine.
type Option func(*Machine)

// WithSeed makes the random instruction deterministic.
func WithSeed(seed uint64) Option {
	return func(m *Machine) {
		m.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRandomSource sets the source of the random instruction.
func WithRandomSource(src rand.Source) Option {
	return func(m *Machine) {
		m.rng = rand.New(src)
	}
}

// WithBeeper sets the audio collaborator.
func WithBeeper(beeper Beeper) Option {
	return func(m *Machine) {
		m.beeper = beeper
	}
}

// WithLogger sets the logger used for tracing and fatal conditions.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithTrace enables debug logging of every executed instruction.
func WithTrace(trace bool) Option {
	return func(m *Machine) {
		m.trace = trace
	}
}

// Machine is a CHIP-8 virtual machine.
type Machine struct {
	logger *log.Logger
	beeper Beeper
	rng    *rand.Rand
	trace  bool

	memory     [MemorySize]byte
	v          [RegisterCount]uint8
	i          uint16
	pc         uint16
	stack      [StackSize]uint16
	sp         int // index of the top of stack, -1 when empty
	delayTimer uint8
	soundTimer uint8
	keys       [KeyCount]bool
	display    *Framebuffer

	program []byte
	status  Status
	err     error
}

// New returns a machine in power-on state with the font loaded.
func New(opts ...Option) *Machine {
	m := &Machine{
		display: NewFramebuffer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	m.powerOn()
	return m
}

func (m *Machine) powerOn() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[:], font[:])
	m.v = [RegisterCount]uint8{}
	m.i = 0
	m.pc = ProgramStart
	m.stack = [StackSize]uint16{}
	m.sp = -1
	m.delayTimer = 0
	m.soundTimer = 0
	m.keys = [KeyCount]bool{}
	m.display.Clear()
	m.status = StatusRunning
	m.err = nil
}

// Load copies the program image into memory at the program start address.
// A previously loaded image is replaced.
func (m *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	clear(m.memory[ProgramStart:])
	copy(m.memory[ProgramStart:], program)
	m.program = append(m.program[:0], program...)
	return nil
}

// Reset restores the power-on state and reloads the last loaded program.
func (m *Machine) Reset() {
	m.powerOn()
	copy(m.memory[ProgramStart:], m.program)
}

// Step executes the instruction at the program counter.
// A fatal error halts the machine, every following call returns the same
// error.
func (m *Machine) Step() (Status, error) {
	if m.err != nil {
		return StatusHalted, m.err
	}

	pc := m.pc
	word, err := m.fetch()
	if err != nil {
		return m.halt(pc, 0, err)
	}

	ins := DecodeInstruction(word)
	if m.trace && m.logger != nil {
		m.logger.Debug("Executing",
			log.Hex("pc", pc),
			log.Hex("word", word),
			log.String("instruction", ins.String()))
	}

	status, err := m.execute(ins)
	if err != nil {
		return m.halt(pc, word, err)
	}
	m.status = status
	return status, nil
}

func (m *Machine) fetch() (uint16, error) {
	if int(m.pc)+1 >= MemorySize {
		return 0, fmt.Errorf("%w: program counter $%04X", ErrAddressOutOfRange, m.pc)
	}
	return uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1]), nil
}

func (m *Machine) halt(pc, word uint16, err error) (Status, error) {
	m.status = StatusHalted
	m.err = &ExecError{PC: pc, Word: word, Err: err}
	if m.logger != nil {
		m.logger.Error("Machine halted",
			log.Hex("pc", pc),
			log.Hex("word", word),
			log.Err(err))
	}
	return StatusHalted, m.err
}

// TickTimers decrements the delay and sound timers. The beeper is told to
// play when the sound timer reaches zero.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
		if m.soundTimer == 0 && m.beeper != nil {
			m.beeper.PlayTone()
		}
	}
}

// SetKey updates the state of the logical key 0x0-0xF.
func (m *Machine) SetKey(index int, pressed bool) error {
	if index < 0 || index >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, index)
	}
	m.keys[index] = pressed
	return nil
}

// Keys returns the current key states.
func (m *Machine) Keys() [KeyCount]bool {
	return m.keys
}

// Framebuffer returns the display of the machine.
func (m *Machine) Framebuffer() *Framebuffer {
	return m.display
}

// Snapshot returns a copy of the display content.
func (m *Machine) Snapshot() Snapshot {
	return m.display.Snapshot()
}

// Status returns the status of the last step.
func (m *Machine) Status() Status { return m.status }

// Err returns the error that halted the machine, if any.
func (m *Machine) Err() error { return m.err }

// PC returns the program counter.
func (m *Machine) PC() uint16 { return m.pc }

// I returns the index register.
func (m *Machine) I() uint16 { return m.i }

// V returns the value of register Vx. The index is taken modulo 16.
func (m *Machine) V(x int) uint8 { return m.v[x&0xF] }

// DelayTimer returns the delay timer value.
func (m *Machine) DelayTimer() uint8 { return m.delayTimer }

// SoundTimer returns the sound timer value.
func (m *Machine) SoundTimer() uint8 { return m.soundTimer }

// SetDelayTimer sets the delay timer value.
func (m *Machine) SetDelayTimer(value uint8) { m.delayTimer = value }

// SetSoundTimer sets the sound timer value.
func (m *Machine) SetSoundTimer(value uint8) { m.soundTimer = value }

// StackDepth returns the number of return addresses on the stack.
func (m *Machine) StackDepth() int { return m.sp + 1 }

// Memory returns the byte at the address, taken modulo the memory size.
func (m *Machine) Memory(address uint16) byte {
	return m.memory[address%MemorySize]
}
