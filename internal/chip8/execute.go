package chip8

import "fmt"

// execute applies the effect of the instruction. Instructions that set the
// program counter store target-2, so that the common increment at the end
// lands on the target. Skips add one extra increment.
func (m *Machine) execute(ins Instruction) (Status, error) {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpInvalid:
		return StatusHalted, ErrInvalidOpcode

	case OpSys:
		// native machine code routines are not supported

	case OpCls:
		m.display.Clear()

	case OpRet:
		if m.sp < 0 {
			return StatusHalted, ErrStackUnderflow
		}
		m.pc = m.stack[m.sp]
		m.sp--

	case OpJp:
		m.pc = ins.NNN - 2

	case OpCall:
		if m.sp >= StackSize-1 {
			return StatusHalted, fmt.Errorf("%w: %d nested calls", ErrStackOverflow, StackSize)
		}
		m.sp++
		m.stack[m.sp] = m.pc
		m.pc = ins.NNN - 2

	case OpSeVxByte:
		m.skipIf(m.v[x] == ins.KK)

	case OpSneVxByte:
		m.skipIf(m.v[x] != ins.KK)

	case OpSeVxVy:
		m.skipIf(m.v[x] == m.v[y])

	case OpSneVxVy:
		m.skipIf(m.v[x] != m.v[y])

	case OpLdVxByte:
		m.v[x] = ins.KK

	case OpAddVxByte:
		m.v[x] += ins.KK

	case OpLdVxVy:
		m.v[x] = m.v[y]

	case OpOrVxVy:
		m.v[x] |= m.v[y]

	case OpAndVxVy:
		m.v[x] &= m.v[y]

	case OpXorVxVy:
		m.v[x] ^= m.v[y]

	case OpAddVxVy:
		sum := uint16(m.v[x]) + uint16(m.v[y])
		m.v[x] = uint8(sum)
		m.v[flag] = boolToByte(sum > 0xFF)

	case OpSubVxVy:
		vx, vy := m.v[x], m.v[y]
		m.v[x] = absDiff(vx, vy)
		m.v[flag] = boolToByte(vy <= vx)

	case OpSubnVxVy:
		vx, vy := m.v[x], m.v[y]
		m.v[x] = absDiff(vy, vx)
		m.v[flag] = boolToByte(vx <= vy)

	case OpShrVx:
		vx := m.v[x]
		m.v[x] = vx >> 1
		m.v[flag] = vx & 0x01

	case OpShlVx:
		vx := m.v[x]
		m.v[x] = vx << 1
		m.v[flag] = vx >> 7

	case OpLdIAddr:
		m.i = ins.NNN

	case OpJpV0Addr:
		m.pc = ins.NNN + uint16(m.v[0]) - 2

	case OpRndVxByte:
		m.v[x] = uint8(m.rng.Uint32()) & ins.KK

	case OpDrw:
		n := uint16(ins.N)
		if err := m.checkRead(m.i, n); err != nil {
			return StatusHalted, err
		}
		collided := m.display.Draw(m.memory[m.i:m.i+n], int(m.v[x]), int(m.v[y]))
		m.v[flag] = boolToByte(collided)

	case OpSkpVx, OpSknpVx:
		key := m.v[x]
		if key >= KeyCount {
			return StatusHalted, fmt.Errorf("%w: V%X=%d", ErrInvalidKey, x, key)
		}
		m.skipIf(m.keys[key] == (ins.Op == OpSkpVx))

	case OpLdVxDT:
		m.v[x] = m.delayTimer

	case OpLdVxK:
		key, ok := m.pressedKey()
		if !ok {
			return StatusAwaitingKey, nil
		}
		m.v[x] = key

	case OpLdDTVx:
		m.delayTimer = m.v[x]

	case OpLdSTVx:
		m.soundTimer = m.v[x]

	case OpAddIVx:
		m.i += uint16(m.v[x])

	case OpLdFVx:
		m.i = uint16(m.v[x]) * glyphSize

	case OpLdBVx:
		if err := m.checkWrite(m.i, 3); err != nil {
			return StatusHalted, err
		}
		vx := m.v[x]
		m.memory[m.i] = vx / 100
		m.memory[m.i+1] = vx / 10 % 10
		m.memory[m.i+2] = vx % 10

	case OpLdIVx:
		count := uint16(x) + 1
		if err := m.checkWrite(m.i, count); err != nil {
			return StatusHalted, err
		}
		copy(m.memory[m.i:m.i+count], m.v[:count])

	case OpLdVxI:
		count := uint16(x) + 1
		if err := m.checkRead(m.i, count); err != nil {
			return StatusHalted, err
		}
		copy(m.v[:count], m.memory[m.i:m.i+count])

	default:
		return StatusHalted, fmt.Errorf("%w: unhandled %s", ErrInvalidOpcode, ins.Op)
	}

	m.pc += 2
	return StatusRunning, nil
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += 2
	}
}

// pressedKey returns the lowest currently pressed key.
func (m *Machine) pressedKey() (uint8, bool) {
	for key, pressed := range m.keys {
		if pressed {
			return uint8(key), true
		}
	}
	return 0, false
}

// checkRead verifies that count bytes starting at address are inside memory.
func (m *Machine) checkRead(address, count uint16) error {
	if int(address)+int(count) > MemorySize {
		return fmt.Errorf("%w: %d bytes at $%04X", ErrAddressOutOfRange, count, address)
	}
	return nil
}

// checkWrite verifies that count bytes starting at address are inside the
// writable part of memory.
func (m *Machine) checkWrite(address, count uint16) error {
	if err := m.checkRead(address, count); err != nil {
		return err
	}
	if address < ProgramStart {
		return fmt.Errorf("%w: %d bytes at $%04X", ErrReservedWrite, count, address)
	}
	return nil
}

// absDiff returns |a-b|. The subtract instructions store the absolute
// difference instead of the two's complement wraparound result.
func absDiff(a, b uint8) uint8 {
	if a >= b {
		return a - b
	}
	return b - a
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
