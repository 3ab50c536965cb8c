package chip8

// Opcode is the symbolic instruction tag that a raw 16-bit word decodes to.
type Opcode uint8

// Opcode tags, named after the canonical CHIP-8 instruction patterns.
const (
	OpInvalid    Opcode = iota // no match
	OpSys                      // 0nnn
	OpCls                      // 00E0
	OpRet                      // 00EE
	OpJp                       // 1nnn
	OpCall                     // 2nnn
	OpSeVxByte                 // 3xkk
	OpSneVxByte                // 4xkk
	OpSeVxVy                   // 5xy0
	OpLdVxByte                 // 6xkk
	OpAddVxByte                // 7xkk
	OpLdVxVy                   // 8xy0
	OpOrVxVy                   // 8xy1
	OpAndVxVy                  // 8xy2
	OpXorVxVy                  // 8xy3
	OpAddVxVy                  // 8xy4
	OpSubVxVy                  // 8xy5
	OpShrVx                    // 8xy6
	OpSubnVxVy                 // 8xy7
	OpShlVx                    // 8xyE
	OpSneVxVy                  // 9xy0
	OpLdIAddr                  // Annn
	OpJpV0Addr                 // Bnnn
	OpRndVxByte                // Cxkk
	OpDrw                      // Dxyn
	OpSkpVx                    // Ex9E
	OpSknpVx                   // ExA1
	OpLdVxDT                   // Fx07
	OpLdVxK                    // Fx0A
	OpLdDTVx                   // Fx15
	OpLdSTVx                   // Fx18
	OpAddIVx                   // Fx1E
	OpLdFVx                    // Fx29
	OpLdBVx                    // Fx33
	OpLdIVx                    // Fx55
	OpLdVxI                    // Fx65

	opcodeCount
)

var opcodeNames = [opcodeCount]string{
	OpInvalid:   "INVALID",
	OpSys:       "SYS_ADDR",
	OpCls:       "CLS",
	OpRet:       "RET",
	OpJp:        "JP_ADDR",
	OpCall:      "CALL_ADDR",
	OpSeVxByte:  "SE_VX_BYTE",
	OpSneVxByte: "SNE_VX_BYTE",
	OpSeVxVy:    "SE_VX_VY",
	OpLdVxByte:  "LD_VX_BYTE",
	OpAddVxByte: "ADD_VX_BYTE",
	OpLdVxVy:    "LD_VX_VY",
	OpOrVxVy:    "OR_VX_VY",
	OpAndVxVy:   "AND_VX_VY",
	OpXorVxVy:   "XOR_VX_VY",
	OpAddVxVy:   "ADD_VX_VY",
	OpSubVxVy:   "SUB_VX_VY",
	OpShrVx:     "SHR_VX",
	OpSubnVxVy:  "SUBN_VX_VY",
	OpShlVx:     "SHL_VX",
	OpSneVxVy:   "SNE_VX_VY",
	OpLdIAddr:   "LD_I_ADDR",
	OpJpV0Addr:  "JP_V0_ADDR",
	OpRndVxByte: "RND_VX_BYTE",
	OpDrw:       "DRW_VX_VY_N",
	OpSkpVx:     "SKP_VX",
	OpSknpVx:    "SKNP_VX",
	OpLdVxDT:    "LD_VX_DT",
	OpLdVxK:     "LD_VX_K",
	OpLdDTVx:    "LD_DT_VX",
	OpLdSTVx:    "LD_ST_VX",
	OpAddIVx:    "ADD_I_VX",
	OpLdFVx:     "LD_F_VX",
	OpLdBVx:     "LD_B_VX",
	OpLdIVx:     "LD_I_VX",
	OpLdVxI:     "LD_VX_I",
}

// String returns a stable identifier of the opcode for logging.
func (o Opcode) String() string {
	if o >= opcodeCount {
		return opcodeNames[OpInvalid]
	}
	return opcodeNames[o]
}

// aluOpcodes maps the low nibble of an 8xyN word.
var aluOpcodes = [16]Opcode{
	0x0: OpLdVxVy,
	0x1: OpOrVxVy,
	0x2: OpAndVxVy,
	0x3: OpXorVxVy,
	0x4: OpAddVxVy,
	0x5: OpSubVxVy,
	0x6: OpShrVx,
	0x7: OpSubnVxVy,
	0xE: OpShlVx,
}

// miscOpcodes maps the low byte of an FxNN word.
var miscOpcodes = map[uint8]Opcode{
	0x07: OpLdVxDT,
	0x0A: OpLdVxK,
	0x15: OpLdDTVx,
	0x18: OpLdSTVx,
	0x1E: OpAddIVx,
	0x29: OpLdFVx,
	0x33: OpLdBVx,
	0x55: OpLdIVx,
	0x65: OpLdVxI,
}

// Decode returns the opcode tag of the given instruction word or OpInvalid
// if the word does not denote any instruction.
func Decode(word uint16) Opcode {
	switch word & 0xF000 {
	case 0x0000:
		switch word {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		default:
			return OpSys
		}
	case 0x1000:
		return OpJp
	case 0x2000:
		return OpCall
	case 0x3000:
		return OpSeVxByte
	case 0x4000:
		return OpSneVxByte
	case 0x5000:
		return OpSeVxVy
	case 0x6000:
		return OpLdVxByte
	case 0x7000:
		return OpAddVxByte
	case 0x8000:
		return aluOpcodes[word&0x000F]
	case 0x9000:
		return OpSneVxVy
	case 0xA000:
		return OpLdIAddr
	case 0xB000:
		return OpJpV0Addr
	case 0xC000:
		return OpRndVxByte
	case 0xD000:
		return OpDrw
	case 0xE000:
		switch word & 0xF0FF {
		case 0xE09E:
			return OpSkpVx
		case 0xE0A1:
			return OpSknpVx
		}
	case 0xF000:
		if op, ok := miscOpcodes[uint8(word)]; ok {
			return op
		}
	}
	return OpInvalid
}
