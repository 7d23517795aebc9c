package nes

// AddressingMode tells the CPU where to find the operand for an
// instruction. Most modes resolve to a 16-bit effective address; Immediate
// resolves to a pseudo-address (the operand byte itself, sitting right
// after the opcode); NoneAddressing covers implied, relative and
// accumulator instructions, which never go through the generic resolver
// and instead read whatever operand they need (if any) directly off PC
// inside their own handler.
type AddressingMode byte

const (
	// NoneAddressing is used by implied instructions (INX, CLC, ...),
	// relative branches, and accumulator shifts (ASL A, ...). Calling
	// resolveOperand with this mode is a programming error.
	NoneAddressing AddressingMode = iota

	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	IndirectX
	IndirectY
)

// Instruction is a single entry of the static opcode table: everything the
// fetch-decode-execute loop needs to know about an opcode byte before it
// dispatches to the instruction's semantic handler.
type Instruction struct {
	Opcode   byte
	Mnemonic string

	// Length is the total size of the instruction in bytes, including the
	// opcode byte itself. Instructions that go through resolveOperand
	// advance PC past their operand there; step adds Length-1 to PC only
	// when the handler left PC where the opcode fetch put it (implied
	// instructions, untaken branches, a halting BRK).
	Length byte

	Mode   AddressingMode
	Cycles byte
}

// instructionTable is the full documented 6502 opcode catalogue, built
// once and never mutated. A zero-value entry (empty Mnemonic) marks an
// opcode this core does not implement — illegal opcodes and decimal-mode
// variants are intentionally absent.
var instructionTable = [256]Instruction{
	// --- System ---
	0x00: {0x00, "BRK", 1, NoneAddressing, 7},
	0xEA: {0xEA, "NOP", 1, NoneAddressing, 2},
	0x40: {0x40, "RTI", 1, NoneAddressing, 6},

	// --- Jumps & subroutines ---
	0x4C: {0x4C, "JMP", 3, Absolute, 3},
	0x6C: {0x6C, "JMP", 3, NoneAddressing, 5}, // indirect
	0x20: {0x20, "JSR", 3, Absolute, 6},
	0x60: {0x60, "RTS", 1, NoneAddressing, 6},

	// --- Load/store ---
	0xA9: {0xA9, "LDA", 2, Immediate, 2},
	0xA5: {0xA5, "LDA", 2, ZeroPage, 3},
	0xB5: {0xB5, "LDA", 2, ZeroPageX, 4},
	0xAD: {0xAD, "LDA", 3, Absolute, 4},
	0xBD: {0xBD, "LDA", 3, AbsoluteX, 4},
	0xB9: {0xB9, "LDA", 3, AbsoluteY, 4},
	0xA1: {0xA1, "LDA", 2, IndirectX, 6},
	0xB1: {0xB1, "LDA", 2, IndirectY, 5},

	0xA2: {0xA2, "LDX", 2, Immediate, 2},
	0xA6: {0xA6, "LDX", 2, ZeroPage, 3},
	0xB6: {0xB6, "LDX", 2, ZeroPageY, 4},
	0xAE: {0xAE, "LDX", 3, Absolute, 4},
	0xBE: {0xBE, "LDX", 3, AbsoluteY, 4},

	0xA0: {0xA0, "LDY", 2, Immediate, 2},
	0xA4: {0xA4, "LDY", 2, ZeroPage, 3},
	0xB4: {0xB4, "LDY", 2, ZeroPageX, 4},
	0xAC: {0xAC, "LDY", 3, Absolute, 4},
	0xBC: {0xBC, "LDY", 3, AbsoluteX, 4},

	0x85: {0x85, "STA", 2, ZeroPage, 3},
	0x95: {0x95, "STA", 2, ZeroPageX, 4},
	0x8D: {0x8D, "STA", 3, Absolute, 4},
	0x9D: {0x9D, "STA", 3, AbsoluteX, 5},
	0x99: {0x99, "STA", 3, AbsoluteY, 5},
	0x81: {0x81, "STA", 2, IndirectX, 6},
	0x91: {0x91, "STA", 2, IndirectY, 6},

	0x86: {0x86, "STX", 2, ZeroPage, 3},
	0x96: {0x96, "STX", 2, ZeroPageY, 4},
	0x8E: {0x8E, "STX", 3, Absolute, 4},

	0x84: {0x84, "STY", 2, ZeroPage, 3},
	0x94: {0x94, "STY", 2, ZeroPageX, 4},
	0x8C: {0x8C, "STY", 3, Absolute, 4},

	// --- Register transfers ---
	0xAA: {0xAA, "TAX", 1, NoneAddressing, 2},
	0xA8: {0xA8, "TAY", 1, NoneAddressing, 2},
	0xBA: {0xBA, "TSX", 1, NoneAddressing, 2},
	0x8A: {0x8A, "TXA", 1, NoneAddressing, 2},
	0x9A: {0x9A, "TXS", 1, NoneAddressing, 2},
	0x98: {0x98, "TYA", 1, NoneAddressing, 2},

	// --- Stack ---
	0x48: {0x48, "PHA", 1, NoneAddressing, 3},
	0x08: {0x08, "PHP", 1, NoneAddressing, 3},
	0x68: {0x68, "PLA", 1, NoneAddressing, 4},
	0x28: {0x28, "PLP", 1, NoneAddressing, 4},

	// --- Logic ---
	0x29: {0x29, "AND", 2, Immediate, 2},
	0x25: {0x25, "AND", 2, ZeroPage, 3},
	0x35: {0x35, "AND", 2, ZeroPageX, 4},
	0x2D: {0x2D, "AND", 3, Absolute, 4},
	0x3D: {0x3D, "AND", 3, AbsoluteX, 4},
	0x39: {0x39, "AND", 3, AbsoluteY, 4},
	0x21: {0x21, "AND", 2, IndirectX, 6},
	0x31: {0x31, "AND", 2, IndirectY, 5},

	0x49: {0x49, "EOR", 2, Immediate, 2},
	0x45: {0x45, "EOR", 2, ZeroPage, 3},
	0x55: {0x55, "EOR", 2, ZeroPageX, 4},
	0x4D: {0x4D, "EOR", 3, Absolute, 4},
	0x5D: {0x5D, "EOR", 3, AbsoluteX, 4},
	0x59: {0x59, "EOR", 3, AbsoluteY, 4},
	0x41: {0x41, "EOR", 2, IndirectX, 6},
	0x51: {0x51, "EOR", 2, IndirectY, 5},

	0x09: {0x09, "ORA", 2, Immediate, 2},
	0x05: {0x05, "ORA", 2, ZeroPage, 3},
	0x15: {0x15, "ORA", 2, ZeroPageX, 4},
	0x0D: {0x0D, "ORA", 3, Absolute, 4},
	0x1D: {0x1D, "ORA", 3, AbsoluteX, 4},
	0x19: {0x19, "ORA", 3, AbsoluteY, 4},
	0x01: {0x01, "ORA", 2, IndirectX, 6},
	0x11: {0x11, "ORA", 2, IndirectY, 5},

	0x24: {0x24, "BIT", 2, ZeroPage, 3},
	0x2C: {0x2C, "BIT", 3, Absolute, 4},

	// --- Arithmetic ---
	0x69: {0x69, "ADC", 2, Immediate, 2},
	0x65: {0x65, "ADC", 2, ZeroPage, 3},
	0x75: {0x75, "ADC", 2, ZeroPageX, 4},
	0x6D: {0x6D, "ADC", 3, Absolute, 4},
	0x7D: {0x7D, "ADC", 3, AbsoluteX, 4},
	0x79: {0x79, "ADC", 3, AbsoluteY, 4},
	0x61: {0x61, "ADC", 2, IndirectX, 6},
	0x71: {0x71, "ADC", 2, IndirectY, 5},

	0xE9: {0xE9, "SBC", 2, Immediate, 2},
	0xE5: {0xE5, "SBC", 2, ZeroPage, 3},
	0xF5: {0xF5, "SBC", 2, ZeroPageX, 4},
	0xED: {0xED, "SBC", 3, Absolute, 4},
	0xFD: {0xFD, "SBC", 3, AbsoluteX, 4},
	0xF9: {0xF9, "SBC", 3, AbsoluteY, 4},
	0xE1: {0xE1, "SBC", 2, IndirectX, 6},
	0xF1: {0xF1, "SBC", 2, IndirectY, 5},

	// --- Compares ---
	0xC9: {0xC9, "CMP", 2, Immediate, 2},
	0xC5: {0xC5, "CMP", 2, ZeroPage, 3},
	0xD5: {0xD5, "CMP", 2, ZeroPageX, 4},
	0xCD: {0xCD, "CMP", 3, Absolute, 4},
	0xDD: {0xDD, "CMP", 3, AbsoluteX, 4},
	0xD9: {0xD9, "CMP", 3, AbsoluteY, 4},
	0xC1: {0xC1, "CMP", 2, IndirectX, 6},
	0xD1: {0xD1, "CMP", 2, IndirectY, 5},

	0xE0: {0xE0, "CPX", 2, Immediate, 2},
	0xE4: {0xE4, "CPX", 2, ZeroPage, 3},
	0xEC: {0xEC, "CPX", 3, Absolute, 4},

	0xC0: {0xC0, "CPY", 2, Immediate, 2},
	0xC4: {0xC4, "CPY", 2, ZeroPage, 3},
	0xCC: {0xCC, "CPY", 3, Absolute, 4},

	// --- Increments & decrements ---
	0xE6: {0xE6, "INC", 2, ZeroPage, 5},
	0xF6: {0xF6, "INC", 2, ZeroPageX, 6},
	0xEE: {0xEE, "INC", 3, Absolute, 6},
	0xFE: {0xFE, "INC", 3, AbsoluteX, 7},
	0xE8: {0xE8, "INX", 1, NoneAddressing, 2},
	0xC8: {0xC8, "INY", 1, NoneAddressing, 2},

	0xC6: {0xC6, "DEC", 2, ZeroPage, 5},
	0xD6: {0xD6, "DEC", 2, ZeroPageX, 6},
	0xCE: {0xCE, "DEC", 3, Absolute, 6},
	0xDE: {0xDE, "DEC", 3, AbsoluteX, 7},
	0xCA: {0xCA, "DEX", 1, NoneAddressing, 2},
	0x88: {0x88, "DEY", 1, NoneAddressing, 2},

	// --- Shifts & rotates ---
	0x0A: {0x0A, "ASL", 1, NoneAddressing, 2}, // accumulator
	0x06: {0x06, "ASL", 2, ZeroPage, 5},
	0x16: {0x16, "ASL", 2, ZeroPageX, 6},
	0x0E: {0x0E, "ASL", 3, Absolute, 6},
	0x1E: {0x1E, "ASL", 3, AbsoluteX, 7},

	0x4A: {0x4A, "LSR", 1, NoneAddressing, 2}, // accumulator
	0x46: {0x46, "LSR", 2, ZeroPage, 5},
	0x56: {0x56, "LSR", 2, ZeroPageX, 6},
	0x4E: {0x4E, "LSR", 3, Absolute, 6},
	0x5E: {0x5E, "LSR", 3, AbsoluteX, 7},

	0x2A: {0x2A, "ROL", 1, NoneAddressing, 2}, // accumulator
	0x26: {0x26, "ROL", 2, ZeroPage, 5},
	0x36: {0x36, "ROL", 2, ZeroPageX, 6},
	0x2E: {0x2E, "ROL", 3, Absolute, 6},
	0x3E: {0x3E, "ROL", 3, AbsoluteX, 7},

	0x6A: {0x6A, "ROR", 1, NoneAddressing, 2}, // accumulator
	0x66: {0x66, "ROR", 2, ZeroPage, 5},
	0x76: {0x76, "ROR", 2, ZeroPageX, 6},
	0x6E: {0x6E, "ROR", 3, Absolute, 6},
	0x7E: {0x7E, "ROR", 3, AbsoluteX, 7},

	// --- Branches ---
	0x90: {0x90, "BCC", 2, NoneAddressing, 2},
	0xB0: {0xB0, "BCS", 2, NoneAddressing, 2},
	0xF0: {0xF0, "BEQ", 2, NoneAddressing, 2},
	0xD0: {0xD0, "BNE", 2, NoneAddressing, 2},
	0x30: {0x30, "BMI", 2, NoneAddressing, 2},
	0x10: {0x10, "BPL", 2, NoneAddressing, 2},
	0x50: {0x50, "BVC", 2, NoneAddressing, 2},
	0x70: {0x70, "BVS", 2, NoneAddressing, 2},

	// --- Flag changes ---
	0x18: {0x18, "CLC", 1, NoneAddressing, 2},
	0x38: {0x38, "SEC", 1, NoneAddressing, 2},
	0x58: {0x58, "CLI", 1, NoneAddressing, 2},
	0x78: {0x78, "SEI", 1, NoneAddressing, 2},
	0xD8: {0xD8, "CLD", 1, NoneAddressing, 2},
	0xF8: {0xF8, "SED", 1, NoneAddressing, 2},
	0xB8: {0xB8, "CLV", 1, NoneAddressing, 2},
}

// Lookup returns the descriptor for opcode, or ok=false if the core does
// not implement it (either genuinely illegal, or one of the undocumented
// opcodes spec.md's Non-goals exclude).
func Lookup(opcode byte) (inst Instruction, ok bool) {
	inst = instructionTable[opcode]
	if inst.Mnemonic == "" {
		return Instruction{}, false
	}
	return inst, true
}
