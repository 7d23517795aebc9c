package nes

import "fmt"

const (
	nmiVector   = uint16(0xFFFA)
	resetVector = uint16(0xFFFC)
	irqVector   = uint16(0xFFFE)

	stackBase = uint16(0x0100)
)

// Flags holds the eight bits of the processor status register.
type Flags byte

const (
	// Carry holds the carry-out of ADC/shift instructions, or the
	// borrow-complement of SBC/CMP. Set/cleared directly by SEC/CLC.
	Carry Flags = 1 << iota

	// Zero is set when an instruction's result byte is zero.
	Zero

	// InterruptDisable inhibits IRQ (not NMI) while set. Set/cleared
	// directly by SEI/CLI.
	InterruptDisable

	// Decimal selects BCD mode on a real 6502; the NES's 2A03 ignores it,
	// so ADC/SBC never consult it here. It is still settable via SED/CLD
	// so PHP/PLP round-trip the bit faithfully.
	Decimal

	// Break distinguishes a BRK/PHP push (1) from a hardware interrupt
	// push (0). It is not a real register bit — only ever observed in a
	// byte that has been pushed to the stack.
	Break

	// Unused is always observed as 1 from inside the CPU.
	Unused

	// Overflow is set by ADC/SBC on signed overflow, and loaded directly
	// from bit 6 of the operand by BIT.
	Overflow

	// Negative mirrors bit 7 of the last flag-affecting result.
	Negative
)

// BreakMode selects what BRK does once its handler runs.
type BreakMode int

const (
	// BreakHalts makes BRK the signal Run/RunWithCallback use to stop —
	// the mode used by the unit tests and by the end-to-end scenarios in
	// this package, where a trailing 0x00 marks the end of a program.
	BreakHalts BreakMode = iota

	// BreakInterrupts makes BRK behave like the real hardware interrupt
	// it is: push PC+1 and P (with Break set), raise InterruptDisable,
	// and load PC from the IRQ/BRK vector. Execution continues.
	BreakInterrupts
)

// CPU is the 6502 register file plus the fetch-decode-execute loop. It
// operates over any Memory — a Bus when embedded in a full system, or a
// flat buffer when driven standalone in tests.
type CPU struct {
	A, X, Y byte
	SP      byte
	PC      uint16
	P       Flags

	Cycles uint64

	// Break selects BRK's behavior. Zero value is BreakHalts.
	Break BreakMode

	mem Memory
}

// NewCPU constructs a CPU over mem. Reset must be called (directly or via
// LoadAndRun; Load does not reset) before Run/RunWithCallback.
func NewCPU(mem Memory) *CPU {
	return &CPU{mem: mem}
}

// Reset reproduces power-on/reset register state: A, X, Y zeroed, status
// set to InterruptDisable|Unused, SP set to 0xFD, PC loaded from the
// reset vector at 0xFFFC/0xFFFD.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.P = InterruptDisable | Unused
	c.SP = 0xFD
	c.PC = ReadU16(c.mem, resetVector)
}

// Load copies program into memory at 0x8000 and points the reset vector
// at it. It is meant for a CPU built over a flat test buffer — loading a
// program through a real Bus would hit cartridge PRG-ROM, which rejects
// writes.
func (c *CPU) Load(program []byte) {
	const base = uint16(0x8000)
	for i, b := range program {
		c.mem.Write(base+uint16(i), b)
	}
	WriteU16(c.mem, resetVector, base)
}

// LoadAndRun loads program, resets, and runs to completion.
func (c *CPU) LoadAndRun(program []byte) {
	c.Load(program)
	c.Reset()
	c.Run()
}

// Run executes instructions until BRK halts (in BreakHalts mode) or the
// CPU faults.
func (c *CPU) Run() {
	c.RunWithCallback(nil)
}

// RunWithCallback runs like Run, invoking cb with a trace snapshot after
// every completed instruction. cb may be nil.
func (c *CPU) RunWithCallback(cb func(*CPU, TraceEntry)) {
	for {
		if c.step(cb) {
			return
		}
	}
}

// step executes a single instruction and reports true if it halted the
// CPU (BRK under BreakHalts).
func (c *CPU) step(cb func(*CPU, TraceEntry)) bool {
	opcode := c.mem.Read(c.PC)
	c.PC++
	pcBefore := c.PC

	inst, ok := Lookup(opcode)
	if !ok {
		panic(fmt.Sprintf("nes: unknown opcode 0x%02X at PC=0x%04X", opcode, c.PC-1))
	}

	halted := c.dispatch(opcode, inst)

	if c.PC == pcBefore {
		c.PC += uint16(inst.Length) - 1
	}
	c.Cycles += uint64(inst.Cycles)

	if cb != nil {
		cb(c, TraceEntry{
			PC:       c.PC,
			A:        c.A,
			X:        c.X,
			Y:        c.Y,
			SP:       c.SP,
			P:        c.P,
			Opcode:   opcode,
			Mnemonic: inst.Mnemonic,
			Cycles:   c.Cycles,
		})
	}

	return halted
}

// resolveOperand computes the effective (or, for Immediate, pseudo-)
// address an instruction operates on, advancing PC past whatever operand
// bytes the mode consumes. It must not be called with NoneAddressing.
func (c *CPU) resolveOperand(mode AddressingMode) uint16 {
	switch mode {
	case Immediate:
		addr := c.PC
		c.PC++
		return addr

	case ZeroPage:
		addr := uint16(c.mem.Read(c.PC))
		c.PC++
		return addr

	case ZeroPageX:
		base := c.mem.Read(c.PC)
		c.PC++
		return uint16(base + c.X)

	case ZeroPageY:
		base := c.mem.Read(c.PC)
		c.PC++
		return uint16(base + c.Y)

	case Absolute:
		addr := ReadU16(c.mem, c.PC)
		c.PC += 2
		return addr

	case AbsoluteX:
		base := ReadU16(c.mem, c.PC)
		c.PC += 2
		return base + uint16(c.X)

	case AbsoluteY:
		base := ReadU16(c.mem, c.PC)
		c.PC += 2
		return base + uint16(c.Y)

	case IndirectX:
		base := c.mem.Read(c.PC)
		c.PC++
		ptr := base + c.X
		lo := uint16(c.mem.Read(uint16(ptr)))
		hi := uint16(c.mem.Read(uint16(ptr + 1)))
		return hi<<8 | lo

	case IndirectY:
		base := c.mem.Read(c.PC)
		c.PC++
		lo := uint16(c.mem.Read(uint16(base)))
		hi := uint16(c.mem.Read(uint16(base + 1)))
		return (hi<<8 | lo) + uint16(c.Y)

	default:
		panic(fmt.Sprintf("nes: resolveOperand called with addressing mode %d", mode))
	}
}

func (c *CPU) push(v byte) {
	c.mem.Write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() byte {
	c.SP++
	return c.mem.Read(stackBase + uint16(c.SP))
}

func (c *CPU) pushU16(v uint16) {
	c.push(byte(v >> 8))
	c.push(byte(v))
}

func (c *CPU) popU16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

func (c *CPU) setZN(v byte) {
	if v == 0 {
		c.P |= Zero
	} else {
		c.P &^= Zero
	}
	if v&0x80 != 0 {
		c.P |= Negative
	} else {
		c.P &^= Negative
	}
}

// adcValue implements ADC's addition and flag updates; SBC calls it with
// its operand bitwise-inverted, the standard 6502 identity
// SBC(M) == ADC(M XOR 0xFF).
func (c *CPU) adcValue(v byte) {
	a := uint16(c.A)
	m := uint16(v)
	carryIn := uint16(0)
	if c.P&Carry != 0 {
		carryIn = 1
	}

	sum := a + m + carryIn
	result := byte(sum)

	if sum > 0xFF {
		c.P |= Carry
	} else {
		c.P &^= Carry
	}

	if (a^sum)&(m^sum)&0x80 != 0 {
		c.P |= Overflow
	} else {
		c.P &^= Overflow
	}

	c.A = result
	c.setZN(c.A)
}

func (c *CPU) compare(reg, v byte) {
	if reg >= v {
		c.P |= Carry
	} else {
		c.P &^= Carry
	}
	c.setZN(reg - v)
}

func (c *CPU) branchIf(cond bool) {
	offset := int8(c.mem.Read(c.PC))
	if cond {
		c.PC = c.PC + 1 + uint16(offset)
	}
}

// dispatch performs the semantic action for opcode using inst's
// addressing mode, returning true if this instruction halts the CPU.
func (c *CPU) dispatch(opcode byte, inst Instruction) bool {
	switch opcode {
	case 0x00:
		return c.brk()
	case 0xEA:
		return false
	case 0x40:
		c.rti()

	case 0x4C:
		c.PC = ReadU16(c.mem, c.PC)
	case 0x6C:
		c.jmpIndirect()
	case 0x20:
		c.jsr()
	case 0x60:
		c.rts()

	case 0xA9, 0xA5, 0xB5, 0xAD, 0xBD, 0xB9, 0xA1, 0xB1:
		c.A = c.mem.Read(c.resolveOperand(inst.Mode))
		c.setZN(c.A)
	case 0xA2, 0xA6, 0xB6, 0xAE, 0xBE:
		c.X = c.mem.Read(c.resolveOperand(inst.Mode))
		c.setZN(c.X)
	case 0xA0, 0xA4, 0xB4, 0xAC, 0xBC:
		c.Y = c.mem.Read(c.resolveOperand(inst.Mode))
		c.setZN(c.Y)

	case 0x85, 0x95, 0x8D, 0x9D, 0x99, 0x81, 0x91:
		c.mem.Write(c.resolveOperand(inst.Mode), c.A)
	case 0x86, 0x96, 0x8E:
		c.mem.Write(c.resolveOperand(inst.Mode), c.X)
	case 0x84, 0x94, 0x8C:
		c.mem.Write(c.resolveOperand(inst.Mode), c.Y)

	case 0xAA:
		c.X = c.A
		c.setZN(c.X)
	case 0xA8:
		c.Y = c.A
		c.setZN(c.Y)
	case 0xBA:
		c.X = c.SP
		c.setZN(c.X)
	case 0x8A:
		c.A = c.X
		c.setZN(c.A)
	case 0x9A:
		c.SP = c.X
	case 0x98:
		c.A = c.Y
		c.setZN(c.A)

	case 0x48:
		c.push(c.A)
	case 0x08:
		c.push(byte(c.P | Break | Unused))
	case 0x68:
		c.A = c.pop()
		c.setZN(c.A)
	case 0x28:
		c.P = Flags(c.pop())&^Break | Unused

	case 0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31:
		c.A &= c.mem.Read(c.resolveOperand(inst.Mode))
		c.setZN(c.A)
	case 0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51:
		c.A ^= c.mem.Read(c.resolveOperand(inst.Mode))
		c.setZN(c.A)
	case 0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11:
		c.A |= c.mem.Read(c.resolveOperand(inst.Mode))
		c.setZN(c.A)
	case 0x24, 0x2C:
		m := c.mem.Read(c.resolveOperand(inst.Mode))
		if c.A&m == 0 {
			c.P |= Zero
		} else {
			c.P &^= Zero
		}
		if m&0x80 != 0 {
			c.P |= Negative
		} else {
			c.P &^= Negative
		}
		if m&0x40 != 0 {
			c.P |= Overflow
		} else {
			c.P &^= Overflow
		}

	case 0x69, 0x65, 0x75, 0x6D, 0x7D, 0x79, 0x61, 0x71:
		c.adcValue(c.mem.Read(c.resolveOperand(inst.Mode)))
	case 0xE9, 0xE5, 0xF5, 0xED, 0xFD, 0xF9, 0xE1, 0xF1:
		c.adcValue(c.mem.Read(c.resolveOperand(inst.Mode)) ^ 0xFF)

	case 0xC9, 0xC5, 0xD5, 0xCD, 0xDD, 0xD9, 0xC1, 0xD1:
		c.compare(c.A, c.mem.Read(c.resolveOperand(inst.Mode)))
	case 0xE0, 0xE4, 0xEC:
		c.compare(c.X, c.mem.Read(c.resolveOperand(inst.Mode)))
	case 0xC0, 0xC4, 0xCC:
		c.compare(c.Y, c.mem.Read(c.resolveOperand(inst.Mode)))

	case 0xE6, 0xF6, 0xEE, 0xFE:
		addr := c.resolveOperand(inst.Mode)
		v := c.mem.Read(addr) + 1
		c.mem.Write(addr, v)
		c.setZN(v)
	case 0xE8:
		c.X++
		c.setZN(c.X)
	case 0xC8:
		c.Y++
		c.setZN(c.Y)
	case 0xC6, 0xD6, 0xCE, 0xDE:
		addr := c.resolveOperand(inst.Mode)
		v := c.mem.Read(addr) - 1
		c.mem.Write(addr, v)
		c.setZN(v)
	case 0xCA:
		c.X--
		c.setZN(c.X)
	case 0x88:
		c.Y--
		c.setZN(c.Y)

	case 0x0A:
		c.A = c.asl(c.A)
	case 0x06, 0x16, 0x0E, 0x1E:
		addr := c.resolveOperand(inst.Mode)
		c.mem.Write(addr, c.asl(c.mem.Read(addr)))
	case 0x4A:
		c.A = c.lsr(c.A)
	case 0x46, 0x56, 0x4E, 0x5E:
		addr := c.resolveOperand(inst.Mode)
		c.mem.Write(addr, c.lsr(c.mem.Read(addr)))
	case 0x2A:
		c.A = c.rol(c.A)
	case 0x26, 0x36, 0x2E, 0x3E:
		addr := c.resolveOperand(inst.Mode)
		c.mem.Write(addr, c.rol(c.mem.Read(addr)))
	case 0x6A:
		c.A = c.ror(c.A)
	case 0x66, 0x76, 0x6E, 0x7E:
		addr := c.resolveOperand(inst.Mode)
		c.mem.Write(addr, c.ror(c.mem.Read(addr)))

	case 0x90:
		c.branchIf(c.P&Carry == 0)
	case 0xB0:
		c.branchIf(c.P&Carry != 0)
	case 0xF0:
		c.branchIf(c.P&Zero != 0)
	case 0xD0:
		c.branchIf(c.P&Zero == 0)
	case 0x30:
		c.branchIf(c.P&Negative != 0)
	case 0x10:
		c.branchIf(c.P&Negative == 0)
	case 0x50:
		c.branchIf(c.P&Overflow == 0)
	case 0x70:
		c.branchIf(c.P&Overflow != 0)

	case 0x18:
		c.P &^= Carry
	case 0x38:
		c.P |= Carry
	case 0x58:
		c.P &^= InterruptDisable
	case 0x78:
		c.P |= InterruptDisable
	case 0xD8:
		c.P &^= Decimal
	case 0xF8:
		c.P |= Decimal
	case 0xB8:
		c.P &^= Overflow

	default:
		panic(fmt.Sprintf("nes: opcode 0x%02X (%s) has a table entry but no handler", opcode, inst.Mnemonic))
	}

	return false
}

func (c *CPU) asl(v byte) byte {
	if v&0x80 != 0 {
		c.P |= Carry
	} else {
		c.P &^= Carry
	}
	v <<= 1
	c.setZN(v)
	return v
}

func (c *CPU) lsr(v byte) byte {
	if v&0x01 != 0 {
		c.P |= Carry
	} else {
		c.P &^= Carry
	}
	v >>= 1
	c.setZN(v)
	return v
}

func (c *CPU) rol(v byte) byte {
	carryIn := byte(0)
	if c.P&Carry != 0 {
		carryIn = 1
	}
	if v&0x80 != 0 {
		c.P |= Carry
	} else {
		c.P &^= Carry
	}
	v = v<<1 | carryIn
	c.setZN(v)
	return v
}

func (c *CPU) ror(v byte) byte {
	carryIn := byte(0)
	if c.P&Carry != 0 {
		carryIn = 0x80
	}
	if v&0x01 != 0 {
		c.P |= Carry
	} else {
		c.P &^= Carry
	}
	v = v>>1 | carryIn
	c.setZN(v)
	return v
}

// jmpIndirect reproduces the 6502's indirect-JMP page-boundary bug: when
// the pointer's low byte is 0xFF, the high byte of the target is fetched
// from the start of the same page instead of the next page.
func (c *CPU) jmpIndirect() {
	ptr := ReadU16(c.mem, c.PC)
	var lo, hi byte
	if ptr&0x00FF == 0x00FF {
		lo = c.mem.Read(ptr)
		hi = c.mem.Read(ptr & 0xFF00)
	} else {
		lo = c.mem.Read(ptr)
		hi = c.mem.Read(ptr + 1)
	}
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) jsr() {
	target := ReadU16(c.mem, c.PC)
	c.pushU16(c.PC + 1)
	c.PC = target
}

func (c *CPU) rts() {
	c.PC = c.popU16() + 1
}

func (c *CPU) rti() {
	c.P = Flags(c.pop())&^Break | Unused
	c.PC = c.popU16()
}

// brk reports the halt indication in BreakHalts mode (the default, and
// the one used by this package's unit tests and end-to-end programs, where
// a trailing 0x00 simply ends the run). In BreakInterrupts mode it behaves
// like the real hardware interrupt instead and execution continues.
func (c *CPU) brk() bool {
	if c.Break == BreakHalts {
		return true
	}

	c.pushU16(c.PC + 1)
	c.push(byte(c.P | Break | Unused))
	c.P |= InterruptDisable
	c.PC = ReadU16(c.mem, irqVector)
	return false
}
