package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCPU() *CPU {
	return NewCPU(NewFlatMemory())
}

func TestCPU_LDAImmediate(t *testing.T) {
	c := newTestCPU()
	c.LoadAndRun([]byte{0xA9, 0x05, 0x00})

	assert.Equal(t, byte(0x05), c.A)
	assert.Zero(t, c.P&Zero)
	assert.Zero(t, c.P&Negative)
}

func TestCPU_LDAZeroFlag(t *testing.T) {
	c := newTestCPU()
	c.LoadAndRun([]byte{0xA9, 0x00, 0x00})

	assert.NotZero(t, c.P&Zero)
}

func TestCPU_TAXMovesAToX(t *testing.T) {
	c := newTestCPU()
	c.LoadAndRun([]byte{0xA9, 0xC0, 0xAA, 0xE8, 0x00})

	assert.Equal(t, byte(0xC1), c.X)
}

func TestCPU_INXOverflowWraps(t *testing.T) {
	c := newTestCPU()
	c.LoadAndRun([]byte{0xA9, 0xFF, 0xAA, 0xE8, 0xE8, 0x00})

	assert.Equal(t, byte(0x01), c.X)
}

func TestCPU_LDAFromMemory(t *testing.T) {
	c := newTestCPU()
	c.mem.Write(0x10, 0x55)
	c.LoadAndRun([]byte{0xA5, 0x10, 0x00})

	assert.Equal(t, byte(0x55), c.A)
}

func TestCPU_ADCSignedOverflow(t *testing.T) {
	c := newTestCPU()
	c.LoadAndRun([]byte{0xA9, 0x50, 0x69, 0x50, 0x00})

	assert.Equal(t, byte(0xA0), c.A)
	assert.NotZero(t, c.P&Overflow)
	assert.NotZero(t, c.P&Negative)
	assert.Zero(t, c.P&Carry)
}

func TestCPU_ADCRoundTrip(t *testing.T) {
	for a := 0; a <= 0xFF; a += 17 {
		for b := 0; b <= 0xFF; b += 23 {
			for _, carryIn := range []bool{false, true} {
				c := newTestCPU()

				program := []byte{0xA9, byte(a)}
				if carryIn {
					program = append(program, 0x38) // SEC
				} else {
					program = append(program, 0x18) // CLC
				}
				program = append(program, 0x69, byte(b), 0x00)

				c.LoadAndRun(program)

				cin := 0
				if carryIn {
					cin = 1
				}
				want := byte((a + b + cin) % 256)
				require.Equalf(t, want, c.A, "a=%d b=%d cin=%d", a, b, cin)

				wantCarry := a+b+cin > 0xFF
				require.Equalf(t, wantCarry, c.P&Carry != 0, "a=%d b=%d cin=%d", a, b, cin)

				sum := a + b + cin
				wantOverflow := (a^sum)&(b^sum)&0x80 != 0
				require.Equalf(t, wantOverflow, c.P&Overflow != 0, "a=%d b=%d cin=%d", a, b, cin)
			}
		}
	}
}

func TestCPU_CompareUsesGreaterOrEqual(t *testing.T) {
	c := newTestCPU()
	c.LoadAndRun([]byte{0xA9, 0x05, 0xC9, 0x05, 0x00}) // LDA #5; CMP #5

	assert.NotZerof(t, c.P&Carry, "Carry clear on equal compare, want set (reg >= M)")
	assert.NotZero(t, c.P&Zero)
}

func TestCPU_IndirectJMPPageBoundaryBug(t *testing.T) {
	c := newTestCPU()
	c.mem.Write(0x30FF, 0x80)
	c.mem.Write(0x3000, 0x50)
	c.mem.Write(0x3100, 0x40)

	c.Load([]byte{0x6C, 0xFF, 0x30}) // JMP ($30FF)
	c.Reset()
	c.step(nil)

	assert.Equalf(t, uint16(0x5080), c.PC, "hardware bug: high byte from 0x3000, not 0x3100")
}

func TestCPU_StackWrapsOnOverflowAndUnderflow(t *testing.T) {
	c := newTestCPU()
	c.Reset()
	startSP := c.SP

	for i := 0; i < 256; i++ {
		c.push(byte(i))
	}
	require.Equal(t, startSP, c.SP)

	c.pop()
	assert.Equal(t, startSP+1, c.SP)
}

func TestCPU_RunWithCallbackFiresPerInstruction(t *testing.T) {
	c := newTestCPU()
	c.Load([]byte{0xA9, 0x01, 0xE8, 0x00})
	c.Reset()

	var mnemonics []string
	c.RunWithCallback(func(cpu *CPU, e TraceEntry) {
		mnemonics = append(mnemonics, e.Mnemonic)
	})

	assert.Equal(t, []string{"LDA", "INX", "BRK"}, mnemonics)
}

func TestCPU_UnknownOpcodePanics(t *testing.T) {
	c := newTestCPU()
	c.Load([]byte{0x02}) // KIL/illegal, not in the table
	c.Reset()

	assert.Panics(t, func() { c.Run() })
}

func TestCPU_BreakInterruptsModeRedirectsPC(t *testing.T) {
	c := newTestCPU()
	c.Break = BreakInterrupts
	c.Load([]byte{0x00}) // BRK
	c.Reset()

	c.mem.Write(0xFFFE, 0x00)
	c.mem.Write(0xFFFF, 0x90) // IRQ/BRK vector -> 0x9000

	halted := c.step(nil)
	require.False(t, halted, "BRK halted under BreakInterrupts, want redirect")
	assert.Equal(t, uint16(0x9000), c.PC)
	assert.NotZero(t, c.P&InterruptDisable)
}

func TestOpcodeTable_DocumentedLengths(t *testing.T) {
	samples := []struct {
		opcode byte
		length byte
	}{
		{0xA9, 2}, // LDA immediate
		{0xA5, 2}, // LDA zero page
		{0xAD, 3}, // LDA absolute
		{0xE8, 1}, // INX
		{0x4C, 3}, // JMP absolute
	}

	for _, s := range samples {
		inst, ok := Lookup(s.opcode)
		require.Truef(t, ok, "opcode 0x%02X not found", s.opcode)
		assert.Equalf(t, s.length, inst.Length, "opcode 0x%02X", s.opcode)
	}
}
