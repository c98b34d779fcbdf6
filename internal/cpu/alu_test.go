package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstruction_Add(t *testing.T) {
	// 0x80 - ADD A, B
	c := newTestCPU(t, 0x80)
	c.AF.SetHigh(0x3A)
	c.BC.SetHigh(0xC6)

	assert.Equal(t, uint8(1), mustStep(t, c))
	assert.Equal(t, uint8(0x00), c.AF.High())
	assert.True(t, c.Zero())
	assert.True(t, c.HalfCarry())
	assert.False(t, c.Subtract())
	assert.True(t, c.Carry())
	assert.Equal(t, uint16(programStart+1), c.PC)
}

func TestInstruction_ALU(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		a, n   uint8
		carry  bool
		want   uint8
		wantF  uint8
	}{
		{"ADC A, d8", 0xCE, 0x0E, 0x01, true, 0x10, 0x20},
		{"ADC A, d8 no carry", 0xCE, 0xFE, 0x01, false, 0xFF, 0x00},
		{"SUB d8", 0xD6, 0x3E, 0x3E, false, 0x00, 0xC0},
		{"SUB d8 borrow", 0xD6, 0x3E, 0x40, false, 0xFE, 0x50},
		{"SBC A, d8", 0xDE, 0x3B, 0x2A, true, 0x10, 0x40},
		{"SBC A, d8 half", 0xDE, 0x3B, 0x4F, true, 0xEB, 0x70},
		{"AND d8", 0xE6, 0x5A, 0x3F, false, 0x1A, 0x20},
		{"AND d8 zero", 0xE6, 0x5A, 0x00, true, 0x00, 0xA0},
		{"XOR d8", 0xEE, 0xFF, 0x0F, true, 0xF0, 0x00},
		{"OR d8", 0xF6, 0x00, 0x00, true, 0x00, 0x80},
		{"CP d8 equal", 0xFE, 0x3C, 0x3C, false, 0x3C, 0xC0},
		{"CP d8 greater", 0xFE, 0x3C, 0x40, false, 0x3C, 0x50},
		{"CP d8 half", 0xFE, 0x3C, 0x2F, false, 0x3C, 0x60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, tt.opcode, tt.n)
			c.AF.SetHigh(tt.a)
			c.SetCarry(tt.carry)

			assert.Equal(t, uint8(2), mustStep(t, c))
			assert.Equal(t, tt.want, c.AF.High(), "A")
			assert.Equal(t, tt.wantF, c.Flags(), "F")
			assert.Equal(t, uint16(programStart+2), c.PC)
		})
	}
}

func TestInstruction_IncDec(t *testing.T) {
	t.Run("INC B", func(t *testing.T) {
		c := newTestCPU(t, 0x04, 0x04)
		c.BC.SetHigh(0xFE)
		c.SetCarry(true)

		mustStep(t, c)
		assert.Equal(t, uint8(0xFF), c.BC.High())
		assert.Equal(t, uint8(0x10), c.Flags(), "carry is not affected")

		mustStep(t, c)
		assert.Equal(t, uint8(0x00), c.BC.High())
		assert.Equal(t, uint8(0xB0), c.Flags())
	})
	t.Run("DEC (HL)", func(t *testing.T) {
		c := newTestCPU(t, 0x35)
		c.HL.SetUint16(0xC100)
		c.load(0xC100, 0x10)

		assert.Equal(t, uint8(3), mustStep(t, c))
		assert.Equal(t, uint8(0x0F), c.bus.Read(0xC100))
		assert.Equal(t, uint8(0x60), c.Flags())
	})
	t.Run("DEC A", func(t *testing.T) {
		c := newTestCPU(t, 0x3D)
		c.AF.SetHigh(0x01)

		mustStep(t, c)
		assert.Equal(t, uint8(0x00), c.AF.High())
		assert.Equal(t, uint8(0xC0), c.Flags())
	})
	t.Run("INC DE wraps", func(t *testing.T) {
		c := newTestCPU(t, 0x13, 0x1B)
		c.DE.SetUint16(0xFFFF)
		c.SetFlags(0xF0)

		assert.Equal(t, uint8(2), mustStep(t, c))
		assert.Equal(t, uint16(0x0000), c.DE.Uint16())
		assert.Equal(t, uint8(0xF0), c.Flags(), "flags are not affected")

		mustStep(t, c)
		assert.Equal(t, uint16(0xFFFF), c.DE.Uint16())
	})
	t.Run("DEC SP", func(t *testing.T) {
		c := newTestCPU(t, 0x3B)
		mustStep(t, c)
		assert.Equal(t, uint16(0xFFFD), c.SP)
	})
}

func TestInstruction_AddHL(t *testing.T) {
	tests := []struct {
		opcode uint8
		hl, n  uint16
		want   uint16
		wantF  uint8
	}{
		{0x09, 0x0FFF, 0x0001, 0x1000, 0xA0}, // zero flag untouched
		{0x19, 0xFFFF, 0x0001, 0x0000, 0xB0},
		{0x29, 0x8A23, 0x8A23, 0x1446, 0xB0},
		{0x39, 0x1234, 0x0100, 0x1334, 0x80},
	}
	for _, tt := range tests {
		c := newTestCPU(t, tt.opcode)
		c.SetFlags(0xC0)
		c.HL.SetUint16(tt.hl)
		switch ss(tt.opcode) {
		case PairBC:
			c.BC.SetUint16(tt.n)
		case PairDE:
			c.DE.SetUint16(tt.n)
		case PairSP:
			c.SP = tt.n
		}

		assert.Equal(t, uint8(2), mustStep(t, c))
		assert.Equal(t, tt.want, c.HL.Uint16(), InstructionSet[tt.opcode].Name())
		assert.Equal(t, tt.wantF, c.Flags(), InstructionSet[tt.opcode].Name())
	}
}

func TestInstruction_StackPointerRelative(t *testing.T) {
	t.Run("LD HL, SP+r8", func(t *testing.T) {
		c := newTestCPU(t, 0xF8, 0x02)
		c.SP = 0xFFF8
		c.SetFlags(0xF0)

		assert.Equal(t, uint8(3), mustStep(t, c))
		assert.Equal(t, uint16(0xFFFA), c.HL.Uint16())
		assert.Equal(t, uint8(0x00), c.Flags())
		assert.Equal(t, uint16(0xFFF8), c.SP)
	})
	t.Run("LD HL, SP-1", func(t *testing.T) {
		c := newTestCPU(t, 0xF8, 0xFF)
		c.SP = 0x0001

		mustStep(t, c)
		assert.Equal(t, uint16(0x0000), c.HL.Uint16())
		assert.Equal(t, uint8(0x30), c.Flags(), "carries are from the low byte")
	})
	t.Run("ADD SP, r8", func(t *testing.T) {
		c := newTestCPU(t, 0xE8, 0xFE)
		c.SP = 0xFFFE

		assert.Equal(t, uint8(4), mustStep(t, c))
		assert.Equal(t, uint16(0xFFFC), c.SP)
		assert.Equal(t, uint8(0x30), c.Flags())
	})
	t.Run("ADD SP, r8 half", func(t *testing.T) {
		c := newTestCPU(t, 0xE8, 0x08)
		c.SP = 0xD00F

		mustStep(t, c)
		assert.Equal(t, uint16(0xD017), c.SP)
		assert.Equal(t, uint8(0x20), c.Flags())
	})
}

func TestInstruction_DAA(t *testing.T) {
	tests := []struct {
		name  string
		a     uint8
		flags uint8
		want  uint8
		wantF uint8
	}{
		{"after 0x45+0x38", 0x7D, 0x00, 0x83, 0x00},
		{"after 0x99+0x01", 0x9A, 0x00, 0x00, 0x90},
		{"after 0x09+0x08", 0x11, 0x20, 0x17, 0x00},
		{"after 0x83-0x38", 0x4B, 0x60, 0x45, 0x40},
		{"after 0x10-0x20", 0xF0, 0x50, 0x90, 0x50},
		{"already BCD", 0x42, 0x00, 0x42, 0x00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, 0x27)
			c.AF.SetHigh(tt.a)
			c.SetFlags(tt.flags)

			mustStep(t, c)
			assert.Equal(t, tt.want, c.AF.High(), "A")
			assert.Equal(t, tt.wantF, c.Flags(), "F")
		})
	}
}

func TestInstruction_FlagOps(t *testing.T) {
	t.Run("CPL", func(t *testing.T) {
		c := newTestCPU(t, 0x2F)
		c.AF.SetHigh(0x35)
		c.SetFlags(0x90)

		mustStep(t, c)
		assert.Equal(t, uint8(0xCA), c.AF.High())
		assert.Equal(t, uint8(0xF0), c.Flags())
	})
	t.Run("SCF", func(t *testing.T) {
		c := newTestCPU(t, 0x37)
		c.SetFlags(0xE0)

		mustStep(t, c)
		assert.Equal(t, uint8(0x90), c.Flags())
	})
	t.Run("CCF", func(t *testing.T) {
		c := newTestCPU(t, 0x3F, 0x3F)
		c.SetFlags(0x70)

		mustStep(t, c)
		assert.Equal(t, uint8(0x00), c.Flags())
		mustStep(t, c)
		assert.Equal(t, uint8(0x10), c.Flags())
	})
}
