package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstruction_RotateAccumulator(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		a      uint8
		carry  bool
		want   uint8
		wantF  uint8
	}{
		{"RLCA", 0x07, 0x85, false, 0x0B, 0x10},
		{"RLCA zero", 0x07, 0x00, false, 0x00, 0x00},
		{"RRCA", 0x0F, 0x01, false, 0x80, 0x10},
		{"RLA", 0x17, 0x95, true, 0x2B, 0x10},
		{"RLA zero", 0x17, 0x80, false, 0x00, 0x10},
		{"RRA", 0x1F, 0x81, false, 0x40, 0x10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, tt.opcode)
			c.AF.SetHigh(tt.a)
			c.SetCarry(tt.carry)

			assert.Equal(t, uint8(1), mustStep(t, c))
			assert.Equal(t, tt.want, c.AF.High(), "A")
			assert.Equal(t, tt.wantF, c.Flags(), "F")
		})
	}
}

func TestInstruction_RotateShift(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		value  uint8
		carry  bool
		want   uint8
		wantF  uint8
	}{
		{"RLC B", 0x00, 0x85, false, 0x0B, 0x10},
		{"RLC B zero", 0x00, 0x00, true, 0x00, 0x80},
		{"RRC C", 0x09, 0x01, false, 0x80, 0x10},
		{"RL D", 0x12, 0x80, false, 0x00, 0x90},
		{"RL D carry", 0x12, 0x11, true, 0x23, 0x00},
		{"RR E", 0x1B, 0x01, false, 0x00, 0x90},
		{"RR E carry", 0x1B, 0x8A, true, 0xC5, 0x00},
		{"SLA H", 0x24, 0xFF, false, 0xFE, 0x10},
		{"SRA L", 0x2D, 0x8A, false, 0xC5, 0x00},
		{"SRA L out", 0x2D, 0x01, false, 0x00, 0x90},
		{"SWAP A", 0x37, 0xF1, true, 0x1F, 0x00},
		{"SWAP A zero", 0x37, 0x00, true, 0x00, 0x80},
		{"SRL A", 0x3F, 0xFF, false, 0x7F, 0x10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, 0xCB, tt.opcode)
			r := Register(tt.opcode & 7)
			c.Set8(r, tt.value)
			c.SetCarry(tt.carry)

			assert.Equal(t, uint8(2), mustStep(t, c))
			assert.Equal(t, tt.want, c.Get8(r), r.String())
			assert.Equal(t, tt.wantF, c.Flags(), "F")
		})
	}

	t.Run("SWAP (HL)", func(t *testing.T) {
		c := newTestCPU(t, 0xCB, 0x36)
		c.HL.SetUint16(0xC100)
		c.load(0xC100, 0xAB)

		assert.Equal(t, uint8(4), mustStep(t, c))
		assert.Equal(t, uint8(0xBA), c.bus.Read(0xC100))
	})
}

func TestInstruction_Bit(t *testing.T) {
	t.Run("BIT", func(t *testing.T) {
		// BIT 7, H; BIT 0, H
		c := newTestCPU(t, 0xCB, 0x7C, 0xCB, 0x44)
		c.HL.SetHigh(0x80)
		c.SetCarry(true)

		mustStep(t, c)
		assert.Equal(t, uint8(0x30), c.Flags())
		mustStep(t, c)
		assert.Equal(t, uint8(0xB0), c.Flags())
	})
	t.Run("BIT (HL)", func(t *testing.T) {
		c := newTestCPU(t, 0xCB, 0x5E) // BIT 3, (HL)
		c.HL.SetUint16(0xC100)
		c.load(0xC100, 0x08)

		assert.Equal(t, uint8(3), mustStep(t, c))
		assert.Equal(t, uint8(0x20), c.Flags())
	})
	t.Run("SET and RES", func(t *testing.T) {
		// SET 3, (HL); RES 7, (HL); SET 0, A; RES 0, A
		c := newTestCPU(t, 0xCB, 0xDE, 0xCB, 0xBE, 0xCB, 0xC7, 0xCB, 0x87)
		c.HL.SetUint16(0xC100)
		c.load(0xC100, 0x80)
		c.SetFlags(0xF0)

		assert.Equal(t, uint8(4), mustStep(t, c))
		assert.Equal(t, uint8(0x88), c.bus.Read(0xC100))
		assert.Equal(t, uint8(4), mustStep(t, c))
		assert.Equal(t, uint8(0x08), c.bus.Read(0xC100))

		assert.Equal(t, uint8(2), mustStep(t, c))
		assert.Equal(t, uint8(0x01), c.AF.High())
		assert.Equal(t, uint8(2), mustStep(t, c))
		assert.Equal(t, uint8(0x00), c.AF.High())
		assert.Equal(t, uint8(0xF0), c.Flags(), "flags are not affected")
	})
}
