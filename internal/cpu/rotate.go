package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// shiftOps are the eight rotate and shift operations of the 0xCB
// table, in the order of their encoding in bits 5-3. Each returns the
// result and the bit shifted out.
var shiftOps = [8]struct {
	name string
	fn   func(c *CPU, n uint8) (uint8, bool)
}{
	{"RLC", func(_ *CPU, n uint8) (uint8, bool) { return n<<1 | n>>7, n&types.Bit7 != 0 }},
	{"RRC", func(_ *CPU, n uint8) (uint8, bool) { return n>>1 | n<<7, n&types.Bit0 != 0 }},
	{"RL", (*CPU).rotateLeftThroughCarry},
	{"RR", (*CPU).rotateRightThroughCarry},
	{"SLA", func(_ *CPU, n uint8) (uint8, bool) { return n << 1, n&types.Bit7 != 0 }},
	{"SRA", func(_ *CPU, n uint8) (uint8, bool) { return n>>1 | n&types.Bit7, n&types.Bit0 != 0 }},
	{"SWAP", func(_ *CPU, n uint8) (uint8, bool) { return n<<4 | n>>4, false }},
	{"SRL", func(_ *CPU, n uint8) (uint8, bool) { return n >> 1, n&types.Bit0 != 0 }},
}

// rotateLeftThroughCarry rotates n left by 1 bit. The carry flag is
// copied to the least significant bit.
func (c *CPU) rotateLeftThroughCarry(n uint8) (uint8, bool) {
	computed := n << 1
	if c.Carry() {
		computed |= types.Bit0
	}
	return computed, n&types.Bit7 != 0
}

// rotateRightThroughCarry rotates n right by 1 bit. The carry flag is
// copied to the most significant bit.
func (c *CPU) rotateRightThroughCarry(n uint8) (uint8, bool) {
	computed := n >> 1
	if c.Carry() {
		computed |= types.Bit7
	}
	return computed, n&types.Bit0 != 0
}

// shift applies one of shiftOps to n and sets the flags.
//
// Flags affected:
//
//	Z - Set if result is zero. Reset for RLCA, RRCA, RLA and RRA.
//	N - Reset.
//	H - Reset.
//	C - Contains the bit shifted out. Reset for SWAP.
func (c *CPU) shift(op uint8, n uint8, zero FlagPolicy) uint8 {
	result, carry := shiftOps[op].fn(c, n)
	c.setFlags8(result, 0, false, Add, shiftPolicies(carry, zero))
	return result
}

// generateRotateAccumulatorInstructions defines RLCA, RRCA, RLA and RRA,
// the single byte forms of RLC A, RRC A, RL A and RR A.
func generateRotateAccumulatorInstructions() {
	for op := uint8(0); op < 4; op++ {
		op := op
		DefineInstruction(0x07|op<<3, shiftOps[op].name+"A", func(c *CPU, _ uint8) uint8 {
			c.AF.SetHigh(c.shift(op, c.AF.High(), Clear))
			c.IncrementPC(1)
			return 1
		})
	}
}

// generateRotateInstructions defines 0xCB 0x00 - 0xCB 0x3F.
func generateRotateInstructions() {
	for op := uint8(0); op < 8; op++ {
		op := op
		// loop through each register (B, C, D, E, H, L, (HL), A)
		for r := uint8(0); r < 8; r++ {
			r := r
			cycles := uint8(2)
			if Register(r) == regHL {
				cycles = 4
			}
			DefineInstructionCB(op<<3|r, fmt.Sprintf("%s %s", shiftOps[op].name, Register(r)), func(c *CPU, _ uint8) uint8 {
				c.writeR(r, c.shift(op, c.readR(r), Calculate))
				c.IncrementPC(2)
				return cycles
			})
		}
	}
}

// generateBitInstructions defines BIT, RES and SET, 0xCB 0x40 - 0xCB 0xFF.
func generateBitInstructions() {
	for b := uint8(0); b < 8; b++ {
		mask := uint8(1) << b
		for r := uint8(0); r < 8; r++ {
			r := r
			opcode := b<<3 | r

			// BIT b, r
			//
			// Flags affected:
			//
			//	Z - Set if bit b of r is 0.
			//	N - Reset.
			//	H - Set.
			//	C - Not affected.
			bitCycles, cycles := uint8(2), uint8(2)
			if Register(r) == regHL {
				bitCycles, cycles = 3, 4
			}
			DefineInstructionCB(0x40|opcode, fmt.Sprintf("BIT %d, %s", b, Register(r)), func(c *CPU, _ uint8) uint8 {
				c.setFlags8(c.readR(r)&mask, 0, false, Add, bitPolicies)
				c.IncrementPC(2)
				return bitCycles
			})

			DefineInstructionCB(0x80|opcode, fmt.Sprintf("RES %d, %s", b, Register(r)), func(c *CPU, _ uint8) uint8 {
				c.writeR(r, c.readR(r)&^mask)
				c.IncrementPC(2)
				return cycles
			})
			DefineInstructionCB(0xC0|opcode, fmt.Sprintf("SET %d, %s", b, Register(r)), func(c *CPU, _ uint8) uint8 {
				c.writeR(r, c.readR(r)|mask)
				c.IncrementPC(2)
				return cycles
			})
		}
	}
}
