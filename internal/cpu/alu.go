package cpu

import "fmt"

// aluOps are the eight accumulator operations, in the order of their
// 3-bit encoding in bits 5-3 of the opcode.
var aluOps = [8]struct {
	name string
	fn   func(c *CPU, n uint8)
}{
	{"ADD A,", func(c *CPU, n uint8) { c.add(n, false) }},
	{"ADC A,", func(c *CPU, n uint8) { c.add(n, true) }},
	{"SUB", func(c *CPU, n uint8) { c.sub(n, false) }},
	{"SBC A,", func(c *CPU, n uint8) { c.sub(n, true) }},
	{"AND", (*CPU).and},
	{"XOR", (*CPU).xor},
	{"OR", (*CPU).or},
	{"CP", (*CPU).compare},
}

// add adds n (and the carry flag, if withCarry) to the A Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, withCarry bool) {
	a := c.AF.High()
	carry := withCarry && c.Carry()

	result := a + n
	if carry {
		result++
	}
	c.AF.SetHigh(result)
	c.setFlags8(a, n, carry, Add, addPolicies)
}

// sub subtracts n (and the carry flag, if withCarry) from the A Register.
//
//	SUB n
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, withCarry bool) {
	a := c.AF.High()
	carry := withCarry && c.Carry()

	result := a - n
	if carry {
		result--
	}
	c.AF.SetHigh(result)
	c.setFlags8(a, n, carry, Subtract, subPolicies)
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	result := c.AF.High() & n
	c.AF.SetHigh(result)
	c.setFlags8(result, 0, false, Add, andPolicies)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	result := c.AF.High() | n
	c.AF.SetHigh(result)
	c.setFlags8(result, 0, false, Add, orPolicies)
}

// xor performs a bitwise XOR operation on n and the A Register.
// Flags as OR.
func (c *CPU) xor(n uint8) {
	result := c.AF.High() ^ n
	c.AF.SetHigh(result)
	c.setFlags8(result, 0, false, Add, orPolicies)
}

// compare compares n to the A Register, by subtracting n from A and
// discarding the result. Flags as SUB.
func (c *CPU) compare(n uint8) {
	c.setFlags8(c.AF.High(), n, false, Subtract, subPolicies)
}

// increment the given value and set the flags accordingly.
//
//	INC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(value uint8) uint8 {
	c.setFlags8(value, 1, false, Add, incPolicies)
	return value + 1
}

// decrement the given value and set the flags accordingly.
//
//	DEC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(value uint8) uint8 {
	c.setFlags8(value, 1, false, Subtract, decPolicies)
	return value - 1
}

// decimalAdjust adjusts the A Register to a binary coded decimal after
// an addition or subtraction of two BCD values.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	a := c.AF.High()
	carry := c.Carry()

	if !c.Subtract() {
		if carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if c.HalfCarry() || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if carry {
			a -= 0x60
		}
		if c.HalfCarry() {
			a -= 0x06
		}
	}

	c.AF.SetHigh(a)
	c.SetZero(a == 0)
	c.SetHalfCarry(false)
	c.SetCarry(carry)
}

// addSPRelative returns SP plus the signed displacement e. The flags
// are computed on the low byte, as an unsigned 8-bit addition.
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPRelative(e uint8) uint16 {
	c.setFlags8(uint8(c.SP), e, false, Add, spPolicies)
	return c.SP + uint16(int8(e))
}

func generateALUInstructions() {
	for op := uint8(0); op < 8; op++ {
		alu := aluOps[op]

		// ALU A, r
		for r := uint8(0); r < 8; r++ {
			r := r
			cycles := uint8(1)
			if Register(r) == regHL {
				cycles = 2
			}
			DefineInstruction(0x80|op<<3|r, fmt.Sprintf("%s %s", alu.name, Register(r)), func(c *CPU, _ uint8) uint8 {
				alu.fn(c, c.readR(r))
				c.IncrementPC(1)
				return cycles
			})
		}

		// ALU A, n
		DefineInstruction(0xC6|op<<3, fmt.Sprintf("%s d8", alu.name), func(c *CPU, _ uint8) uint8 {
			alu.fn(c, c.immediate8())
			c.IncrementPC(2)
			return 2
		})
	}

	for r := uint8(0); r < 8; r++ {
		r := r
		cycles := uint8(1)
		if Register(r) == regHL {
			cycles = 3
		}
		DefineInstruction(0x04|r<<3, fmt.Sprintf("INC %s", Register(r)), func(c *CPU, _ uint8) uint8 {
			c.writeR(r, c.increment(c.readR(r)))
			c.IncrementPC(1)
			return cycles
		})
		DefineInstruction(0x05|r<<3, fmt.Sprintf("DEC %s", Register(r)), func(c *CPU, _ uint8) uint8 {
			c.writeR(r, c.decrement(c.readR(r)))
			c.IncrementPC(1)
			return cycles
		})
	}

	DefineInstruction(0x27, "DAA", func(c *CPU, _ uint8) uint8 {
		c.decimalAdjust()
		c.IncrementPC(1)
		return 1
	})
	DefineInstruction(0x2F, "CPL", func(c *CPU, _ uint8) uint8 {
		c.AF.SetHigh(^c.AF.High())
		c.setFlags8(0, 0, false, Add, FlagPolicies{Ignore, Set, Set, Ignore})
		c.IncrementPC(1)
		return 1
	})
	DefineInstruction(0x37, "SCF", func(c *CPU, _ uint8) uint8 {
		c.setFlags8(0, 0, false, Add, FlagPolicies{Ignore, Clear, Clear, Set})
		c.IncrementPC(1)
		return 1
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU, _ uint8) uint8 {
		c.setFlags8(0, 0, false, Add, shiftPolicies(!c.Carry(), Ignore))
		c.IncrementPC(1)
		return 1
	})
}

func generateALU16Instructions() {
	for i := uint8(0); i < 4; i++ {
		opcode := i << 4

		DefineInstruction(0x03|opcode, fmt.Sprintf("INC %s", ss(opcode)), func(c *CPU, opcode uint8) uint8 {
			c.Set16(ss(opcode), c.Get16(ss(opcode))+1)
			c.IncrementPC(1)
			return 2
		})
		DefineInstruction(0x0B|opcode, fmt.Sprintf("DEC %s", ss(opcode)), func(c *CPU, opcode uint8) uint8 {
			c.Set16(ss(opcode), c.Get16(ss(opcode))-1)
			c.IncrementPC(1)
			return 2
		})

		// ADD HL, ss
		//
		// Flags affected:
		//
		//	Z - Not affected.
		//	N - Reset.
		//	H - Set if carry from bit 11.
		//	C - Set if carry from bit 15.
		DefineInstruction(0x09|opcode, fmt.Sprintf("ADD HL, %s", ss(opcode)), func(c *CPU, opcode uint8) uint8 {
			hl, n := c.HL.Uint16(), c.Get16(ss(opcode))
			c.HL.SetUint16(hl + n)
			c.setFlags16(hl, n, false, Add, addHLPolicies)
			c.IncrementPC(1)
			return 2
		})
	}

	DefineInstruction(0xE8, "ADD SP, r8", func(c *CPU, _ uint8) uint8 {
		c.SP = c.addSPRelative(c.immediate8())
		c.IncrementPC(2)
		return 4
	})
}
