package cpu

import "fmt"

// indirectA describes the four LD instructions that move A through the
// address held in a register pair, with HL optionally stepped after use.
var indirectA = [4]struct {
	name string
	pair Pair
	step int16
}{
	{"(BC)", PairBC, 0},
	{"(DE)", PairDE, 0},
	{"(HL+)", PairHL, 1},
	{"(HL-)", PairHL, -1},
}

// indirectAddress returns the address held by a pair, stepping HL when
// required by the addressing mode.
func (c *CPU) indirectAddress(index uint8) uint16 {
	mode := indirectA[index]
	address := c.Get16(mode.pair)
	if mode.step != 0 {
		c.HL.SetUint16(address + uint16(mode.step))
	}
	return address
}

func generateLoadInstructions() {
	for dst := uint8(0); dst < 8; dst++ {
		dst := dst

		// LD r, n
		cycles := uint8(2)
		if Register(dst) == regHL {
			cycles = 3
		}
		DefineInstruction(0x06|dst<<3, fmt.Sprintf("LD %s, d8", Register(dst)), func(c *CPU, _ uint8) uint8 {
			c.writeR(dst, c.immediate8())
			c.IncrementPC(2)
			return cycles
		})

		// LD r, r'
		for src := uint8(0); src < 8; src++ {
			src := src
			opcode := 0x40 | dst<<3 | src
			if opcode == 0x76 {
				continue // HALT
			}
			cycles := uint8(1)
			if Register(src) == regHL || Register(dst) == regHL {
				cycles = 2
			}
			DefineInstruction(opcode, fmt.Sprintf("LD %s, %s", Register(dst), Register(src)), func(c *CPU, _ uint8) uint8 {
				c.writeR(dst, c.readR(src))
				c.IncrementPC(1)
				return cycles
			})
		}
	}

	for i := uint8(0); i < 4; i++ {
		i := i
		// LD (rr), A
		DefineInstruction(0x02|i<<4, fmt.Sprintf("LD %s, A", indirectA[i].name), func(c *CPU, _ uint8) uint8 {
			c.writeByte(c.indirectAddress(i), c.AF.High())
			c.IncrementPC(1)
			return 2
		})
		// LD A, (rr)
		DefineInstruction(0x0A|i<<4, fmt.Sprintf("LD A, %s", indirectA[i].name), func(c *CPU, _ uint8) uint8 {
			c.AF.SetHigh(c.readByte(c.indirectAddress(i)))
			c.IncrementPC(1)
			return 2
		})
	}

	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU, _ uint8) uint8 {
		c.writeByte(0xFF00|uint16(c.immediate8()), c.AF.High())
		c.IncrementPC(2)
		return 3
	})
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU, _ uint8) uint8 {
		c.AF.SetHigh(c.readByte(0xFF00 | uint16(c.immediate8())))
		c.IncrementPC(2)
		return 3
	})
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU, _ uint8) uint8 {
		c.writeByte(0xFF00|uint16(c.BC.Low()), c.AF.High())
		c.IncrementPC(1)
		return 2
	})
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU, _ uint8) uint8 {
		c.AF.SetHigh(c.readByte(0xFF00 | uint16(c.BC.Low())))
		c.IncrementPC(1)
		return 2
	})
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU, _ uint8) uint8 {
		c.writeByte(c.immediate16(), c.AF.High())
		c.IncrementPC(3)
		return 4
	})
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU, _ uint8) uint8 {
		c.AF.SetHigh(c.readByte(c.immediate16()))
		c.IncrementPC(3)
		return 4
	})
}

func generateLoad16Instructions() {
	for i := uint8(0); i < 4; i++ {
		opcode := i << 4

		// LD dd, nn
		DefineInstruction(0x01|opcode, fmt.Sprintf("LD %s, d16", dd(opcode)), func(c *CPU, opcode uint8) uint8 {
			c.Set16(dd(opcode), c.immediate16())
			c.IncrementPC(3)
			return 3
		})

		// PUSH qq
		DefineInstruction(0xC5|opcode, fmt.Sprintf("PUSH %s", qq(opcode)), func(c *CPU, opcode uint8) uint8 {
			c.Push(c.Get16(qq(opcode)))
			c.IncrementPC(1)
			return 4
		})

		// POP qq
		DefineInstruction(0xC1|opcode, fmt.Sprintf("POP %s", qq(opcode)), func(c *CPU, opcode uint8) uint8 {
			c.Set16(qq(opcode), c.Pop())
			c.IncrementPC(1)
			return 3
		})
	}

	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU, _ uint8) uint8 {
		c.writeWord(c.immediate16(), c.SP)
		c.IncrementPC(3)
		return 5
	})
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU, _ uint8) uint8 {
		c.SP = c.HL.Uint16()
		c.IncrementPC(1)
		return 2
	})
	DefineInstruction(0xF8, "LD HL, SP+r8", func(c *CPU, _ uint8) uint8 {
		c.HL.SetUint16(c.addSPRelative(c.immediate8()))
		c.IncrementPC(2)
		return 3
	})
}
