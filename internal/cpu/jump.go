package cpu

import "fmt"

// jumpRelative adds the signed displacement e to the address of the
// next instruction.
func (c *CPU) jumpRelative(e uint8) {
	c.PC += 2 + uint16(int8(e))
}

// call pushes the address of the next instruction and jumps to address.
func (c *CPU) call(address uint16, length uint16) {
	c.Push(c.PC + length)
	c.PC = address
}

func generateJumpInstructions() {
	DefineInstruction(0x18, "JR r8", func(c *CPU, _ uint8) uint8 {
		c.jumpRelative(c.immediate8())
		return 3
	})
	DefineInstruction(0xC3, "JP a16", func(c *CPU, _ uint8) uint8 {
		c.PC = c.immediate16()
		return 4
	})
	DefineInstruction(0xE9, "JP HL", func(c *CPU, _ uint8) uint8 {
		c.PC = c.HL.Uint16()
		return 1
	})
	DefineInstruction(0xCD, "CALL a16", func(c *CPU, _ uint8) uint8 {
		c.call(c.immediate16(), 3)
		return 6
	})
	DefineInstruction(0xC9, "RET", func(c *CPU, _ uint8) uint8 {
		c.PC = c.Pop()
		return 4
	})
	DefineInstruction(0xD9, "RETI", func(c *CPU, _ uint8) uint8 {
		c.PC = c.Pop()
		c.irq.IME = true
		return 4
	})

	for i := uint8(0); i < 4; i++ {
		opcode := i << 3

		// JR cc, e
		DefineInstruction(0x20|opcode, fmt.Sprintf("JR %s, r8", cc(opcode)), func(c *CPU, opcode uint8) uint8 {
			if c.CheckCondition(cc(opcode)) {
				c.jumpRelative(c.immediate8())
				return 3
			}
			c.IncrementPC(2)
			return 2
		})

		// JP cc, nn
		DefineInstruction(0xC2|opcode, fmt.Sprintf("JP %s, a16", cc(opcode)), func(c *CPU, opcode uint8) uint8 {
			if c.CheckCondition(cc(opcode)) {
				c.PC = c.immediate16()
				return 4
			}
			c.IncrementPC(3)
			return 3
		})

		// CALL cc, nn
		DefineInstruction(0xC4|opcode, fmt.Sprintf("CALL %s, a16", cc(opcode)), func(c *CPU, opcode uint8) uint8 {
			if c.CheckCondition(cc(opcode)) {
				c.call(c.immediate16(), 3)
				return 6
			}
			c.IncrementPC(3)
			return 3
		})

		// RET cc
		DefineInstruction(0xC0|opcode, fmt.Sprintf("RET %s", cc(opcode)), func(c *CPU, opcode uint8) uint8 {
			if c.CheckCondition(cc(opcode)) {
				c.PC = c.Pop()
				return 5
			}
			c.IncrementPC(1)
			return 2
		})
	}

	// RST t
	for t := uint8(0); t < 8; t++ {
		DefineInstruction(0xC7|t<<3, fmt.Sprintf("RST %02XH", t<<3), func(c *CPU, opcode uint8) uint8 {
			c.call(uint16(opcode&0x38), 1)
			return 4
		})
	}
}
