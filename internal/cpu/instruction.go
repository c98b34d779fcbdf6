package cpu

import (
	"fmt"
)

// Instruction represents a single instruction of the CPU. fn executes
// the instruction, leaves PC at the next instruction to execute, and
// returns the number of M-cycles taken.
type Instruction struct {
	name string
	fn   func(c *CPU, opcode uint8) uint8
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

var (
	// InstructionSet holds the first 256 instructions.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the 256 instructions prefixed by 0xCB.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction in the InstructionSet,
// with the provided opcode.
func DefineInstruction(opcode uint8, name string, fn func(*CPU, uint8) uint8) {
	InstructionSet[opcode] = Instruction{name: name, fn: fn}
}

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU, uint8) uint8) {
	InstructionSetCB[opcode] = Instruction{name: name, fn: fn}
}

// unassignedOpcode is the handler of every slot without an instruction.
func unassignedOpcode(c *CPU, opcode uint8) uint8 {
	panic(fmt.Errorf("%w 0x%02X", ErrUnassignedOpcode, opcode))
}

func init() {
	for i := range InstructionSet {
		DefineInstruction(uint8(i), fmt.Sprintf("unassigned 0x%02X", i), unassignedOpcode)
		DefineInstructionCB(uint8(i), fmt.Sprintf("unassigned 0xCB 0x%02X", i), unassignedOpcode)
	}

	generateControlInstructions()
	generateLoadInstructions()
	generateLoad16Instructions()
	generateALUInstructions()
	generateALU16Instructions()
	generateJumpInstructions()
	generateRotateAccumulatorInstructions()

	generateRotateInstructions()
	generateBitInstructions()
}

// generateControlInstructions defines the instructions that change the
// mode of the CPU rather than its data.
func generateControlInstructions() {
	DefineInstruction(0x00, "NOP", func(c *CPU, _ uint8) uint8 {
		c.IncrementPC(1)
		return 1
	})
	DefineInstruction(0x10, "STOP", func(c *CPU, _ uint8) uint8 {
		c.mode = ModeStop
		c.IncrementPC(2)
		return 1
	})
	DefineInstruction(0x76, "HALT", func(c *CPU, _ uint8) uint8 {
		c.mode = ModeHalt
		c.IncrementPC(1)
		return 1
	})
	DefineInstruction(0xF3, "DI", func(c *CPU, _ uint8) uint8 {
		c.irq.IME = false
		c.IncrementPC(1)
		return 1
	})
	DefineInstruction(0xFB, "EI", func(c *CPU, _ uint8) uint8 {
		c.irq.IME = true
		c.IncrementPC(1)
		return 1
	})
	DefineInstruction(0xCB, "PREFIX CB", func(c *CPU, _ uint8) uint8 {
		c.prefixed = true
		c.opcode = c.readByte(c.PC + 1)
		return InstructionSetCB[c.opcode].fn(c, c.opcode)
	})
}
