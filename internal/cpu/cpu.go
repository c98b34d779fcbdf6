// Package cpu provides the SM83 CPU of the Game Boy: the register
// file, the flag engine, and the base and 0xCB prefixed instruction
// tables.
package cpu

import (
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

const (
	// ClockSpeed is the clock speed of the CPU, in T-cycles per second.
	ClockSpeed = 4194304
	// MCycleSpeed is the number of M-cycles per second.
	MCycleSpeed = ClockSpeed / 4
)

// Bus is the address space the CPU executes from.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT, and left once an interrupt is pending.
	ModeHalt
	// ModeStop is entered by STOP, and left once an interrupt is pending.
	ModeStop
)

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	bus Bus
	irq *interrupts.Service

	mode mode

	// the instruction being executed, for fault reports
	pc       uint16
	opcode   uint8
	prefixed bool
}

// NewCPU creates a new CPU with every register cleared, reading and
// writing memory through bus.
func NewCPU(bus Bus, irq *interrupts.Service) *CPU {
	return &CPU{
		Registers: NewRegisters(),
		bus:       bus,
		irq:       irq,
	}
}

// InitBootState loads the registers with the values the boot ROM
// leaves behind when it jumps to the cartridge.
func (c *CPU) InitBootState() {
	r := boot.PostBootRegisters
	c.AF.SetUint16(r.AF)
	c.BC.SetUint16(r.BC)
	c.DE.SetUint16(r.DE)
	c.HL.SetUint16(r.HL)
	c.SP = r.SP
	c.PC = r.PC
}

// Halted returns true if the CPU is waiting in HALT.
func (c *CPU) Halted() bool {
	return c.mode == ModeHalt
}

// Stopped returns true if the CPU is waiting in STOP.
func (c *CPU) Stopped() bool {
	return c.mode == ModeStop
}

// Step executes a single instruction and returns the number of
// M-cycles it took. While halted or stopped no instruction is
// fetched and Step returns 1, until an enabled interrupt is
// requested.
//
// Faults raised while executing the instruction, such as an
// unassigned opcode or an access to unmapped memory, are returned
// as an *Error. The machine state is then undefined.
func (c *CPU) Step() (cycles uint8, err error) {
	if c.mode != ModeNormal {
		if !c.irq.HasInterrupts() {
			return 1, nil
		}
		c.mode = ModeNormal
	}

	c.pc, c.prefixed = c.PC, false
	defer func() {
		if r := recover(); r != nil {
			fault, ok := isFault(r)
			if !ok {
				panic(r)
			}
			cycles, err = 0, &Error{PC: c.pc, Opcode: c.opcode, Prefixed: c.prefixed, Err: fault}
		}
	}()

	c.opcode = c.readByte(c.PC)
	return InstructionSet[c.opcode].fn(c, c.opcode), nil
}

// Interrupt services an interrupt by pushing PC and jumping to
// vector, leaving HALT or STOP. IME is cleared. It takes 5 M-cycles.
// A push into unmapped memory is returned as an *Error, as in Step.
func (c *CPU) Interrupt(vector uint16) (cycles uint8, err error) {
	c.mode = ModeNormal
	c.irq.IME = false

	c.pc, c.opcode, c.prefixed = c.PC, 0, false
	defer func() {
		if r := recover(); r != nil {
			fault, ok := isFault(r)
			if !ok {
				panic(r)
			}
			cycles, err = 0, &Error{PC: c.pc, Err: fault}
		}
	}()

	c.Push(c.PC)
	c.PC = vector
	return 5, nil
}

// Instruction returns the instruction at the program counter,
// without executing it.
func (c *CPU) Instruction() Instruction {
	opcode := c.bus.Read(c.PC)
	if opcode == 0xCB {
		return InstructionSetCB[c.bus.Read(c.PC+1)]
	}
	return InstructionSet[opcode]
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	return c.bus.Read(addr)
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, val uint8) {
	c.bus.Write(addr, val)
}

// readWord reads a little endian word from memory.
func (c *CPU) readWord(addr uint16) uint16 {
	low := c.readByte(addr)
	return utils.BytesToUint16(c.readByte(addr+1), low)
}

// writeWord writes a little endian word to memory.
func (c *CPU) writeWord(addr uint16, val uint16) {
	high, low := utils.Uint16ToBytes(val)
	c.writeByte(addr, low)
	c.writeByte(addr+1, high)
}

// immediate8 returns the byte following the opcode.
func (c *CPU) immediate8() uint8 {
	return c.readByte(c.PC + 1)
}

// immediate16 returns the word following the opcode.
func (c *CPU) immediate16() uint16 {
	return c.readWord(c.PC + 1)
}

// Push pushes a word onto the stack.
func (c *CPU) Push(v uint16) {
	high, low := utils.Uint16ToBytes(v)
	c.SP--
	c.writeByte(c.SP, high)
	c.SP--
	c.writeByte(c.SP, low)
}

// Pop pops a word off the stack.
func (c *CPU) Pop() uint16 {
	low := c.readByte(c.SP)
	c.SP++
	high := c.readByte(c.SP)
	c.SP++
	return utils.BytesToUint16(high, low)
}

// readR reads the operand encoded by a 3-bit register index, where
// index 6 is the byte at (HL).
func (c *CPU) readR(index uint8) uint8 {
	if Register(index) == regHL {
		return c.readByte(c.HL.Uint16())
	}
	return c.Get8(Register(index))
}

// writeR writes the operand encoded by a 3-bit register index, where
// index 6 is the byte at (HL).
func (c *CPU) writeR(index, value uint8) {
	if Register(index) == regHL {
		c.writeByte(c.HL.Uint16(), value)
		return
	}
	c.Set8(Register(index), value)
}

var (
	ddPairs = [4]Pair{PairBC, PairDE, PairHL, PairSP}
	ssPairs = [4]Pair{PairBC, PairDE, PairHL, PairSP}
	qqPairs = [4]Pair{PairBC, PairDE, PairHL, PairAF}
)

// dd decodes the 16-bit register in bits 5-4 of LD dd, nn.
func dd(opcode uint8) Pair {
	return ddPairs[opcode>>4&3]
}

// ss decodes the 16-bit register in bits 5-4 of INC ss, DEC ss and
// ADD HL, ss.
func ss(opcode uint8) Pair {
	return ssPairs[opcode>>4&3]
}

// qq decodes the 16-bit register in bits 5-4 of PUSH qq and POP qq.
func qq(opcode uint8) Pair {
	return qqPairs[opcode>>4&3]
}

// cc decodes the condition in bits 4-3 of a conditional instruction.
func cc(opcode uint8) Condition {
	return Condition(opcode >> 3 & 3)
}
