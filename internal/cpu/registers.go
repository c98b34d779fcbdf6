package cpu

import "fmt"

// RegisterPair is a 16-bit register that can also be addressed as two
// 8-bit registers. Both views share a single 16-bit cell, so a write
// through either is immediately visible through the other.
type RegisterPair struct {
	value    uint16
	zeroBits uint16 // bits that always read 0, the low nibble of AF
}

// High returns the upper 8 bits of the pair.
func (r *RegisterPair) High() uint8 {
	return uint8(r.value >> 8)
}

// Low returns the lower 8 bits of the pair.
func (r *RegisterPair) Low() uint8 {
	return uint8(r.value)
}

// SetHigh sets the upper 8 bits of the pair.
func (r *RegisterPair) SetHigh(v uint8) {
	r.SetUint16(uint16(v)<<8 | r.value&0x00FF)
}

// SetLow sets the lower 8 bits of the pair.
func (r *RegisterPair) SetLow(v uint8) {
	r.SetUint16(r.value&0xFF00 | uint16(v))
}

// Uint16 returns the value of the pair.
func (r *RegisterPair) Uint16() uint16 {
	return r.value
}

// SetUint16 sets the value of the pair.
func (r *RegisterPair) SetUint16(v uint16) {
	r.value = v &^ r.zeroBits
}

// Register identifies an 8-bit register by its 3-bit operand encoding.
// Index 6 encodes the (HL) memory operand and is not a register.
type Register uint8

const (
	RegB Register = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	regHL
	RegA
	// RegF has no operand encoding, instructions only touch the flags
	// through the flag helpers.
	RegF
)

var registerNames = [...]string{"B", "C", "D", "E", "H", "L", "(HL)", "A", "F"}

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return fmt.Sprintf("Register(%d)", uint8(r))
}

// Pair identifies a 16-bit register.
type Pair uint8

const (
	PairAF Pair = iota
	PairBC
	PairDE
	PairHL
	PairSP
	PairPC
)

var pairNames = [...]string{"AF", "BC", "DE", "HL", "SP", "PC"}

func (p Pair) String() string {
	if int(p) < len(pairNames) {
		return pairNames[p]
	}
	return fmt.Sprintf("Pair(%d)", uint8(p))
}

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// Condition is one of the four branch conditions, in the order
// of their 2-bit encoding.
type Condition uint8

const (
	ConditionNZ Condition = iota
	ConditionZ
	ConditionNC
	ConditionC
)

var conditionNames = [...]string{"NZ", "Z", "NC", "C"}

func (c Condition) String() string {
	return conditionNames[c&3]
}

// Registers is the register file of the CPU. All arithmetic on
// it wraps, nothing traps on overflow.
type Registers struct {
	AF RegisterPair
	BC RegisterPair
	DE RegisterPair
	HL RegisterPair

	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
}

// NewRegisters returns a register file with every register zeroed.
func NewRegisters() Registers {
	return Registers{
		AF: RegisterPair{zeroBits: 0x000F},
	}
}

// Get8 returns the value of an 8-bit register.
func (r *Registers) Get8(reg Register) uint8 {
	switch reg {
	case RegA:
		return r.AF.High()
	case RegF:
		return r.AF.Low()
	case RegB:
		return r.BC.High()
	case RegC:
		return r.BC.Low()
	case RegD:
		return r.DE.High()
	case RegE:
		return r.DE.Low()
	case RegH:
		return r.HL.High()
	case RegL:
		return r.HL.Low()
	}
	panic(fmt.Sprintf("cpu: %s is not an 8-bit register", reg))
}

// Set8 sets the value of an 8-bit register.
func (r *Registers) Set8(reg Register, v uint8) {
	switch reg {
	case RegA:
		r.AF.SetHigh(v)
	case RegF:
		r.AF.SetLow(v)
	case RegB:
		r.BC.SetHigh(v)
	case RegC:
		r.BC.SetLow(v)
	case RegD:
		r.DE.SetHigh(v)
	case RegE:
		r.DE.SetLow(v)
	case RegH:
		r.HL.SetHigh(v)
	case RegL:
		r.HL.SetLow(v)
	default:
		panic(fmt.Sprintf("cpu: %s is not an 8-bit register", reg))
	}
}

// Get16 returns the value of a 16-bit register.
func (r *Registers) Get16(p Pair) uint16 {
	switch p {
	case PairAF:
		return r.AF.Uint16()
	case PairBC:
		return r.BC.Uint16()
	case PairDE:
		return r.DE.Uint16()
	case PairHL:
		return r.HL.Uint16()
	case PairSP:
		return r.SP
	case PairPC:
		return r.PC
	}
	panic(fmt.Sprintf("cpu: unknown register pair %s", p))
}

// Set16 sets the value of a 16-bit register.
func (r *Registers) Set16(p Pair, v uint16) {
	switch p {
	case PairAF:
		r.AF.SetUint16(v)
	case PairBC:
		r.BC.SetUint16(v)
	case PairDE:
		r.DE.SetUint16(v)
	case PairHL:
		r.HL.SetUint16(v)
	case PairSP:
		r.SP = v
	case PairPC:
		r.PC = v
	default:
		panic(fmt.Sprintf("cpu: unknown register pair %s", p))
	}
}

// IncrementPC advances the program counter by n, wrapping at 0xFFFF.
func (r *Registers) IncrementPC(n uint16) {
	r.PC += n
}

// Flags returns the F register.
func (r *Registers) Flags() uint8 {
	return r.AF.Low()
}

// SetFlags sets the F register. The lower nibble always reads 0.
func (r *Registers) SetFlags(v uint8) {
	r.AF.SetLow(v)
}

// isFlagSet returns true if the given flag is set.
func (r *Registers) isFlagSet(flag Flag) bool {
	return r.AF.Low()&(1<<flag) != 0
}

// setFlag sets or clears a single flag.
func (r *Registers) setFlag(flag Flag, set bool) {
	if set {
		r.AF.SetLow(r.AF.Low() | 1<<flag)
	} else {
		r.AF.SetLow(r.AF.Low() &^ (1 << flag))
	}
}

func (r *Registers) Zero() bool      { return r.isFlagSet(FlagZero) }
func (r *Registers) Subtract() bool  { return r.isFlagSet(FlagSubtract) }
func (r *Registers) HalfCarry() bool { return r.isFlagSet(FlagHalfCarry) }
func (r *Registers) Carry() bool     { return r.isFlagSet(FlagCarry) }

func (r *Registers) SetZero(v bool)      { r.setFlag(FlagZero, v) }
func (r *Registers) SetSubtract(v bool)  { r.setFlag(FlagSubtract, v) }
func (r *Registers) SetHalfCarry(v bool) { r.setFlag(FlagHalfCarry, v) }
func (r *Registers) SetCarry(v bool)     { r.setFlag(FlagCarry, v) }

// CheckCondition evaluates a branch condition against the flags.
func (r *Registers) CheckCondition(cond Condition) bool {
	switch cond {
	case ConditionNZ:
		return !r.Zero()
	case ConditionZ:
		return r.Zero()
	case ConditionNC:
		return !r.Carry()
	case ConditionC:
		return r.Carry()
	}
	panic(fmt.Sprintf("cpu: unknown condition %d", cond))
}

func (r *Registers) String() string {
	return fmt.Sprintf("AF: %04X BC: %04X DE: %04X HL: %04X SP: %04X PC: %04X",
		r.AF.Uint16(), r.BC.Uint16(), r.DE.Uint16(), r.HL.Uint16(), r.SP, r.PC)
}
