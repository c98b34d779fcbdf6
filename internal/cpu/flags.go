package cpu

// FlagPolicy decides how an operation treats a single flag.
type FlagPolicy uint8

const (
	// Ignore leaves the flag at its previous value.
	Ignore FlagPolicy = iota
	// Set sets the flag without computing it.
	Set
	// Clear clears the flag without computing it.
	Clear
	// Calculate derives the flag from the operands. For the
	// subtract flag this is the same as Set.
	Calculate
)

// Operation is the arithmetic the flags are computed for.
type Operation uint8

const (
	Add Operation = iota
	Subtract
)

// FlagPolicies holds one FlagPolicy per flag.
type FlagPolicies struct {
	Zero      FlagPolicy
	Subtract  FlagPolicy
	HalfCarry FlagPolicy
	Carry     FlagPolicy
}

// width describes the operand size of a flag computation.
type width struct {
	half uint32 // mask of the bits below the half carry boundary
	full uint32 // mask of the operand
}

var (
	width8  = width{half: 0xF, full: 0xFF}
	width16 = width{half: 0xFFF, full: 0xFFFF}
)

// Flags8 computes the F register for an 8-bit operation a op b,
// starting from prev. The half carry is taken from bit 3.
func Flags8(prev, a, b uint8, carryIn bool, op Operation, p FlagPolicies) uint8 {
	return computeFlags(prev, uint32(a), uint32(b), carryIn, op, p, width8)
}

// Flags16 computes the F register for a 16-bit operation a op b,
// starting from prev. The half carry is taken from bit 11.
func Flags16(prev uint8, a, b uint16, carryIn bool, op Operation, p FlagPolicies) uint8 {
	return computeFlags(prev, uint32(a), uint32(b), carryIn, op, p, width16)
}

func computeFlags(prev uint8, a, b uint32, carryIn bool, op Operation, p FlagPolicies, w width) uint8 {
	var carry uint32
	if carryIn {
		carry = 1
	}

	var result uint32
	var half, full bool
	switch op {
	case Add:
		result = a + b + carry
		half = (a&w.half)+(b&w.half)+carry > w.half
		full = result > w.full
	case Subtract:
		result = a - b - carry
		half = a&w.half < b&w.half+carry
		full = a < b+carry
	}

	f := prev
	f = applyPolicy(f, FlagZero, p.Zero, result&w.full == 0)
	f = applyPolicy(f, FlagSubtract, p.Subtract, true)
	f = applyPolicy(f, FlagHalfCarry, p.HalfCarry, half)
	f = applyPolicy(f, FlagCarry, p.Carry, full)

	return f & 0xF0
}

func applyPolicy(f uint8, flag Flag, policy FlagPolicy, calculated bool) uint8 {
	switch policy {
	case Set:
		return f | 1<<flag
	case Clear:
		return f &^ (1 << flag)
	case Calculate:
		if calculated {
			return f | 1<<flag
		}
		return f &^ (1 << flag)
	}
	return f
}

// Policies shared by the instruction families.
var (
	addPolicies   = FlagPolicies{Calculate, Clear, Calculate, Calculate}
	subPolicies   = FlagPolicies{Calculate, Calculate, Calculate, Calculate}
	incPolicies   = FlagPolicies{Calculate, Clear, Calculate, Ignore}
	decPolicies   = FlagPolicies{Calculate, Calculate, Calculate, Ignore}
	andPolicies   = FlagPolicies{Calculate, Clear, Set, Clear}
	orPolicies    = FlagPolicies{Calculate, Clear, Clear, Clear}
	addHLPolicies = FlagPolicies{Ignore, Clear, Calculate, Calculate}
	spPolicies    = FlagPolicies{Clear, Clear, Calculate, Calculate}
	bitPolicies   = FlagPolicies{Calculate, Clear, Set, Ignore}
)

// shiftPolicies returns the policies of a rotate or shift, with the
// carry taken from the bit shifted out. The accumulator rotates
// always clear the zero flag.
func shiftPolicies(carry bool, zero FlagPolicy) FlagPolicies {
	p := FlagPolicies{Zero: zero, Subtract: Clear, HalfCarry: Clear, Carry: Clear}
	if carry {
		p.Carry = Set
	}
	return p
}

// setFlags8 runs the flag engine for an 8-bit operation and stores
// the result in F.
func (c *CPU) setFlags8(a, b uint8, carryIn bool, op Operation, p FlagPolicies) {
	c.SetFlags(Flags8(c.Flags(), a, b, carryIn, op, p))
}

// setFlags16 runs the flag engine for a 16-bit operation and stores
// the result in F.
func (c *CPU) setFlags16(a, b uint16, carryIn bool, op Operation, p FlagPolicies) {
	c.SetFlags(Flags16(c.Flags(), a, b, carryIn, op, p))
}
