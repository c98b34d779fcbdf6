package types

// Peripheral is a device that runs alongside the CPU, such as the
// timer or the PPU. The host calls Step after every instruction with
// the number of M-cycles that instruction took, which is the only
// time base a peripheral may rely on.
type Peripheral interface {
	// Step advances the peripheral by the given number of M-cycles.
	Step(cycles uint8)
}
