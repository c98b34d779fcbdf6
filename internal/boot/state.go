package boot

import "github.com/thelolagemann/gbcore/internal/types"

// Registers is the CPU register state at the moment the boot ROM
// jumps to the cartridge entry point.
type Registers struct {
	AF, BC, DE, HL uint16
	SP, PC         uint16
}

// PostBootRegisters are the register values the DMG boot ROM
// leaves behind.
var PostBootRegisters = Registers{
	AF: 0x01B0,
	BC: 0x0013,
	DE: 0x00D8,
	HL: 0x014D,
	SP: 0xFFFE,
	PC: 0x0100,
}

// IOValue is a single I/O register and the value it holds after
// the boot ROM has run.
type IOValue struct {
	Address types.HardwareAddress
	Value   uint8
}

// PostBootIO are the I/O register values the DMG boot ROM leaves
// behind. They are applied in order when the boot sequence is
// skipped.
var PostBootIO = []IOValue{
	{types.TIMA, 0x00},
	{types.TMA, 0x00},
	{types.TAC, 0x00},
	{types.NR10, 0x80},
	{types.NR11, 0xBF},
	{types.NR12, 0xF3},
	{types.NR14, 0xBF},
	{types.NR21, 0x3F},
	{types.NR22, 0x00},
	{types.NR24, 0xBF},
	{types.NR30, 0x7F},
	{types.NR31, 0xFF},
	{types.NR32, 0x9F},
	{types.NR34, 0xBF},
	{types.NR41, 0xFF},
	{types.NR42, 0x00},
	{types.NR43, 0x00},
	{types.NR44, 0xBF},
	{types.NR50, 0x77},
	{types.NR51, 0xF3},
	{types.NR52, 0xF1},
	{types.LCDC, 0x91},
	{types.SCY, 0x00},
	{types.SCX, 0x00},
	{types.LYC, 0x00},
	{types.BGP, 0xFC},
	{types.OBP0, 0xFF},
	{types.OBP1, 0xFF},
	{types.WY, 0x00},
	{types.WX, 0x00},
}
