// Package interrupts holds the interrupt controller of the Game Boy:
// the master enable flip-flop (IME) and the per-source enable (IE) and
// request (IF) registers.
package interrupts

import (
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when any of types.P1 bits 0-3
	// go from high to low, if the corresponding select
	// bit (types.P1 bit 4 or 5) is set to 0.
	JoypadFlag = types.Bit4

	// sources masks the five implemented interrupt sources.
	sources = 0x1F
)

// Service is the interrupt controller.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. When an interrupt is requested and enabled,
// and the IME is set, the host run loop services it by
// jumping to the interrupt vector, clearing the
// corresponding bit in the Flag register.
//
// The IME is only changed by the DI, EI and RETI
// instructions, and by the host when it services an
// interrupt.
type Service struct {
	IME    bool  // interrupt master enable
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
}

// NewService returns a new Service with every flag clear.
func NewService() *Service {
	return &Service{}
}

// ReadFlag returns IF as the CPU sees it; the
// upper 3 bits always read as set.
func (s *Service) ReadFlag() uint8 {
	return s.Flag | 0xE0
}

// WriteFlag writes IF. Only the first 5 bits are stored.
func (s *Service) WriteFlag(v uint8) {
	s.Flag = v & sources
}

// ReadEnable returns IE.
func (s *Service) ReadEnable() uint8 {
	return s.Enable
}

// WriteEnable writes IE. All 8 bits are stored, as on
// hardware, even though only 5 sources exist.
func (s *Service) WriteEnable(v uint8) {
	s.Enable = v
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled, regardless of the IME.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&sources != 0
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag & sources
}

// Vector returns the vector of the highest priority
// interrupt that is both requested and enabled, and
// acknowledges it by clearing its bit in the Flag
// register. The second return value is false when no
// interrupt is pending.
func (s *Service) Vector() (uint16, bool) {
	for i := uint8(0); i < 5; i++ {
		// get the flag for the current interrupt
		flag := uint8(1 << i)

		// check if the interrupt is requested and enabled
		if s.Flag&flag != 0 && s.Enable&flag != 0 {
			s.Flag &^= flag
			return uint16(0x0040 + i*8), true
		}
	}

	return 0, false
}
