// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/io"
	"github.com/thelolagemann/gbcore/internal/types"
)

// bits are the bits of the system counter that clock TIMA, selected by
// the lower two bits of types.TAC.
//
//	00 = 4096 Hz   (bit 9)
//	01 = 262144 Hz (bit 3)
//	10 = 65536 Hz  (bit 5)
//	11 = 16384 Hz  (bit 7)
var bits = [4]uint16{512, 8, 32, 128}

// Controller is a timer controller. It is driven by the number of
// M-cycles each instruction takes, and requests the timer interrupt
// when TIMA overflows.
type Controller struct {
	// sysClock is the 16-bit system counter, types.DIV is its upper byte.
	sysClock uint16

	tima uint8
	tma  uint8
	tac  uint8

	// lastBit is the last value of the TIMA clock signal, the selected
	// counter bit ANDed with the enable bit.
	lastBit bool

	irq *interrupts.Service
}

// NewController returns a new timer controller, attaching the timer
// registers to regs.
func NewController(regs *io.Registers, irq *interrupts.Service) *Controller {
	c := &Controller{
		irq: irq,
	}
	// set up registers
	regs.RegisterHardware(
		types.DIV,
		func(v uint8) {
			// any write resets the whole counter
			c.sysClock = 0
			c.update()
		}, func() uint8 {
			return uint8(c.sysClock >> 8)
		},
	)
	regs.RegisterHardware(
		types.TIMA,
		func(v uint8) {
			c.tima = v
		}, func() uint8 {
			return c.tima
		},
	)
	regs.RegisterHardware(
		types.TMA,
		func(v uint8) {
			c.tma = v
		}, func() uint8 {
			return c.tma
		},
	)
	regs.RegisterHardware(
		types.TAC,
		func(v uint8) {
			c.tac = v & 0b111
			c.update()
		}, func() uint8 {
			return c.tac | 0b11111000
		},
	)

	return c
}

// Enabled returns true if TIMA is counting.
func (c *Controller) Enabled() bool {
	return c.tac&types.Bit2 != 0
}

// Step advances the timer by the given number of M-cycles.
func (c *Controller) Step(cycles uint8) {
	for i := 0; i < int(cycles)*4; i++ {
		c.sysClock++
		c.update()
	}
}

// update samples the TIMA clock signal, incrementing TIMA on a falling
// edge. Writes to DIV and TAC can cause a falling edge too.
func (c *Controller) update() {
	newBit := c.Enabled() && c.sysClock&bits[c.tac&0b11] != 0

	if c.lastBit && !newBit {
		c.tima++
		if c.tima == 0 {
			c.tima = c.tma
			c.irq.Request(interrupts.TimerFlag)
		}
	}

	c.lastBit = newBit
}

var _ types.Peripheral = (*Controller)(nil)
