package io

import (
	io2 "io"

	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// transferStart is the value written to types.SC to start a
// transfer using the internal clock.
const transferStart = 0x81

// Serial is the serial debug channel. No link cable is emulated;
// instead every transfer started by writing 0x81 to types.SC emits
// the byte held in types.SB to the output writer. Test ROMs use
// this to print their results.
type Serial struct {
	out io2.Writer
	log log.Logger

	regs *Registers
	sc   uint8
}

// NewSerial attaches a serial channel to the register file,
// writing transferred bytes to out, which may be nil.
func NewSerial(regs *Registers, out io2.Writer, l log.Logger) *Serial {
	s := &Serial{
		out:  out,
		log:  l,
		regs: regs,
	}
	regs.RegisterHardware(types.SC, s.writeControl, func() uint8 {
		return s.sc
	})

	return s
}

// SetOutput replaces the output writer.
func (s *Serial) SetOutput(out io2.Writer) {
	s.out = out
}

func (s *Serial) writeControl(v uint8) {
	s.sc = v
	if v != transferStart {
		return
	}

	b := s.regs.Read(types.SB)
	s.log.Debugf("serial: %02X (%q)", b, rune(b))
	if s.out != nil {
		if _, err := s.out.Write([]byte{b}); err != nil {
			s.log.Warnf("serial: unable to write output: %v", err)
		}
	}
}
