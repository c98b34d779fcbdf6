package gameboy

import (
	io2 "io"

	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before it is wired together.
type Opt func(gb *GameBoy)

// WithBootROM sets the boot ROM for the emulator. The
// boot ROM is mapped over the cartridge from 0x0000
// and execution begins there, rather than at 0x0100
// with the registers set to the values upon completion
// of the boot ROM.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithSerialOutput writes every byte sent over the
// serial port to out.
func WithSerialOutput(out io2.Writer) Opt {
	return func(gb *GameBoy) {
		gb.serialOut = out
	}
}

// SerialDebugger intercepts serial output and appends
// it to output. Test ROMs report their results this way.
func SerialDebugger(output *string) Opt {
	return WithSerialOutput(&stringWriter{s: output})
}

// WithPeripheral attaches a peripheral that is stepped
// after every instruction, after the timer.
func WithPeripheral(p types.Peripheral) Opt {
	return func(gb *GameBoy) {
		gb.peripherals = append(gb.peripherals, p)
	}
}

// Speed sets the speed Run paces the emulation to, as
// a multiple of the real hardware. 0 runs as fast as
// possible.
func Speed(speed float64) Opt {
	return func(gb *GameBoy) {
		gb.speed = speed
	}
}

type stringWriter struct {
	s *string
}

func (w *stringWriter) Write(p []byte) (int, error) {
	*w.s += string(p)
	return len(p), nil
}
