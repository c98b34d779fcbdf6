package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gbcore/internal/mmu"
)

// ErrUnassignedOpcode is raised when the CPU decodes an opcode that
// has no instruction.
var ErrUnassignedOpcode = errors.New("cpu: unassigned opcode")

// Error is returned by CPU.Step when an instruction faults. It
// records where the fault happened, and wraps the cause.
type Error struct {
	PC       uint16
	Opcode   uint8
	Prefixed bool // Opcode is from the 0xCB table
	Err      error
}

func (e *Error) Error() string {
	opcode := fmt.Sprintf("0x%02X", e.Opcode)
	if e.Prefixed {
		opcode = fmt.Sprintf("0xCB 0x%02X", e.Opcode)
	}
	return fmt.Sprintf("%v (opcode %s at PC 0x%04X)", e.Err, opcode, e.PC)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// isFault returns true if a recovered value is one of the faults
// an instruction raises, rather than a bug.
func isFault(r any) (error, bool) {
	err, ok := r.(error)
	if !ok {
		return nil, false
	}
	if errors.Is(err, ErrUnassignedOpcode) || errors.Is(err, mmu.ErrUnmappedAddress) {
		return err, true
	}
	return nil, false
}
