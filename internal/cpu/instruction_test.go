package cpu

import (
	"strings"
	"testing"
)

// conditional reports whether opcode is a JR, JP, CALL or RET with a
// condition, along with its condition.
func conditional(opcode uint8) (Condition, bool) {
	switch opcode & 0xE7 {
	case 0x20, 0xC0, 0xC2, 0xC4:
		return cc(opcode), true
	}
	return 0, false
}

// failingFlags returns F such that cond is false.
func failingFlags(cond Condition) uint8 {
	if cond == ConditionNZ || cond == ConditionNC {
		return 0x90
	}
	return 0x00
}

func TestInstruction_Timing(t *testing.T) {
	// not taken for conditional instructions
	timings := []uint8{
		1, 3, 2, 2, 1, 1, 2, 1, 5, 2, 2, 2, 1, 1, 2, 1,
		1, 3, 2, 2, 1, 1, 2, 1, 3, 2, 2, 2, 1, 1, 2, 1,
		2, 3, 2, 2, 1, 1, 2, 1, 2, 2, 2, 2, 1, 1, 2, 1,
		2, 3, 2, 2, 3, 3, 3, 1, 2, 2, 2, 2, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		2, 2, 2, 2, 2, 2, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		2, 3, 3, 4, 3, 4, 2, 4, 2, 4, 3, 0, 3, 6, 2, 4,
		2, 3, 3, 0, 3, 4, 2, 4, 2, 4, 3, 0, 3, 0, 2, 4,
		3, 3, 2, 0, 0, 4, 2, 4, 4, 1, 4, 0, 0, 0, 2, 4,
		3, 3, 2, 1, 0, 4, 2, 4, 3, 2, 4, 1, 0, 0, 2, 4,
	}
	for i, timing := range timings {
		if timing == 0 {
			continue
		}
		opcode := uint8(i)

		t.Run(InstructionSet[opcode].Name(), func(t *testing.T) {
			c := newTestCPU(t, opcode, 0x00, 0x00)
			c.HL.SetUint16(0xC100)
			if cond, ok := conditional(opcode); ok {
				c.SetFlags(failingFlags(cond))
			}

			if cycles := mustStep(t, c); cycles != timing {
				t.Errorf("expected %d cycles, got %d", timing, cycles)
			}
		})
	}

	cbTiming := []uint8{
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 3, 2, 2, 2, 2, 2, 2, 2, 3, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
		2, 2, 2, 2, 2, 2, 4, 2, 2, 2, 2, 2, 2, 2, 4, 2,
	}
	for i, timing := range cbTiming {
		opcode := uint8(i)

		t.Run(InstructionSetCB[opcode].Name(), func(t *testing.T) {
			c := newTestCPU(t, 0xCB, opcode)
			c.HL.SetUint16(0xC100)

			if cycles := mustStep(t, c); cycles != timing {
				t.Errorf("expected %d cycles, got %d", timing, cycles)
			}
			if c.PC != programStart+2 {
				t.Errorf("expected PC to be 0x%04X, got 0x%04X", programStart+2, c.PC)
			}
		})
	}
}

func TestInstruction_TimingTaken(t *testing.T) {
	taken := map[uint8]uint8{
		0x20: 3, 0x28: 3, 0x30: 3, 0x38: 3, // JR cc
		0xC2: 4, 0xCA: 4, 0xD2: 4, 0xDA: 4, // JP cc
		0xC4: 6, 0xCC: 6, 0xD4: 6, 0xDC: 6, // CALL cc
		0xC0: 5, 0xC8: 5, 0xD0: 5, 0xD8: 5, // RET cc
	}
	for opcode, timing := range taken {
		cond, _ := conditional(opcode)
		c := newTestCPU(t, opcode, 0x00, 0x00)
		c.SetFlags(^failingFlags(cond) & 0x90)

		if cycles := mustStep(t, c); cycles != timing {
			t.Errorf("%s: expected %d cycles, got %d", InstructionSet[opcode].Name(), timing, cycles)
		}
	}
}

func TestInstruction_Length(t *testing.T) {
	lengths := map[uint8]uint16{
		0x01: 3, 0x06: 2, 0x08: 3, 0x10: 2, 0x20: 2, 0x36: 2, 0xC2: 3, 0xC4: 3,
		0xC6: 2, 0xE0: 2, 0xE8: 2, 0xEA: 3, 0xF0: 2, 0xF8: 2, 0xFA: 3,
	}
	for opcode, length := range lengths {
		c := newTestCPU(t, opcode, 0x00, 0x00)
		c.HL.SetUint16(0xC100)
		if cond, ok := conditional(opcode); ok {
			c.SetFlags(failingFlags(cond))
		}
		mustStep(t, c)
		if c.PC != programStart+length {
			t.Errorf("%s: expected PC to advance by %d, got %d", InstructionSet[opcode].Name(), length, c.PC-programStart)
		}
	}
}

func TestInstruction_Names(t *testing.T) {
	names := map[uint8]string{
		0x00: "NOP",
		0x06: "LD B, d8",
		0x22: "LD (HL+), A",
		0x36: "LD (HL), d8",
		0x7E: "LD A, (HL)",
		0x86: "ADD A, (HL)",
		0x90: "SUB B",
		0xC5: "PUSH BC",
		0xF1: "POP AF",
		0x20: "JR NZ, r8",
		0xDC: "CALL C, a16",
		0xFF: "RST 38H",
		0xD3: "unassigned 0xD3",
	}
	for opcode, name := range names {
		if got := InstructionSet[opcode].Name(); got != name {
			t.Errorf("0x%02X: expected %q, got %q", opcode, name, got)
		}
	}

	cbNames := map[uint8]string{
		0x00: "RLC B",
		0x36: "SWAP (HL)",
		0x7C: "BIT 7, H",
		0x86: "RES 0, (HL)",
		0xFF: "SET 7, A",
	}
	for opcode, name := range cbNames {
		if got := InstructionSetCB[opcode].Name(); got != name {
			t.Errorf("0xCB 0x%02X: expected %q, got %q", opcode, name, got)
		}
	}

	for i, instr := range InstructionSetCB {
		if strings.HasPrefix(instr.Name(), "unassigned") {
			t.Errorf("0xCB 0x%02X is unassigned", i)
		}
	}
}
