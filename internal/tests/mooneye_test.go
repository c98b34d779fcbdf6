package tests

import (
	"path/filepath"
	"testing"
)

// breakpoint is the instruction mooneye test ROMs execute once
// they have a result.
const breakpoint = "LD B, B"

type mooneyeTest struct {
	romPath string
	name    string
	passed  bool
}

func (m *mooneyeTest) Name() string {
	return m.name
}

func (m *mooneyeTest) Run(t *testing.T) {
	if pass := testMooneyeROM(t, m.romPath); pass {
		m.passed = true
	}
}

func (m *mooneyeTest) Passed() bool {
	return m.passed
}

func testMooneye(t *testing.T, roms *TestTable) {
	// create top level test
	tS := roms.NewTestSuite("mooneye")

	// only the groups that do not depend on the PPU or APU
	for _, dir := range []string{"bits", "instr", "timer"} {
		tc := tS.NewTestCollection(dir)
		for _, rom := range romsIn(t, filepath.Join("mooneye/acceptance", dir)) {
			tc.Add(&mooneyeTest{
				romPath: rom,
				name:    filepath.Base(rom),
			})
		}
	}
}

// testMooneyeROM tests a mooneye rom. A passing test will
// execute the rom until the breakpoint is reached (LD B, B),
// and writes the fibonacci sequence 3/5/8/13/21/34 to the
// registers B, C, D, E, H, L. The test will then compare the
// registers to the expected values.
func testMooneyeROM(t *testing.T, romFile string) bool {
	passed := true
	t.Run(filepath.Base(romFile), func(t *testing.T) {
		g := loadROM(t, romFile)

		// run until breakpoint
		hit := false
		for i := 0; i < maxCycles && !hit; i++ {
			if g.CPU.Instruction().Name() == breakpoint {
				hit = true
			}
			if _, err := g.Step(); err != nil {
				t.Fatal(err)
			}
		}
		if !hit {
			t.Errorf("breakpoint not reached")
			passed = false
			return
		}

		expectedRegisters := []uint8{3, 5, 8, 13, 21, 34}
		for i, r := range []uint8{g.CPU.BC.High(), g.CPU.BC.Low(), g.CPU.DE.High(), g.CPU.DE.Low(), g.CPU.HL.High(), g.CPU.HL.Low()} {
			if r != expectedRegisters[i] {
				t.Errorf("expected register %d to be %d, got %d", i, expectedRegisters[i], r)
				passed = false
			}
		}
	})
	return passed
}
