package tests

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/thelolagemann/gbcore/internal/gameboy"
)

// blarggTest runs one of blargg's test ROMs, which report their
// result as text over the serial port.
type blarggTest struct {
	romPath string
	name    string
	passed  bool
}

func (b *blarggTest) Name() string {
	return b.name
}

func (b *blarggTest) Run(t *testing.T) {
	t.Run(b.name, func(t *testing.T) {
		var output string
		g := loadROM(t, b.romPath, gameboy.SerialDebugger(&output))

		var ran uint64
		for ran < maxCycles {
			if strings.Contains(output, "Passed") || strings.Contains(output, "Failed") {
				break
			}
			n, err := g.RunFor(chunk)
			if err != nil {
				t.Fatalf("%v\noutput: %s", err, output)
			}
			ran += n
		}

		if !strings.Contains(output, "Passed") {
			t.Errorf("no pass reported after %d M-cycles, output:\n%s", ran, output)
			return
		}
		b.passed = true
	})
}

func (b *blarggTest) Passed() bool {
	return b.passed
}

func testBlargg(t *testing.T, table *TestTable) {
	// create top level test suite
	tS := table.NewTestSuite("blargg")

	// cpu_instrs, one ROM per instruction group
	tc := tS.NewTestCollection("cpu_instrs")
	for _, rom := range romsIn(t, "blargg/cpu_instrs/individual") {
		tc.Add(&blarggTest{
			romPath: rom,
			name:    strings.TrimSuffix(filepath.Base(rom), ".gb"),
		})
	}

	// the combined ROM switches banks with MBC1
	tS.NewTestCollection("cpu_instrs_combined").Add(&blarggTest{
		romPath: filepath.Join(romDir, "blargg/cpu_instrs/cpu_instrs.gb"),
		name:    "cpu_instrs",
	})
}
