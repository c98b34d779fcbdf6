package mmu

import "github.com/thelolagemann/gbcore/internal/types"

// WRAM is the 8kB of work RAM, split into two fixed 4kB banks at
// 0xC000 - 0xCFFF and 0xD000 - 0xDFFF. The echo region at 0xE000 -
// 0xFDFF is backed by the same storage, so every address in it is the
// work RAM address 0x2000 below.
type WRAM struct {
	raw [2][0x1000]uint8
}

// NewWRAM returns a new, zeroed WRAM.
func NewWRAM() *WRAM {
	return &WRAM{}
}

// resolve maps an address in work RAM or its echo to a bank and offset.
func (w *WRAM) resolve(addr uint16) (bank int, offset uint16) {
	if addr >= types.EchoStart {
		addr -= types.EchoMirrorDiff
	}
	if addr >= types.WRAM1Start {
		return 1, addr & 0xFFF
	}
	return 0, addr & 0xFFF
}

// Read returns the value at addr, which must be in 0xC000 - 0xFDFF.
func (w *WRAM) Read(addr uint16) uint8 {
	bank, offset := w.resolve(addr)
	return w.raw[bank][offset]
}

// Write stores v at addr, which must be in 0xC000 - 0xFDFF. Writes to
// the echo region land in work RAM.
func (w *WRAM) Write(addr uint16, v uint8) {
	bank, offset := w.resolve(addr)
	w.raw[bank][offset] = v
}
