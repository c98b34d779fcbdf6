// Package io provides the I/O register file of the Game Boy, mapped
// at 0xFF00 - 0xFF7F, along with the serial debug channel.
package io

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// HardwareRegister represents a hardware register of the Game
// Boy. The hardware IO are used to control and read the state
// of the hardware. A nil read or write function falls back to
// plain storage.
type HardwareRegister struct {
	address types.HardwareAddress
	write   func(v uint8)
	read    func() uint8
}

// Registers is the I/O register file. Addresses that have a
// HardwareRegister attached are routed to it, every other
// address in the window behaves as plain storage. The table
// is indexed by the address ANDed with 0x007F.
type Registers struct {
	hardware [0x80]*HardwareRegister
	raw      [0x80]uint8
}

// NewRegisters returns an empty register file.
func NewRegisters() *Registers {
	return &Registers{}
}

// RegisterHardware attaches read and write functions to the
// hardware register at address. Either function may be nil, in
// which case that direction behaves as plain storage. Attaching
// two registers to the same address is a wiring bug and panics.
func (h *Registers) RegisterHardware(address types.HardwareAddress, write func(v uint8), read func() uint8) {
	if address < types.IOStart || address > types.IOEnd {
		panic(fmt.Sprintf("hardware: address 0x%04X is outside the I/O window", address))
	}
	if h.hardware[address&0x007F] != nil {
		panic(fmt.Sprintf("hardware: address 0x%04X has already been registered", address))
	}

	h.hardware[address&0x007F] = &HardwareRegister{
		address: address,
		write:   write,
		read:    read,
	}
}

// Read returns the value of the hardware register for
// the given address.
func (h *Registers) Read(address uint16) uint8 {
	if r := h.hardware[address&0x007F]; r != nil && r.read != nil {
		return r.read()
	}
	return h.raw[address&0x007F]
}

// Write writes the given value to the hardware register
// for the given address, as the CPU would.
func (h *Registers) Write(address uint16, value uint8) {
	if r := h.hardware[address&0x007F]; r != nil && r.write != nil {
		r.write(value)
		return
	}
	h.raw[address&0x007F] = value
}

// Get returns the stored value at address, ignoring any attached
// read function.
func (h *Registers) Get(address uint16) uint8 {
	return h.raw[address&0x007F]
}

// Set stores value at address, ignoring any attached write
// function. This is how collaborators such as the PPU drive
// registers the CPU cannot write (e.g. types.LY).
func (h *Registers) Set(address uint16, value uint8) {
	h.raw[address&0x007F] = value
}

// NoWrite is a write function that discards the value. This is
// useful for hardware IO that are read-only to the CPU.
func NoWrite(v uint8) {}
