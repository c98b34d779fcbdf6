// Package mmu provides a memory management unit for the Game Boy. The
// MMU owns the 64kB address space of the CPU and routes every read and
// write to exactly one Region, searched in a fixed priority order.
package mmu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/io"
	"github.com/thelolagemann/gbcore/internal/ram"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Access is the access policy of a Region.
type Access uint8

const (
	// ReadOnly regions serve reads only. Writes skip the region
	// and continue down the priority list.
	ReadOnly Access = iota + 1
	// ReadWrite regions serve both reads and writes.
	ReadWrite
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "r"
	case ReadWrite:
		return "rw"
	}
	return "?"
}

// Region is a window [From, To] of the address space, inclusive
// at both ends.
type Region struct {
	Name   string
	From   uint16
	To     uint16
	Access Access

	read   func(address uint16) uint8
	write  func(address uint16, value uint8)
	mapped func() bool
}

// Contains returns true if address lies within the region.
func (r *Region) Contains(address uint16) bool {
	return address >= r.From && address <= r.To
}

// Mapped returns true if the region is currently part of the
// address space.
func (r *Region) Mapped() bool {
	return r.mapped == nil || r.mapped()
}

func (r *Region) String() string {
	return fmt.Sprintf("%-10s 0x%04X-0x%04X %s", r.Name, r.From, r.To, r.Access)
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates to the cartridge, the interrupt controller and the I/O
// register file.
type MMU struct {
	regions []*Region

	// 0x0000 - 0x00FF - BOOT ROM (256B)
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	vRAM *ram.RAM

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *WRAM

	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	oam *ram.RAM

	// 0xFF00 - 0xFF7F - I/O Registers
	registers *io.Registers

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM *ram.RAM

	// 0xFF0F, 0xFFFF - interrupt flag and enable registers
	irq *interrupts.Service

	log log.Logger
}

// NewMMU returns a new MMU for the given cartridge. The interrupt
// controller backs types.IF and types.IE.
func NewMMU(cart cartridge.Cartridge, irq *interrupts.Service, l log.Logger) *MMU {
	if l == nil {
		l = log.NewNullLogger()
	}
	m := &MMU{
		Cart:      cart,
		vRAM:      ram.NewRAM(types.VRAMStart, 0x2000),
		wRAM:      NewWRAM(),
		oam:       ram.NewRAM(types.OAMStart, 0xA0),
		registers: io.NewRegisters(),
		zRAM:      ram.NewRAM(types.HRAMStart, 0x7F),
		irq:       irq,
		log:       l,
	}
	m.init()

	return m
}

func (m *MMU) init() {
	// setup registers
	m.registers.RegisterHardware(
		types.BDIS,
		func(v uint8) {
			if v != 0 && !m.bootROMDone {
				m.bootROMDone = true
				m.log.Debugf("mmu: boot ROM disabled")
			}
		}, func() uint8 {
			return 0xFF
		})
	m.registers.RegisterHardware(types.IF, m.irq.WriteFlag, m.irq.ReadFlag)
	// LY is driven by the PPU through Set
	m.registers.RegisterHardware(types.LY, io.NoWrite, nil)

	// regions are searched in order, the first match wins
	m.regions = []*Region{
		{Name: "boot", From: types.BootROMStart, To: types.BootROMEnd, Access: ReadOnly,
			mapped: m.BootROMActive},
		{Name: "rom0", From: types.ROMBank0Start, To: types.ROMBank0End, Access: ReadWrite,
			read: m.Cart.Read, write: m.Cart.Write},
		{Name: "romx", From: types.ROMBankNStart, To: types.ROMBankNEnd, Access: ReadWrite,
			read: m.Cart.Read, write: m.Cart.Write},
		{Name: "extram", From: types.ExtRAMStart, To: types.ExtRAMEnd, Access: ReadWrite,
			read: m.Cart.Read, write: m.Cart.Write, mapped: m.Cart.HasRAM},
		{Name: "wram0", From: types.WRAM0Start, To: types.WRAM0End, Access: ReadWrite,
			read: m.wRAM.Read, write: m.wRAM.Write},
		{Name: "wram1", From: types.WRAM1Start, To: types.WRAM1End, Access: ReadWrite,
			read: m.wRAM.Read, write: m.wRAM.Write},
		{Name: "echo", From: types.EchoStart, To: types.EchoEnd, Access: ReadWrite,
			read: m.wRAM.Read, write: m.wRAM.Write},
		{Name: "vram", From: types.VRAMStart, To: types.VRAMEnd, Access: ReadWrite,
			read: m.vRAM.Read, write: m.vRAM.Write},
		{Name: "oam", From: types.OAMStart, To: types.OAMEnd, Access: ReadWrite,
			read: m.oam.Read, write: m.oam.Write},
		{Name: "unusable", From: types.UnusableStart, To: types.UnusableEnd, Access: ReadWrite,
			read: func(uint16) uint8 { return 0xFF }, write: func(uint16, uint8) {}},
		{Name: "io", From: types.IOStart, To: types.IOEnd, Access: ReadWrite,
			read: m.registers.Read, write: m.registers.Write},
		{Name: "hram", From: types.HRAMStart, To: types.HRAMEnd, Access: ReadWrite,
			read: m.zRAM.Read, write: m.zRAM.Write},
		{Name: "ie", From: types.IE, To: types.IE, Access: ReadWrite,
			read: func(uint16) uint8 { return m.irq.ReadEnable() },
			write: func(_ uint16, v uint8) { m.irq.WriteEnable(v) }},
	}
}

// SetBootROM maps the boot ROM over 0x0000 - 0x00FF until it is
// disabled by a write to types.BDIS.
func (m *MMU) SetBootROM(rom *boot.ROM) {
	m.bootROM = rom
	m.regions[0].read = rom.Read
}

// BootROMActive returns true while the boot ROM shadows the cartridge.
func (m *MMU) BootROMActive() bool {
	return m.bootROM != nil && !m.bootROMDone
}

// InitBootState loads the I/O registers with the values the boot ROM
// leaves behind, for sessions that skip the boot sequence.
func (m *MMU) InitBootState() {
	for _, r := range boot.PostBootIO {
		m.registers.Write(r.Address, r.Value)
	}
}

// IO returns the I/O register file, for peripherals to attach their
// hardware registers to.
func (m *MMU) IO() *io.Registers {
	return m.registers
}

// Regions returns the address space layout in priority order.
func (m *MMU) Regions() []*Region {
	return m.regions
}

// Region returns the region that currently serves reads of address,
// or nil if the address is unmapped.
func (m *MMU) Region(address uint16) *Region {
	for _, r := range m.regions {
		if r.Contains(address) && r.Mapped() {
			return r
		}
	}
	return nil
}

// Read returns the value at the given address. Reading an address no
// region maps panics with an *AccessError.
func (m *MMU) Read(address uint16) uint8 {
	if r := m.Region(address); r != nil {
		return r.read(address)
	}
	panic(&AccessError{Address: address})
}

// Write writes the value to the given address, skipping any read only
// region that covers it. Writing an address no region maps panics with
// an *AccessError.
func (m *MMU) Write(address uint16, value uint8) {
	for _, r := range m.regions {
		if r.Access == ReadWrite && r.Contains(address) && r.Mapped() {
			r.write(address, value)
			return
		}
	}
	panic(&AccessError{Address: address, Write: true})
}

// Get returns the stored value of an I/O register, bypassing any
// hardware read function.
func (m *MMU) Get(address uint16) uint8 {
	return m.registers.Get(address)
}

// Set stores the value of an I/O register, bypassing any hardware
// write function. Collaborators use this to drive registers that are
// read only to the CPU, such as types.LY.
func (m *MMU) Set(address uint16, value uint8) {
	m.registers.Set(address, value)
}
