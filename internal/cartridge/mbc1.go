package cartridge

import (
	"fmt"

	"github.com/thelolagemann/gbcore/pkg/log"
)

// MemoryBankedCartridge1 represents a MBC1 cartridge. This cartridge
// type supports up to 2MiB of ROM in 16KiB banks, and up to 32KiB of
// RAM in 8KiB banks.
//
// The controller has four write-only registers, selected by the
// address range written to:
//
//	0x0000-0x1FFF - RAM enable, enabled when the low nibble is 0xA
//	0x2000-0x3FFF - ROM bank number (5 bits, 0 selects bank 1)
//	0x4000-0x5FFF - RAM bank number, or upper ROM bank bits (2 bits)
//	0x6000-0x7FFF - banking mode select (1 bit)
type MemoryBankedCartridge1 struct {
	rom []byte
	ram []byte

	ramEnable     uint8
	romBankNumber uint8
	ramBankNumber uint8
	modeSelect    uint8

	romBankMask int
	ramBankMask int

	header *Header
	log    log.Logger
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(rom []byte, header *Header, l log.Logger) *MemoryBankedCartridge1 {
	m := &MemoryBankedCartridge1{
		rom:           rom,
		ram:           ramFor(header),
		romBankNumber: 1,
		romBankMask:   header.ROMBanks() - 1,
		header:        header,
		log:           l,
	}
	if banks := len(m.ram) / ramBankSize; banks > 0 {
		m.ramBankMask = banks - 1
	}

	return m
}

// ramEnabled returns true if the RAM enable latch holds 0xA in its
// low nibble.
func (m *MemoryBankedCartridge1) ramEnabled() bool {
	return m.ramEnable&0x0F == 0x0A
}

// ROMBank returns the ROM bank currently mapped at 0x4000-0x7FFF.
func (m *MemoryBankedCartridge1) ROMBank() int {
	bank := int(m.romBankNumber)
	if m.modeSelect == 0 {
		bank |= int(m.ramBankNumber) << 5
	}
	return bank & m.romBankMask
}

// RAMBank returns the RAM bank currently mapped at 0xA000-0xBFFF.
func (m *MemoryBankedCartridge1) RAMBank() int {
	if m.modeSelect == 0 {
		return 0
	}
	return int(m.ramBankNumber) & m.ramBankMask
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address] // first bank is always fixed
	case address < 0x8000:
		return m.rom[m.ROMBank()*romBankSize+int(address-0x4000)]
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled() {
			return 0xFF
		}
		return m.ram[m.RAMBank()*ramBankSize+int(address-0xA000)%len(m.ram)]
	}

	panic(fmt.Sprintf("mbc1: illegal read from address: %04X", address))
}

// Write updates the bank controller registers, or writes to the selected
// RAM bank.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnable = value
	case address < 0x4000:
		m.romBankNumber = value & 0b11111
		if m.romBankNumber == 0 {
			m.romBankNumber = 1
		}
		m.log.Debugf("mbc1: ROM bank %d", m.ROMBank())
	case address < 0x6000:
		m.ramBankNumber = value & 0b11
		m.log.Debugf("mbc1: ROM bank %d, RAM bank %d", m.ROMBank(), m.RAMBank())
	case address < 0x8000:
		m.modeSelect = value & 0b1
	case address >= 0xA000 && address < 0xC000:
		// writes to disabled RAM are discarded, as on hardware
		if m.ramEnabled() && len(m.ram) > 0 {
			m.ram[m.RAMBank()*ramBankSize+int(address-0xA000)%len(m.ram)] = value
		}
	default:
		panic(fmt.Sprintf("mbc1: illegal write to address: %04X", address))
	}
}

// Header returns the cartridge header.
func (m *MemoryBankedCartridge1) Header() *Header {
	return m.header
}

// HasRAM returns true if the cartridge has external RAM.
func (m *MemoryBankedCartridge1) HasRAM() bool {
	return len(m.ram) > 0
}
