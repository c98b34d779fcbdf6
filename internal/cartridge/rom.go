package cartridge

// ROMCartridge represents a ROM cartridge. This cartridge type is the
// simplest cartridge type, with 32KiB of ROM mapped directly at
// 0x0000-0x7FFF, and optionally up to 8KiB of RAM at 0xA000-0xBFFF.
type ROMCartridge struct {
	rom []byte
	ram []byte

	header *Header
}

// NewROMCartridge returns a new ROM cartridge.
func NewROMCartridge(rom []byte, header *Header) *ROMCartridge {
	return &ROMCartridge{
		rom:    rom,
		ram:    ramFor(header),
		header: header,
	}
}

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	if address >= 0xA000 {
		return r.ram[int(address-0xA000)%len(r.ram)]
	}
	return r.rom[address]
}

// Write writes the value to the given address. Writes to the ROM
// are ignored.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	if address >= 0xA000 {
		r.ram[int(address-0xA000)%len(r.ram)] = value
	}
}

// Header returns the cartridge header.
func (r *ROMCartridge) Header() *Header {
	return r.header
}

// HasRAM returns true if the cartridge has external RAM.
func (r *ROMCartridge) HasRAM() bool {
	return len(r.ram) > 0
}
