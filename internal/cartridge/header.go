package cartridge

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// CGBFlag specifies the level of CGB support in a Cartridge.
type CGBFlag uint8

const (
	CGBFlagUnset    CGBFlag = iota // No CGB support has been specified, most likely a regular Game Boy game.
	CGBFlagEnhanced                // The game supports CGB enhancements, but is backwards compatible.
	CGBFlagCGBOnly                 // The game works on CGB only.
)

// Type represents the hardware present in a Cartridge.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0xFC
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

var typeNames = map[Type]string{
	ROM:               "ROM",
	MBC1:              "MBC1",
	MBC1RAM:           "MBC1+RAM",
	MBC1RAMBATT:       "MBC1+RAM+BATTERY",
	MBC2:              "MBC2",
	MBC2BATT:          "MBC2+BATTERY",
	ROMRAM:            "ROM+RAM",
	ROMRAMBATT:        "ROM+RAM+BATTERY",
	MMM01:             "MMM01",
	MMM01RAM:          "MMM01+RAM",
	MMM01RAMBATT:      "MMM01+RAM+BATTERY",
	MBC3TIMERBATT:     "MBC3+TIMER+BATTERY",
	MBC3TIMERRAMBATT:  "MBC3+TIMER+RAM+BATTERY",
	MBC3:              "MBC3",
	MBC3RAM:           "MBC3+RAM",
	MBC3RAMBATT:       "MBC3+RAM+BATTERY",
	MBC5:              "MBC5",
	MBC5RAM:           "MBC5+RAM",
	MBC5RAMBATT:       "MBC5+RAM+BATTERY",
	MBC5RUMBLE:        "MBC5+RUMBLE",
	MBC5RUMBLERAM:     "MBC5+RUMBLE+RAM",
	MBC5RUMBLERAMBATT: "MBC5+RUMBLE+RAM+BATTERY",
	POCKETCAMERA:      "POCKET CAMERA",
	BANDAITAMA5:       "BANDAI TAMA5",
	HUDSONHUC3:        "HuC3",
	HUDSONHUC1:        "HuC1+RAM+BATTERY",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (0x%02X)", uint8(t))
}

// hasRAM returns true if the cartridge type carries external RAM.
func (t Type) hasRAM() bool {
	switch t {
	case MBC1RAM, MBC1RAMBATT, ROMRAM, ROMRAMBATT:
		return true
	}
	return false
}

// ramSizes maps the RAM size class at 0x0149 to a size in bytes.
var ramSizes = map[uint8]int{
	0x00: 0,          // 0KiB
	0x01: 0,          // 0KiB (unused)
	0x02: 8 * 1024,   // 8KiB
	0x03: 32 * 1024,  // 32KiB
	0x04: 128 * 1024, // 128KiB
	0x05: 64 * 1024,  // 64KiB
}

// maxROMSizeClass is the largest ROM size class (8MiB).
const maxROMSizeClass = 0x08

// headerEnd is the first address after the cartridge header.
const headerEnd = 0x0150

// Header represents the header of a cartridge, located at the
// address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
//
// See https://gbdev.io/pandocs/The_Cartridge_Header.html
type Header struct {
	Title            string  // $0134-$0143 Title of the game in uppercase ASCII.
	ManufacturerCode string  // $013F-$0142 4-character ManufacturerCode (in uppercase ASCII)
	CGBFlag                  // $0143 - Indicates level of CGB support
	NewLicenseeCode  [2]byte // $0144-$0145 2-character ASCII "licensee code"
	SGBFlag          bool    // $0146 - Specifies whether the game supports SGB functions
	CartridgeType    Type    // $0147 - Specifies the hardware present on a Cartridge.
	ROMSize          int     // $0148 - Specifies how much ROM is on the Cartridge, calculated by 32 KiB x (1<<value)
	RAMSize          int     // $0149 - Specifies how much RAM is present on the Cartridge, if any.
	DestinationCode  byte    // $014A - Specifies whether the game is intended to be sold in Japan or elsewhere
	OldLicenseeCode  byte    // $014B - Specifies the game's publisher; see NewLicenseeCode if val == $33
	MaskROMVersion   uint8   // $014C - Specifies the version of the game. It is usually $00
	HeaderChecksum   uint8   // $014D - 8-Bit checksum of header bytes $0134-$014C
	GlobalChecksum   uint16  // $014E-$014F 16-bit (big endian) checksum of Cartridge ROM

	// Fingerprint is the xxhash of the full ROM image.
	Fingerprint uint64

	computedChecksum uint8
}

// parseHeader parses the cartridge header from the given ROM image.
func parseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd {
		return nil, fmt.Errorf("%w: image is %d bytes, too short for a header", ErrInvalidROM, len(rom))
	}

	h := &Header{}

	// parse the mode of the cartridge to determine how to parse the title accordingly
	switch rom[0x0143] {
	case 0x80:
		h.CGBFlag = CGBFlagEnhanced
	case 0xC0:
		h.CGBFlag = CGBFlagCGBOnly
	default:
		h.CGBFlag = CGBFlagUnset
	}

	// CGB cartridge header reduced the title length to 15
	if h.CGBFlag == CGBFlagUnset {
		h.Title = string(rom[0x0134:0x0144])
	} else {
		h.Title = string(rom[0x0134:0x0143])
	}

	// the title would be padded with $00 bytes if it was shorter than the title length
	h.Title = strings.TrimRight(strings.Replace(h.Title, "\x00", "", -1), " ")

	h.ManufacturerCode = string(rom[0x013F:0x0143])
	h.NewLicenseeCode = [2]byte{rom[0x0144], rom[0x0145]}
	h.SGBFlag = rom[0x0146] == 3
	h.CartridgeType = Type(rom[0x0147])

	if rom[0x0148] > maxROMSizeClass {
		return nil, fmt.Errorf("%w: unknown ROM size class 0x%02X", ErrInvalidROM, rom[0x0148])
	}
	h.ROMSize = (32 * 1024) * (1 << rom[0x0148])

	ramSize, ok := ramSizes[rom[0x0149]]
	if !ok {
		return nil, fmt.Errorf("%w: unknown RAM size class 0x%02X", ErrInvalidROM, rom[0x0149])
	}
	h.RAMSize = ramSize

	h.DestinationCode = rom[0x014A]
	h.OldLicenseeCode = rom[0x014B]
	h.MaskROMVersion = rom[0x014C]
	h.HeaderChecksum = rom[0x014D]
	h.GlobalChecksum = binary.BigEndian.Uint16(rom[0x014E:0x0150])

	for _, b := range rom[0x0134:0x014D] {
		h.computedChecksum = h.computedChecksum - b - 1
	}

	return h, nil
}

// ChecksumValid returns true if the header checksum at 0x014D matches
// the checksum computed over 0x0134-0x014C. Real hardware refuses to
// boot a cartridge that fails this check.
func (h *Header) ChecksumValid() bool {
	return h.computedChecksum == h.HeaderChecksum
}

// ROMBanks returns the number of 16KiB ROM banks.
func (h *Header) ROMBanks() int {
	return h.ROMSize / romBankSize
}

// RAMBanks returns the number of 8KiB RAM banks.
func (h *Header) RAMBanks() int {
	return h.RAMSize / ramBankSize
}

// Hardware returns the model the cartridge targets.
func (h *Header) Hardware() string {
	switch h.CGBFlag {
	case CGBFlagEnhanced, CGBFlagCGBOnly:
		return "CGB"
	default:
		return "DMG"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s | %s | Mode: %s | ROM Size: %dkB | RAM Size: %dkB",
		h.Title, h.CartridgeType, h.Hardware(), h.ROMSize/1024, h.RAMSize/1024)
}
