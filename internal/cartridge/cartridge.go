// Package cartridge provides the Cartridge implementations for the
// DMG. The cartridge holds the game ROM and any external RAM, and the
// memory bank controller that maps them into the CPU's address space.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"

	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	romBankSize = 0x4000 // 16KiB
	ramBankSize = 0x2000 // 8KiB
)

var (
	// ErrUnsupportedType is returned when the header names a memory
	// bank controller that is not emulated.
	ErrUnsupportedType = errors.New("cartridge: unsupported cartridge type")
	// ErrInvalidROM is returned when the ROM image does not agree
	// with its own header.
	ErrInvalidROM = errors.New("cartridge: invalid ROM image")
)

// Cartridge represents a game cartridge, as seen by the bus. Read and
// Write are only called with addresses in 0x0000-0x7FFF (ROM and bank
// select registers) or, if HasRAM is true, 0xA000-0xBFFF (external RAM).
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	// Header returns the parsed cartridge header.
	Header() *Header
	// HasRAM returns true if the cartridge carries external RAM.
	HasRAM() bool
}

// Opt configures a Cartridge as it is created.
type Opt func(c *config)

type config struct {
	log log.Logger
}

// WithLogger sets the logger used to report bank switching.
func WithLogger(l log.Logger) Opt {
	return func(c *config) {
		c.log = l
	}
}

// NewCartridge parses the header of the given ROM image and returns the
// Cartridge implementation for the memory bank controller it declares.
// Cartridge types that are not emulated return ErrUnsupportedType, and
// images that are smaller than the ROM size declared in their header
// return ErrInvalidROM, so no bank can ever be selected out of range
// once the cartridge exists.
func NewCartridge(rom []byte, opts ...Opt) (Cartridge, error) {
	cfg := &config{log: log.NewNullLogger()}
	for _, opt := range opts {
		opt(cfg)
	}

	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}
	if len(rom) < header.ROMSize {
		return nil, fmt.Errorf("%w: header declares %d bytes of ROM, image has %d",
			ErrInvalidROM, header.ROMSize, len(rom))
	}
	header.Fingerprint = xxhash.Sum64(rom)

	// the image is trimmed (or padded) to the declared size so every bank is addressable
	image := make([]byte, header.ROMSize)
	copy(image, rom)

	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		return NewROMCartridge(image, header), nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return NewMemoryBankedCartridge1(image, header, cfg.log), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, header.CartridgeType)
}

// ramFor allocates the external RAM declared by the header, if the
// cartridge type has any.
func ramFor(header *Header) []byte {
	if !header.CartridgeType.hasRAM() || header.RAMSize == 0 {
		return nil
	}
	return make([]byte, header.RAMSize)
}
