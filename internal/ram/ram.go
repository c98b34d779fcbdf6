// Package ram provides a basic RAM implementation.
package ram

// RAM represents a fixed-size block of RAM mapped at a base
// address. Addresses are given in the CPU's address space.
type RAM struct {
	base uint16
	data []uint8
}

// NewRAM returns a new RAM of size bytes, mapped starting at base.
func NewRAM(base uint16, size uint32) *RAM {
	return &RAM{
		base: base,
		data: make([]uint8, size),
	}
}

// Read returns the value at the given address.
func (r *RAM) Read(address uint16) uint8 {
	return r.data[address-r.base]
}

// Write writes the value to the given address.
func (r *RAM) Write(address uint16, value uint8) {
	r.data[address-r.base] = value
}

// Size returns the size of the RAM in bytes.
func (r *RAM) Size() int {
	return len(r.data)
}
