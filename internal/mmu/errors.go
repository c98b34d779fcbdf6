package mmu

import (
	"errors"
	"fmt"
)

// ErrUnmappedAddress is wrapped by every AccessError.
var ErrUnmappedAddress = errors.New("mmu: unmapped address")

// AccessError is raised when the CPU touches an address that no
// region maps. It is delivered by panicking, as the bus has no
// error return, and is recovered at the instruction boundary.
type AccessError struct {
	Address uint16
	Write   bool
}

func (e *AccessError) Error() string {
	op := "read from"
	if e.Write {
		op = "write to"
	}
	return fmt.Sprintf("mmu: %s unmapped address 0x%04X", op, e.Address)
}

func (e *AccessError) Unwrap() error {
	return ErrUnmappedAddress
}
