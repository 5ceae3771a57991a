// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io provides the host side collaborators of the synvm machine:
// the Console that backs the 'in' and 'out' instructions, the Rom that
// holds a program image, and the file systems the monitor writes dumps to.
package io

// Channel is a byte-in, rune-out console device.
type Channel interface {
	// Rewind discards any buffered state.
	Rewind()
	// ReadByte blocks until a byte of input is available.
	ReadByte() (byte, error)
	// WriteRune emits one scalar value.
	WriteRune(r rune) (int, error)
	// Flush writes any buffered output.
	Flush() error
}
