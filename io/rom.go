// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
)

const ROM_WORDS = 1 << 15 // Largest image that fits in memory.

// Rom is a program image of 16-bit words.
type Rom struct {
	Data []uint16
}

// Unmarshal decodes a little-endian image.
func (rom *Rom) Unmarshal(r io.Reader) (err error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return
	}

	if len(raw)%2 != 0 {
		err = ErrRomOdd
		return
	}

	if len(raw)/2 > ROM_WORDS {
		err = fmt.Errorf("%w: %d words", ErrRomSize, len(raw)/2)
		return
	}

	rom.Data = make([]uint16, len(raw)/2)
	for n := range rom.Data {
		rom.Data[n] = binary.LittleEndian.Uint16(raw[n*2:])
	}

	return
}

// Open loads the named image from a file system.
func (rom *Rom) Open(filesys fs.FS, name string) (err error) {
	inf, err := filesys.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	err = rom.Unmarshal(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", name, err)
	}
	return
}
