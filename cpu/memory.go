// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"encoding/binary"
	"fmt"
	"iter"
)

const MEMORY_SIZE = int(WORD_MODULUS) // Number of addressable words.

// Memory is the word addressed main memory. Cells hold raw 16-bit words,
// which need not be valid ring values.
type Memory [MEMORY_SIZE]uint16

// Read returns the raw word at addr.
func (mem *Memory) Read(addr uint16) (raw uint16, err error) {
	if int(addr) >= MEMORY_SIZE {
		err = fmt.Errorf("%w: %d", ErrUnmappedAddress, addr)
		return
	}

	raw = mem[addr]
	return
}

// ReadWord returns the word at addr as a ring value.
func (mem *Memory) ReadWord(addr uint16) (value Word, err error) {
	raw, err := mem.Read(addr)
	if err != nil {
		return
	}

	value, err = NewWord(raw)
	return
}

// Write stores a raw word at addr.
func (mem *Memory) Write(addr uint16, raw uint16) (err error) {
	if int(addr) >= MEMORY_SIZE {
		err = fmt.Errorf("%w: %d", ErrUnmappedAddress, addr)
		return
	}

	mem[addr] = raw
	return
}

// Load copies a program image to address zero, and zeros the remainder.
func (mem *Memory) Load(image []uint16) (err error) {
	if len(image) > MEMORY_SIZE {
		err = fmt.Errorf("%w: %d words", ErrImageSize, len(image))
		return
	}

	n := copy(mem[:], image)
	clear(mem[n:])
	return
}

// Words iterates over every cell of memory.
func (mem *Memory) Words() iter.Seq2[int, uint16] {
	return func(yield func(addr int, raw uint16) bool) {
		for addr, raw := range mem {
			if !yield(addr, raw) {
				return
			}
		}
	}
}

// Bytes returns memory as a little-endian image.
func (mem *Memory) Bytes() (data []byte) {
	data = make([]byte, 0, MEMORY_SIZE*2)
	for _, raw := range mem.Words() {
		data = binary.LittleEndian.AppendUint16(data, raw)
	}
	return
}
