// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"strings"
)

const REGISTER_COUNT = 8 // Number of general purpose registers.

// Register names one of the general purpose registers.
type Register uint8

// NewRegister validates a register index.
func NewRegister(index uint16) (reg Register, err error) {
	if index >= REGISTER_COUNT {
		err = fmt.Errorf("%w: register %d", ErrDecode, index)
		return
	}

	reg = Register(index)
	return
}

func (reg Register) String() string {
	return fmt.Sprintf("r%d", uint8(reg))
}

// Registers is the register bank.
type Registers [REGISTER_COUNT]Word

// Get returns the contents of a register.
func (regs *Registers) Get(reg Register) Word {
	return regs[reg]
}

// Set assigns a register.
func (regs *Registers) Set(reg Register, value Word) {
	regs[reg] = value
}

// Reset zeros all registers.
func (regs *Registers) Reset() {
	clear(regs[:])
}

// All iterates over the registers in index order.
func (regs *Registers) All() iter.Seq2[Register, Word] {
	return func(yield func(reg Register, value Word) bool) {
		for n, value := range regs {
			if !yield(Register(n), value) {
				return
			}
		}
	}
}

// String renders the bank as hexadecimal words.
func (regs *Registers) String() string {
	var text []string
	for reg, value := range regs.All() {
		text = append(text, fmt.Sprintf("%v: %04X", reg, value.Raw()))
	}
	return strings.Join(text, " ")
}
