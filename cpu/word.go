// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"unicode/utf8"
)

const (
	WORD_BITS    = 15              // Width of a ring value.
	WORD_MODULUS = uint32(1) << 15 // Ring arithmetic wraps at this value.
	WORD_MASK    = uint16(WORD_MODULUS - 1)
)

// Word is a 15-bit unsigned ring value, the only data type of the machine.
// The zero Word is a valid value; all other Words come from NewWord
// or from arithmetic on Words.
type Word struct {
	raw uint16
}

var (
	WORD_ZERO = Word{0}
	WORD_ONE  = Word{1}
	WORD_MAX  = Word{WORD_MASK}
)

// NewWord validates a raw integer as a ring value.
func NewWord(raw uint16) (word Word, err error) {
	if raw > WORD_MASK {
		err = fmt.Errorf("%w: %d", ErrInvalidValue, raw)
		return
	}

	word = Word{raw}
	return
}

// MustWord is NewWord for constants known to be in range.
func MustWord(raw uint16) Word {
	word, err := NewWord(raw)
	if err != nil {
		panic(err)
	}
	return word
}

// wordOf masks a wider intermediate result back into the ring.
func wordOf(value uint32) Word {
	return Word{uint16(value % WORD_MODULUS)}
}

// Raw returns the memory representation of the word.
func (w Word) Raw() uint16 {
	return w.raw
}

// Add returns (w + v) mod 32768.
func (w Word) Add(v Word) Word {
	return wordOf(uint32(w.raw) + uint32(v.raw))
}

// Mult returns (w * v) mod 32768.
func (w Word) Mult(v Word) Word {
	return wordOf(uint32(w.raw) * uint32(v.raw))
}

// Mod returns the remainder of w divided by v.
func (w Word) Mod(v Word) (rem Word, err error) {
	if v.raw == 0 {
		err = ErrDivisionByZero
		return
	}

	rem = wordOf(uint32(w.raw % v.raw))
	return
}

// And returns the bitwise and of w and v.
func (w Word) And(v Word) Word {
	return wordOf(uint32(w.raw & v.raw))
}

// Or returns the bitwise or of w and v.
func (w Word) Or(v Word) Word {
	return wordOf(uint32(w.raw | v.raw))
}

// Not returns the 15-bit inverse of w.
func (w Word) Not() Word {
	return wordOf(uint32(^w.raw & WORD_MASK))
}

// Less reports whether w < v.
func (w Word) Less(v Word) bool {
	return w.raw < v.raw
}

// IsZero reports whether w is zero.
func (w Word) IsZero() bool {
	return w.raw == 0
}

// Rune interprets the word as a Unicode scalar value.
func (w Word) Rune() (r rune, err error) {
	r = rune(w.raw)
	if !utf8.ValidRune(r) {
		err = fmt.Errorf("%w: %#04x", ErrInvalidScalarValue, w.raw)
		r = 0
	}
	return
}

func (w Word) String() string {
	return fmt.Sprintf("%d", w.raw)
}
