// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// REGISTER_BASE is the raw word naming register r0. The following
// REGISTER_COUNT-1 words name r1 through r7.
const REGISTER_BASE = uint16(WORD_MODULUS)

// Operand is a decoded instruction word: either an Immediate or a RegisterRef.
type Operand interface {
	// Resolve returns the value the operand denotes.
	Resolve(regs *Registers) Word
	// Raw returns the encoded form of the operand.
	Raw() uint16
	fmt.Stringer

	operand()
}

// Immediate is an operand carrying a literal value.
type Immediate struct {
	Value Word
}

// RegisterRef is an operand naming a register.
type RegisterRef struct {
	Register Register
}

var (
	_ Operand = Immediate{}
	_ Operand = RegisterRef{}
)

// Decode classifies a raw word as an Immediate or a RegisterRef.
func Decode(raw uint16) (op Operand, err error) {
	switch {
	case raw <= WORD_MASK:
		op = Immediate{Value: Word{raw}}
	case raw-REGISTER_BASE < REGISTER_COUNT:
		op = RegisterRef{Register: Register(raw - REGISTER_BASE)}
	default:
		err = fmt.Errorf("%w: %d", ErrDecode, raw)
	}

	return
}

// RequireImmediate returns the literal value of an Immediate operand.
func RequireImmediate(op Operand) (value Word, err error) {
	imm, ok := op.(Immediate)
	if !ok {
		err = fmt.Errorf("%w: expected value, found %v", ErrType, op)
		return
	}

	value = imm.Value
	return
}

// RequireRegister returns the register named by a RegisterRef operand.
func RequireRegister(op Operand) (reg Register, err error) {
	ref, ok := op.(RegisterRef)
	if !ok {
		err = fmt.Errorf("%w: expected register, found %v", ErrType, op)
		return
	}

	reg = ref.Register
	return
}

func (imm Immediate) Resolve(regs *Registers) Word {
	return imm.Value
}

func (imm Immediate) Raw() uint16 {
	return imm.Value.Raw()
}

func (imm Immediate) String() string {
	return imm.Value.String()
}

func (imm Immediate) operand() {}

func (ref RegisterRef) Resolve(regs *Registers) Word {
	return regs.Get(ref.Register)
}

func (ref RegisterRef) Raw() uint16 {
	return REGISTER_BASE + uint16(ref.Register)
}

func (ref RegisterRef) String() string {
	return ref.Register.String()
}

func (ref RegisterRef) operand() {}
