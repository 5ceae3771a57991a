// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"strconv"

	"github.com/ezrec/synvm/translate"
)

var f = translate.From

// decimal renders a machine number without locale grouping.
func decimal(value uint16) string {
	return strconv.FormatUint(uint64(value), 10)
}

var (
	// Operand errors
	ErrDecode = errors.New(f("word is neither a value nor a register"))
	ErrType   = errors.New(f("operand of the wrong kind"))

	// Execution errors
	ErrUnknownOpcode      = errors.New(f("unknown opcode"))
	ErrStackUnderflow     = errors.New(f("stack underflow"))
	ErrUnmappedAddress    = errors.New(f("unmapped address"))
	ErrInvalidValue       = errors.New(f("invalid value"))
	ErrDivisionByZero     = errors.New(f("division by zero"))
	ErrInvalidScalarValue = errors.New(f("invalid scalar value"))
	ErrIO                 = errors.New(f("i/o failure"))
	ErrHalted             = errors.New(f("cpu halted"))

	// Program image errors
	ErrImageSize = errors.New(f("program image exceeds memory"))
)

// ErrFault reports a fault, tagged with the instruction pointer
// of the instruction that raised it.
type ErrFault struct {
	Ip     uint16 // Address of the faulting instruction.
	Opcode Opcode // Opcode, if the selector was decoded.
	Err    error  // Cause of the fault.
}

func (err *ErrFault) Error() string {
	if err.Opcode.Valid() {
		return f("fault at %v (%v) %v", decimal(err.Ip), err.Opcode, err.Err)
	}
	return f("fault at %v %v", decimal(err.Ip), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrOpcode is the raw selector of an unknown opcode.
type ErrOpcode uint16

func (eo ErrOpcode) Error() string {
	return f("bad opcode %v", decimal(uint16(eo)))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

var (
	errNoInput  = errors.New(f("no input attached"))
	errNoOutput = errors.New(f("no output attached"))
)
