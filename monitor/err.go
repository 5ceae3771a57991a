// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package monitor

import (
	"github.com/ezrec/synvm/translate"
)

var f = translate.From

// ErrCommand is an unknown monitor command.
type ErrCommand string

func (err ErrCommand) Error() string {
	return f("unknown command '%v', try 'help'", string(err))
}

// ErrRegister is an invalid register name.
type ErrRegister string

func (err ErrRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

// ErrExpression is an expression that did not produce a usable value.
type ErrExpression string

func (err ErrExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrConsole is a failure writing to the monitor console.
type ErrConsole struct {
	Err error
}

func (err ErrConsole) Error() string {
	return f("console %v", err.Err)
}

func (err ErrConsole) Unwrap() error {
	return err.Err
}
