// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"strconv"

	"github.com/ezrec/synvm/translate"
)

var f = translate.From

// ErrRuntime indicates when a runtime error happened.
type ErrRuntime struct {
	Tick int
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("tick %v %v", strconv.Itoa(err.Tick), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
