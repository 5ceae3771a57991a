// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"errors"

	"github.com/ezrec/synvm/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrNoInput  = errors.New(f("console has no input"))
	ErrNoOutput = errors.New(f("console has no output"))

	// Rom errors
	ErrRomOdd  = errors.New(f("rom has a trailing byte"))
	ErrRomSize = errors.New(f("rom exceeds memory"))
)
