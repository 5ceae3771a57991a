// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator ties the synvm CPU to its console and debug monitor.
package emulator

import (
	"errors"
	"io/fs"
	"iter"
	"maps"

	"github.com/ezrec/synvm/cpu"
	"github.com/ezrec/synvm/internal"
	"github.com/ezrec/synvm/io"
	"github.com/ezrec/synvm/monitor"
)

var _emulator_defines = map[string]int{
	"ESCAPE": io.DEFAULT_ESCAPE,
}

// Emulator state. CPU + console + monitor.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // Reference to the CPU simulation.

	Rom     io.Rom          // Loaded program image.
	Console io.Console      // Console IO channel.
	Monitor monitor.Monitor // Debug monitor, entered by the console escape.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	emu.Console.Escape = io.DEFAULT_ESCAPE
	emu.Console.OnEscape = emu.Monitor.Escape

	emu.Monitor.Cpu = emu.Cpu
	emu.Monitor.Console = &emu.Console
	emu.Monitor.Defines = emu.Defines()

	emu.Cpu.Input = &emu.Console
	emu.Cpu.Output = &emu.Console

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, int] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Load a program image, and reset.
func (emu *Emulator) Load(image []uint16) (err error) {
	emu.Rom.Data = image

	err = emu.Reset()
	return
}

// Open loads a program image file from a file system, and resets.
func (emu *Emulator) Open(filesys fs.FS, name string) (err error) {
	err = emu.Rom.Open(filesys, name)
	if err != nil {
		return
	}

	err = emu.Reset()
	return
}

// Channels returns the IO channels of the emulator.
func (emu *Emulator) Channels() []io.Channel {
	return []io.Channel{&emu.Console}
}

// Close the emulator, flushing console output.
func (emu *Emulator) Close() (err error) {
	for _, channel := range emu.Channels() {
		err = errors.Join(err, channel.Flush())
	}

	return
}

// Reset the emulator state, reloading memory from the program image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Monitor.Verbose = emu.Verbose

	// Reset IO channels, keeping output of the previous run.
	for _, channel := range emu.Channels() {
		err = channel.Flush()
		if err != nil {
			return
		}
		channel.Rewind()
	}

	err = emu.Cpu.Load(emu.Rom.Data)
	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return int(emu.Cpu.Ip)
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	ticks := emu.Cpu.Ticks
	defer func() {
		if err != nil {
			err = &ErrRuntime{Tick: ticks, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
	}

	done = emu.Cpu.State != cpu.STATE_RUNNING
	return
}

// Run ticks the emulator until the program halts or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
