// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ezrec/synvm/emulator"
	"github.com/ezrec/synvm/io"
	"github.com/ezrec/synvm/monitor"
)

func main() {
	var program string
	var input string
	var output string
	var escape string
	var dump string
	var verbose bool

	flag.StringVar(&program, "p", "challenge.bin", "Program image to run")
	flag.StringVar(&input, "i", "-", "Console input")
	flag.StringVar(&output, "o", "-", "Console output")
	flag.StringVar(&escape, "e", string(rune(io.DEFAULT_ESCAPE)), "Monitor escape character, empty to disable")
	flag.StringVar(&dump, "d", monitor.DEFAULT_DUMP, "Monitor dump file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(escape) > 1 {
		log.Fatalf("%v: escape must be a single character", escape)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	dir, name := filepath.Split(program)
	if len(dir) == 0 {
		dir = "."
	}
	err := emu.Open(os.DirFS(dir), name)
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}

	if input == "-" {
		emu.Console.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Console.Input = inf
	}

	if output == "-" {
		emu.Console.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Console.Output = ouf
	}

	emu.Console.Escape = 0
	if len(escape) == 1 {
		emu.Console.Escape = escape[0]
	}

	dumpDir, dumpName := filepath.Split(dump)
	emu.Monitor.Files = io.DirFS(dumpDir)
	emu.Monitor.DumpName = dumpName

	err = emu.Run()
	emu.Close()
	if err != nil {
		log.Fatalf("%v: ip %d: %v", program, emu.Ip(), err)
	}

	if verbose {
		log.Printf("%v: %d ticks", program, emu.Ticks())
	}

	fmt.Printf("halted at %d\n", emu.Ip())
}
