// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package monitor implements the debug monitor of the synvm emulator.
//
// The monitor is entered from the console escape byte. It reads one
// command line, executes it against the CPU, and returns to the
// interrupted 'in' instruction.
package monitor

import (
	"encoding/hex"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/synvm/cpu"
	"github.com/ezrec/synvm/internal"
	synio "github.com/ezrec/synvm/io"
	"github.com/ezrec/synvm/translate"
)

// DEFAULT_DUMP is the file memory dumps are written to.
const DEFAULT_DUMP = "dump.hex"

var help = []string{
	"d, dump          hex dump memory to the dump file",
	"r, regs          show the registers",
	"s, stack         show the stack, top first",
	"c, cpu           show the cpu state",
	"set rN EXPR      assign a register",
	"= EXPR           evaluate an expression (r0-r7, ip, depth, ticks, mem(addr))",
	"h, help          show this help",
}

// Console is the line-oriented terminal the monitor talks over.
type Console interface {
	ReadLine() (line string, err error)
	io.Writer
}

// Monitor is the debug monitor state.
type Monitor struct {
	Verbose bool // If set, logs every command.

	Cpu     *cpu.Cpu
	Console Console

	Files    synio.CreateFS // Where dumps are created. Defaults to the working directory.
	DumpName string         // Name of the dump file. Defaults to DEFAULT_DUMP.

	Defines iter.Seq2[string, int] // Constants for expressions. Defaults to the CPU defines.
}

// Escape reads one command line from the console and executes it.
func (mon *Monitor) Escape() (err error) {
	line, err := mon.Console.ReadLine()
	if err != nil {
		return
	}

	err = mon.Exec(line)
	return
}

// Exec executes a single command line.
// Command failures are reported on the console; only console
// errors are returned.
func (mon *Monitor) Exec(line string) (err error) {
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	if mon.Verbose {
		log.Printf("monitor: %v", line)
	}

	var cmd, args string
	if strings.HasPrefix(line, "=") {
		cmd, args = "=", line[1:]
	} else {
		cmd, args, _ = strings.Cut(line, " ")
	}
	args = strings.TrimSpace(args)

	switch cmd {
	case "d", "dump":
		err = mon.dump()
	case "r", "regs":
		err = mon.printf("%v\n", mon.Cpu.Register.String())
	case "s", "stack":
		err = mon.stack()
	case "c", "cpu":
		err = mon.printf("%v", mon.Cpu.String())
	case "set":
		err = mon.set(args)
	case "=", "p", "print":
		err = mon.print(args)
	case "h", "help":
		err = mon.printf("%v\n", strings.Join(help, "\n"))
	default:
		err = ErrCommand(cmd)
	}

	if err != nil {
		if _, ok := err.(ErrConsole); ok {
			return
		}
		err = mon.printf("%v: %v\n", cmd, err)
	}

	return
}

// printf writes a translated message to the console.
func (mon *Monitor) printf(format string, args ...any) (err error) {
	_, err = translate.Fprintf(mon.Console, format, args...)
	if err != nil {
		err = ErrConsole{Err: err}
	}
	return
}

// raw writes untranslated machine data to the console.
func (mon *Monitor) raw(format string, args ...any) (err error) {
	_, err = fmt.Fprintf(mon.Console, format, args...)
	if err != nil {
		err = ErrConsole{Err: err}
	}
	return
}

// dump writes a hex dump of memory to the dump file.
func (mon *Monitor) dump() (err error) {
	files := mon.Files
	if files == nil {
		files = synio.DirFS(".")
	}

	name := mon.DumpName
	if len(name) == 0 {
		name = DEFAULT_DUMP
	}

	file, err := files.Create(name)
	if err != nil {
		return
	}

	dumper := hex.Dumper(file)
	_, err = dumper.Write(mon.Cpu.Memory.Bytes())
	if err == nil {
		err = dumper.Close()
	}
	cerr := file.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		return
	}

	err = mon.printf("Hex dumped to %v.\n", name)
	return
}

// stack shows the stack, top first.
func (mon *Monitor) stack() (err error) {
	data := mon.Cpu.Stack.Data
	if len(data) == 0 {
		return mon.printf("stack empty\n")
	}

	for n := len(data) - 1; n >= 0; n-- {
		err = mon.raw("%5d: %04X\n", n, data[n].Raw())
		if err != nil {
			return
		}
	}
	return
}

// set assigns a register from an expression.
func (mon *Monitor) set(args string) (err error) {
	name, expr, _ := strings.Cut(args, " ")
	if len(name) < 2 || name[0] != 'r' {
		return ErrRegister(name)
	}

	index, err := strconv.ParseUint(name[1:], 10, 16)
	if err != nil {
		return ErrRegister(name)
	}

	reg, err := cpu.NewRegister(uint16(index))
	if err != nil {
		return ErrRegister(name)
	}

	value, err := mon.evalInt(expr)
	if err != nil {
		return
	}

	if value < 0 || value > int64(cpu.WORD_MAX.Raw()) {
		return fmt.Errorf("%w: %d", cpu.ErrInvalidValue, value)
	}

	word, err := cpu.NewWord(uint16(value))
	if err != nil {
		return
	}

	mon.Cpu.Register.Set(reg, word)
	err = mon.printf("%v = %v\n", reg, word)
	return
}

// print evaluates an expression and shows the result.
func (mon *Monitor) print(expr string) (err error) {
	value, err := mon.eval(expr)
	if err != nil {
		return
	}

	if i, ok := value.(starlark.Int); ok {
		if i64, ok := i.Int64(); ok {
			return mon.raw("%d (0x%04X)\n", i64, i64)
		}
	}

	err = mon.raw("%v\n", value.String())
	return
}

// evalInt evaluates an expression that must produce an integer.
func (mon *Monitor) evalInt(expr string) (value int64, err error) {
	result, err := mon.eval(expr)
	if err != nil {
		return
	}

	st_int, ok := result.(starlark.Int)
	if !ok {
		err = ErrExpression(expr)
		return
	}

	value, ok = st_int.Int64()
	if !ok {
		err = ErrExpression(expr)
		return
	}

	return
}

// eval evaluates an expression against the machine state.
func (mon *Monitor) eval(expr string) (value starlark.Value, err error) {
	if len(strings.TrimSpace(expr)) == 0 {
		err = ErrExpression(expr)
		return
	}

	thread := starlark.Thread{Name: "monitor"}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "monitor", prog, mon.globals())
	if err != nil {
		return
	}

	value, ok := dict["rc"]
	if !ok {
		err = ErrExpression(expr)
		return
	}

	return
}

// globals returns the names visible to expressions.
func (mon *Monitor) globals() (dict starlark.StringDict) {
	dict = starlark.StringDict{}

	toValue := func(value int) starlark.Value { return starlark.MakeInt(value) }

	state := map[string]int{
		"ip":    int(mon.Cpu.Ip),
		"depth": mon.Cpu.Stack.Depth(),
		"ticks": mon.Cpu.Ticks,
	}

	defines := mon.Defines
	if defines == nil {
		defines = mon.Cpu.Defines()
	}

	names := internal.IterSeq2Concat(
		defines,
		mon.registers(),
		maps.All(state),
	)
	for key, value := range internal.IterSeq2Map(names, toValue) {
		dict[key] = value
	}

	dict["mem"] = starlark.NewBuiltin("mem", mon.mem)

	return
}

// registers iterates over the register names and contents.
func (mon *Monitor) registers() iter.Seq2[string, int] {
	return func(yield func(name string, value int) bool) {
		for reg, value := range mon.Cpu.Register.All() {
			if !yield(reg.String(), int(value.Raw())) {
				return
			}
		}
	}
}

// mem is the expression builtin that reads a raw memory word.
func (mon *Monitor) mem(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var addr int
	err = starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &addr)
	if err != nil {
		return
	}

	if addr < 0 || addr >= cpu.MEMORY_SIZE {
		err = fmt.Errorf("%w: %d", cpu.ErrUnmappedAddress, addr)
		return
	}

	raw, err := mon.Cpu.Memory.Read(uint16(addr))
	if err != nil {
		return
	}

	value = starlark.MakeInt(int(raw))
	return
}
