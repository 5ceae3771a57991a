// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]int{
	"MEMORY_SIZE":    MEMORY_SIZE,
	"REGISTER_BASE":  int(REGISTER_BASE),
	"REGISTER_COUNT": REGISTER_COUNT,
	"WORD_MODULUS":   int(WORD_MODULUS),
	"WORD_MAX":       int(WORD_MASK),
}

// Input supplies the bytes read by the 'in' instruction.
type Input interface {
	// ReadByte blocks until a byte is available.
	ReadByte() (byte, error)
}

// Output receives the scalars written by the 'out' instruction.
type Output interface {
	WriteRune(r rune) (int, error)
}

// State is the run status of the CPU. A CPU stops in STATE_HALTED on
// 'halt' or on 'ret' with an empty stack, and in STATE_FAULTED on a fault.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
	STATE_FAULTED = State(2) // faulted
)

// Cpu is the simulation context of the virtual machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ip       uint16    // Current instruction pointer.
	Register Registers // Register bank.
	Stack    Stack     // Call and value stack.
	Memory   Memory    // Main memory.

	State State // Run status.
	Fault error // Fault that stopped the CPU, if State is STATE_FAULTED.
	Ticks int   // Instructions executed since reset.

	Input  Input  // Source for 'in'.
	Output Output // Destination for 'out'.
}

// NewCpu creates a new CPU with zeroed memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, int] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers and stack.
// - Sets the IP to zero and the state to running.
// - Zeros statistics counters.
// Memory is left as is.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Stack.Reset()
	cpu.Ip = 0
	cpu.State = STATE_RUNNING
	cpu.Fault = nil
	cpu.Ticks = 0
}

// Load copies a program image into memory and resets the CPU.
func (cpu *Cpu) Load(image []uint16) (err error) {
	err = cpu.Memory.Load(image)
	if err != nil {
		return
	}

	cpu.Reset()
	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %04X\n", "ip", cpu.Ip)
	text += fmt.Sprintf("% 5s: %v\n", "state", cpu.State)
	for reg, value := range cpu.Register.All() {
		text += fmt.Sprintf("% 5s: %04X\n", reg.String(), value.Raw())
	}
	strval := "----"
	if top, ok := cpu.Stack.Peek(); ok {
		strval = fmt.Sprintf("%04X", top.Raw())
	}
	text += fmt.Sprintf("% 5s: %v (depth %d)\n", "stack", strval, cpu.Stack.Depth())

	return
}

// fault stops the CPU, recording the cause against the instruction.
func (cpu *Cpu) fault(inst Instruction, cause error) error {
	err := &ErrFault{Ip: inst.Ip, Opcode: inst.Opcode, Err: cause}

	cpu.State = STATE_FAULTED
	cpu.Fault = err

	if cpu.Verbose {
		log.Printf("cpu: %v", err)
	}

	return err
}

// Fetch decodes the instruction at the IP without executing it.
func (cpu *Cpu) Fetch() (inst Instruction, err error) {
	inst = Instruction{Ip: cpu.Ip, Opcode: OP_UNKNOWN}
	ip := cpu.Ip

	next := func() (op Operand, err error) {
		raw, err := cpu.Memory.Read(ip)
		if err != nil {
			return
		}
		ip++
		op, err = Decode(raw)
		return
	}

	op, err := next()
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrUnknownOpcode, err)
		return
	}

	selector, err := RequireImmediate(op)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrUnknownOpcode, err)
		return
	}

	opcode := Opcode(selector.Raw())
	if !opcode.Valid() {
		err = fmt.Errorf("%w: %w", ErrUnknownOpcode, ErrOpcode(selector.Raw()))
		return
	}
	inst.Opcode = opcode

	for range opcode.Args() {
		op, err = next()
		if err != nil {
			return
		}
		inst.Operands = append(inst.Operands, op)
	}

	return
}

// Tick executes a single instruction.
// A tick that halts the CPU returns nil; a tick that faults returns an *ErrFault.
func (cpu *Cpu) Tick() (err error) {
	switch cpu.State {
	case STATE_HALTED:
		return ErrHalted
	case STATE_FAULTED:
		return cpu.Fault
	}

	inst, err := cpu.Fetch()
	if err != nil {
		return cpu.fault(inst, err)
	}

	return cpu.Execute(inst)
}

// Run ticks the CPU until it halts or faults.
func (cpu *Cpu) Run() (err error) {
	for cpu.State == STATE_RUNNING {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	if cpu.State != STATE_RUNNING {
		return ErrHalted
	}

	defer func() {
		if err != nil {
			err = cpu.fault(inst, err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%04x: %v", inst.Ip, inst)
	}

	if !inst.Opcode.Valid() {
		return fmt.Errorf("%w: %w", ErrUnknownOpcode, ErrOpcode(inst.Opcode))
	}

	args := inst.Opcode.Args()
	if len(inst.Operands) != len(args) {
		return fmt.Errorf("%w: %v takes %d operands", ErrDecode, inst.Opcode, len(args))
	}

	// Destination register, and resolved source values.
	var dst Register
	var val [3]Word
	var vals int
	for n, kind := range args {
		if ref, ok := inst.Operands[n].(RegisterRef); ok {
			_, err = NewRegister(uint16(ref.Register))
			if err != nil {
				return
			}
		}

		switch kind {
		case ARG_REG:
			dst, err = RequireRegister(inst.Operands[n])
			if err != nil {
				return
			}
		case ARG_VAL:
			val[vals] = inst.Operands[n].Resolve(&cpu.Register)
			vals++
		}
	}

	next_ip := inst.Ip + uint16(inst.Size())

	switch inst.Opcode {
	case OP_HALT:
		cpu.State = STATE_HALTED
	case OP_SET:
		cpu.Register.Set(dst, val[0])
	case OP_PUSH:
		cpu.Stack.Push(val[0])
	case OP_POP:
		top, ok := cpu.Stack.Pop()
		if !ok {
			return ErrStackUnderflow
		}
		cpu.Register.Set(dst, top)
	case OP_EQ:
		cpu.Register.Set(dst, boolWord(val[0] == val[1]))
	case OP_GT:
		cpu.Register.Set(dst, boolWord(val[1].Less(val[0])))
	case OP_JMP:
		next_ip = val[0].Raw()
	case OP_JT:
		if !val[0].IsZero() {
			next_ip = val[1].Raw()
		}
	case OP_JF:
		if val[0].IsZero() {
			next_ip = val[1].Raw()
		}
	case OP_ADD:
		cpu.Register.Set(dst, val[0].Add(val[1]))
	case OP_MULT:
		cpu.Register.Set(dst, val[0].Mult(val[1]))
	case OP_MOD:
		var rem Word
		rem, err = val[0].Mod(val[1])
		if err != nil {
			return
		}
		cpu.Register.Set(dst, rem)
	case OP_AND:
		cpu.Register.Set(dst, val[0].And(val[1]))
	case OP_OR:
		cpu.Register.Set(dst, val[0].Or(val[1]))
	case OP_NOT:
		cpu.Register.Set(dst, val[0].Not())
	case OP_RMEM:
		var value Word
		value, err = cpu.Memory.ReadWord(val[0].Raw())
		if err != nil {
			return
		}
		cpu.Register.Set(dst, value)
	case OP_WMEM:
		err = cpu.Memory.Write(val[0].Raw(), val[1].Raw())
		if err != nil {
			return
		}
	case OP_CALL:
		var ret Word
		ret, err = NewWord(next_ip)
		if err != nil {
			return
		}
		cpu.Stack.Push(ret)
		next_ip = val[0].Raw()
	case OP_RET:
		top, ok := cpu.Stack.Pop()
		if ok {
			next_ip = top.Raw()
		} else {
			cpu.State = STATE_HALTED
		}
	case OP_OUT:
		var r rune
		r, err = val[0].Rune()
		if err != nil {
			return
		}
		if cpu.Output == nil {
			return fmt.Errorf("%w: %w", ErrIO, errNoOutput)
		}
		_, err = cpu.Output.WriteRune(r)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	case OP_IN:
		if cpu.Input == nil {
			return fmt.Errorf("%w: %w", ErrIO, errNoInput)
		}
		var b byte
		b, err = cpu.Input.ReadByte()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		cpu.Register.Set(dst, Word{uint16(b)})
	case OP_NOOP:
		// pass
	}

	cpu.Ip = next_ip
	cpu.Ticks++

	return
}

// boolWord converts a comparison result to 1 or 0.
func boolWord(cond bool) Word {
	if cond {
		return WORD_ONE
	}
	return WORD_ZERO
}
