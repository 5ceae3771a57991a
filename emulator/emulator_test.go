package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/synvm/cpu"
)

const (
	r0 = 32768
	r1 = 32769
	r2 = 32770
	r7 = 32775
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(byte('?'), emu.Console.Escape)
	assert.Equal(emu.Cpu, emu.Monitor.Cpu)

	defines := map[string]int{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}
	assert.Equal(int('?'), defines["ESCAPE"])
	assert.Equal(cpu.MEMORY_SIZE, defines["MEMORY_SIZE"])
}

func doRun(emu *Emulator, program []uint16, input string, t *testing.T) (output string, err error) {
	assert := assert.New(t)

	err = emu.Load(program)
	assert.NoError(err)

	emu.Console.Input = strings.NewReader(input)
	console_output := &bytes.Buffer{}
	emu.Console.Output = console_output

	err = emu.Run()
	assert.NoError(emu.Close())

	output = console_output.String()
	return
}

func TestEmulatorHello(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []uint16{
		19, 'h',
		19, 'i',
		19, '\n',
		0,
	}

	output, err := doRun(emu, program, "", t)
	assert.NoError(err)
	assert.Equal("hi\n", output)
	assert.Equal(cpu.STATE_HALTED, emu.Cpu.State)
	assert.Equal(7, emu.Ip())
	assert.Equal(4, emu.Ticks())
}

func TestEmulatorEcho(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []uint16{
		20, r0, // 0: in r0
		4, r1, r0, '\n', // 2: eq r1 r0 '\n'
		7, r1, 25, // 6: jt r1 25
		5, r2, r0, 'a' - 1, // 9: gt r2 r0 'a'-1
		8, r2, 20, // 13: jf r2 20
		9, r0, r0, 32768 - 32, // 16: add r0 r0 -32
		19, r0, // 20: out r0
		6, 0, // 22: jmp 0
		21, // 24: noop
		18, // 25: ret
	}

	output, err := doRun(emu, program, "Hi there\n", t)
	assert.NoError(err)
	assert.Equal("HI THERE", output)
	assert.Equal(cpu.STATE_HALTED, emu.Cpu.State)
}

func TestEmulatorMonitor(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []uint16{
		20, r0, // in r0
		19, r7, // out r7
		0,
	}

	output, err := doRun(emu, program, "?set r7 65\n?= ESCAPE\nz", t)
	assert.NoError(err)
	assert.Equal("r7 = 65\n63 (0x003F)\nA", output)
	assert.Equal(cpu.MustWord('z'), emu.Cpu.Register.Get(0))
}

func TestEmulatorFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []uint16{
		21,
		21,
		3, r0,
	}

	_, err := doRun(emu, program, "", t)
	assert.ErrorIs(err, cpu.ErrStackUnderflow)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(2, runtime.Tick)
	}

	var fault *cpu.ErrFault
	if assert.True(errors.As(err, &fault)) {
		assert.Equal(uint16(2), fault.Ip)
	}

	assert.Equal(cpu.STATE_FAULTED, emu.Cpu.State)

	// Further ticks report the same fault.
	done, err := emu.Tick()
	assert.True(done)
	assert.ErrorIs(err, cpu.ErrStackUnderflow)
}

func TestEmulatorInputClosed(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	_, err := doRun(emu, []uint16{20, r0, 0}, "", t)
	assert.ErrorIs(err, cpu.ErrIO)
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []uint16{
		16, 5, 7, // wmem 5 7
		0,
	}

	_, err := doRun(emu, program, "", t)
	assert.NoError(err)
	assert.Equal(uint16(7), emu.Cpu.Memory[5])

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)

	assert.NoError(emu.Reset())
	assert.Equal(uint16(0), emu.Cpu.Memory[5])
	assert.Equal(cpu.STATE_RUNNING, emu.Cpu.State)
	assert.Equal(0, emu.Ip())
}

func TestEmulatorReload(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []uint16{
		20, r0, // in r0
		19, r0, // out r0
		0,
	}

	first := &bytes.Buffer{}
	emu.Console.Input = strings.NewReader("a")
	emu.Console.Output = first
	assert.NoError(emu.Load(program))
	assert.NoError(emu.Run())
	assert.Equal(cpu.MustWord('a'), emu.Cpu.Register.Get(0))

	// Output still buffered from the first run goes to the first writer.
	second := &bytes.Buffer{}
	emu.Console.Input = strings.NewReader("b")
	emu.Console.Output = second
	assert.NoError(emu.Load(program))
	assert.Equal("a", first.String())

	assert.NoError(emu.Run())
	assert.NoError(emu.Close())
	assert.Equal(cpu.MustWord('b'), emu.Cpu.Register.Get(0))
	assert.Equal("b", second.String())
	assert.Equal("a", first.String())
}

func TestEmulatorFaultMessage(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := make([]uint16, 1300)
	for n := range program {
		program[n] = 21 // noop
	}
	program = append(program, 3, r0) // pop r0

	_, err := doRun(emu, program, "", t)
	assert.ErrorIs(err, cpu.ErrStackUnderflow)
	assert.Contains(err.Error(), "tick 1300 ")
	assert.Contains(err.Error(), "fault at 1300 (pop)")
	assert.NotContains(err.Error(), "\n")
}

func TestEmulatorOpen(t *testing.T) {
	assert := assert.New(t)

	filesys := fstest.MapFS{
		"prog.bin": &fstest.MapFile{Data: []byte{
			0x13, 0x00, 0x4f, 0x00, // out 'O'
			0x13, 0x00, 0x4b, 0x00, // out 'K'
			0x12, 0x00, // ret
		}},
		"odd.bin": &fstest.MapFile{Data: []byte{0x00}},
	}

	emu := NewEmulator()
	assert.NoError(emu.Open(filesys, "prog.bin"))
	assert.Equal([]uint16{19, 'O', 19, 'K', 18}, emu.Rom.Data)

	output := &bytes.Buffer{}
	emu.Console.Output = output
	assert.NoError(emu.Run())
	assert.NoError(emu.Close())
	assert.Equal("OK", output.String())

	assert.Error(emu.Open(filesys, "odd.bin"))
	assert.Error(emu.Open(filesys, "missing.bin"))
}
