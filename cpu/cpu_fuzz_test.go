package cpu

import (
	"bufio"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	f.Add([]byte{0x01, 0x00, 0x00, 0x80, 0x05, 0x00, 0x15, 0x00, 0x00, 0x00}, uint8(8))
	f.Add([]byte{0x12, 0x00}, uint8(1))
	f.Add([]byte{0x03, 0x00, 0x00, 0x80, 0x00, 0x00}, uint8(1))
	f.Add([]byte{0x11, 0x00, 0x00, 0x00}, uint8(255))
	f.Add([]byte{0xff, 0xff, 0x00, 0x80}, uint8(4))

	f.Fuzz(func(t *testing.T, image []byte, ticks uint8) {
		assert := assert.New(t)

		if len(image) > MEMORY_SIZE*2 {
			image = image[:MEMORY_SIZE*2]
		}

		program := make([]uint16, len(image)/2)
		for n := range program {
			program[n] = binary.LittleEndian.Uint16(image[n*2:])
		}

		cpu := NewCpu()
		assert.NoError(cpu.Load(program))
		cpu.Input = bufio.NewReader(strings.NewReader("fuzz"))
		cpu.Output = &strings.Builder{}

		for range ticks {
			ip := cpu.Ip
			err := cpu.Tick()

			for reg, value := range cpu.Register.All() {
				assert.LessOrEqual(value.Raw(), WORD_MASK, reg.String())
			}
			for _, value := range cpu.Stack.Data {
				assert.LessOrEqual(value.Raw(), WORD_MASK)
			}

			if err != nil {
				assert.Equal(STATE_FAULTED, cpu.State)
				assert.Equal(ip, cpu.Ip)

				var fault *ErrFault
				if assert.True(errors.As(err, &fault)) {
					assert.Equal(ip, fault.Ip)
				}
				break
			}

			if cpu.State == STATE_HALTED {
				break
			}
		}
	})
}
