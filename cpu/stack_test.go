package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.True(s.Empty())

	s.Push(MustWord(0x1234))
	assert.False(s.Empty())
	assert.Equal(1, s.Depth())
	assert.Equal(MustWord(0x1234), s.Data[0])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(MustWord(0x1234))
	s.Push(MustWord(0x7abc))

	val, ok := s.Pop()
	assert.True(ok)
	assert.Equal(MustWord(0x7abc), val)
	assert.Equal(1, s.Depth())

	val, ok = s.Pop()
	assert.True(ok)
	assert.Equal(MustWord(0x1234), val)
	assert.True(s.Empty())
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	val, ok := s.Pop()
	assert.False(ok)
	assert.Equal(WORD_ZERO, val)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(MustWord(1))
	s.Push(MustWord(2))

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(MustWord(2), val)
	assert.Equal(2, s.Depth())
}

func TestStack_Unbounded(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	for n := range 100000 {
		s.Push(wordOf(uint32(n)))
	}
	assert.Equal(100000, s.Depth())

	val, ok := s.Pop()
	assert.True(ok)
	assert.Equal(wordOf(99999), val)
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(MustWord(1))
	s.Push(MustWord(2))

	s.Reset()
	assert.True(s.Empty())

	s.Reset()
	assert.True(s.Empty())
}
