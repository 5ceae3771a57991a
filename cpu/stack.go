// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// Stack is the unbounded call and value stack.
type Stack struct {
	Data []Word
}

func (s *Stack) Push(value Word) {
	s.Data = append(s.Data, value)
}

func (s *Stack) Pop() (value Word, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Depth() int {
	return len(s.Data)
}

func (s *Stack) Peek() (value Word, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
