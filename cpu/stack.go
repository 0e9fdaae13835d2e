package cpu

const (
	STACK_LIMIT = 16 // Maximum return stack depth
)

// Stack is the return stack buffer. Pushing onto a full stack evicts the
// oldest entry.
type Stack struct {
	Data []uint64
}

func (s *Stack) Push(value uint64) {
	if s.Full() {
		copy(s.Data, s.Data[1:])
		s.Data = s.Data[:len(s.Data)-1]
	}
	s.Data = append(s.Data, value)
}

func (s *Stack) Pop() (value uint64, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Full() bool {
	return len(s.Data) == STACK_LIMIT
}

func (s *Stack) Peek() (value uint64, ok bool) {
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
