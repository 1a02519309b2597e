package cpu

const (
	STACK_TOP = 0xf4 // Initial stack pointer; the stack is empty here.
)

// Stack is a view of the region of memory addressed by the stack pointer.
// The stack grows downward from STACK_TOP and may not grow below Limit,
// the end of the loaded program. A stack pointer outside of
// [Limit, STACK_TOP] can neither push nor pop.
type Stack struct {
	Memory *[MEMORY_SIZE]byte
	Sp     *byte
	Limit  int
}

func (s Stack) Push(value byte) (err error) {
	if s.Full() {
		err = ErrStackFull
		return
	}

	*s.Sp--
	s.Memory[*s.Sp] = value
	return
}

func (s Stack) Pop() (value byte, err error) {
	value, ok := s.Peek()
	if !ok {
		err = ErrStackEmpty
		return
	}

	*s.Sp++
	return
}

func (s Stack) Empty() bool {
	return int(*s.Sp) >= STACK_TOP
}

func (s Stack) Full() bool {
	sp := int(*s.Sp)
	return sp == 0 || sp-1 < s.Limit || sp > STACK_TOP
}

func (s Stack) Peek() (value byte, ok bool) {
	if s.Empty() {
		return
	}

	return s.Memory[*s.Sp], true
}

// Depth returns the number of bytes on the stack.
func (s Stack) Depth() int {
	if s.Empty() {
		return 0
	}
	return STACK_TOP - int(*s.Sp)
}

func (s Stack) Reset() {
	*s.Sp = STACK_TOP
}
