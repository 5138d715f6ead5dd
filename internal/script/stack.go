package script

// MaxStackSize bounds the combined element count of the main and alt stacks.
const MaxStackSize = 1000

// Stack is the operand stack of one script evaluation. Any pop from an empty stack or push past
// the limits sets a sticky overflow flag; callers check DidOverflow after mutating.
type Stack struct {
	values   []Value
	alt      []Value
	overflow bool
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push appends v to the top of the stack.
func (s *Stack) Push(v Value) {
	if len(v) > MaxValueByteCount || len(s.values)+len(s.alt) >= MaxStackSize {
		s.overflow = true
		return
	}
	s.values = append(s.values, v)
}

// Pop removes the top element. An empty stack yields an empty value and sets the overflow flag.
func (s *Stack) Pop() Value {
	if len(s.values) == 0 {
		s.overflow = true
		return Value{}
	}
	v := s.values[len(s.values)-1]
	s.values[len(s.values)-1] = nil
	s.values = s.values[:len(s.values)-1]
	return v
}

// Peek returns the element i positions below the top (0 is the top) without removing it.
func (s *Stack) Peek(i int) Value {
	if i < 0 || i >= len(s.values) {
		s.overflow = true
		return Value{}
	}
	return s.values[len(s.values)-1-i]
}

// PopFromIndex removes and returns the element i positions below the top.
func (s *Stack) PopFromIndex(i int) Value {
	if i < 0 || i >= len(s.values) {
		s.overflow = true
		return Value{}
	}
	idx := len(s.values) - 1 - i
	v := s.values[idx]
	s.values = append(s.values[:idx], s.values[idx+1:]...)
	return v
}

// PushToAlt moves v onto the alt stack.
func (s *Stack) PushToAlt(v Value) {
	if len(s.values)+len(s.alt) >= MaxStackSize {
		s.overflow = true
		return
	}
	s.alt = append(s.alt, v)
}

// PopFromAlt removes the top of the alt stack.
func (s *Stack) PopFromAlt() Value {
	if len(s.alt) == 0 {
		s.overflow = true
		return Value{}
	}
	v := s.alt[len(s.alt)-1]
	s.alt = s.alt[:len(s.alt)-1]
	return v
}

// Size returns the number of elements on the main stack.
func (s *Stack) Size() int { return len(s.values) }

// IsEmpty reports whether the main stack has no elements.
func (s *Stack) IsEmpty() bool { return len(s.values) == 0 }

// DidOverflow reports whether any operation violated the stack bounds.
func (s *Stack) DidOverflow() bool { return s.overflow }

// Values returns a copy of the main stack from bottom to top.
func (s *Stack) Values() []Value {
	out := make([]Value, len(s.values))
	copy(out, s.values)
	return out
}

// Clone returns an independent copy of the main stack. The alt stack is not carried over.
func (s *Stack) Clone() *Stack {
	return &Stack{values: s.Values(), overflow: s.overflow}
}

func (s *Stack) clearAlt() {
	s.alt = nil
}
