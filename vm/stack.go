package vm

// ---------------------------------------------------------------------------
// ValueStack: fixed-capacity operand stack
// ---------------------------------------------------------------------------

// ValueStack is a fixed-capacity LIFO of signed integers. The capacity is
// set at construction and never grows: a push against a full stack is a
// reported no-op, not an error. This soft overflow policy is deliberate
// and part of the machine's contract.
type ValueStack struct {
	elems []int64
	limit int
}

// NewValueStack creates an empty stack with the given capacity.
func NewValueStack(capacity int) *ValueStack {
	return &ValueStack{
		elems: make([]int64, 0, capacity),
		limit: capacity,
	}
}

// NewSeededValueStack creates a stack pre-populated with elems, given
// bottom to top. It fails with ErrSeedExceedsCapacity when elems does not
// fit; this is the only stack operation that can error.
func NewSeededValueStack(capacity int, elems []int64) (*ValueStack, error) {
	if len(elems) > capacity {
		return nil, ErrSeedExceedsCapacity
	}
	s := NewValueStack(capacity)
	s.elems = append(s.elems, elems...)
	return s, nil
}

// Push appends v on top of the stack. It reports false, discarding v,
// when the stack is already at capacity.
func (s *ValueStack) Push(v int64) bool {
	if len(s.elems) >= s.limit {
		return false
	}
	s.elems = append(s.elems, v)
	return true
}

// Pop removes and returns the top value. It reports false on an empty
// stack; callers needing two operands must check Len first.
func (s *ValueStack) Pop() (int64, bool) {
	if len(s.elems) == 0 {
		return 0, false
	}
	v := s.elems[len(s.elems)-1]
	s.elems = s.elems[:len(s.elems)-1]
	return v, true
}

// Len returns the current element count.
func (s *ValueStack) Len() int {
	return len(s.elems)
}

// Cap returns the fixed capacity.
func (s *ValueStack) Cap() int {
	return s.limit
}

// TopToBottom returns a snapshot of the current contents, top first.
// The slice is freshly allocated; mutating it never affects the stack.
// For observation and tracing only.
func (s *ValueStack) TopToBottom() []int64 {
	out := make([]int64, len(s.elems))
	for i, v := range s.elems {
		out[len(s.elems)-1-i] = v
	}
	return out
}
