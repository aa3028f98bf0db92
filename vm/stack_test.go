package vm

import (
	"errors"
	"testing"
)

func TestStackPushPop(t *testing.T) {
	s := NewValueStack(4)

	for i, v := range []int64{10, 20, 30} {
		if !s.Push(v) {
			t.Fatalf("Push(%d) rejected below capacity", v)
		}
		if s.Len() != i+1 {
			t.Errorf("Len() = %d, want %d", s.Len(), i+1)
		}
	}

	v, ok := s.Pop()
	if !ok || v != 30 {
		t.Errorf("Pop() = %d, %v, want 30, true", v, ok)
	}
	if s.Len() != 2 {
		t.Errorf("Len() after pop = %d, want 2", s.Len())
	}
}

func TestStackSoftOverflow(t *testing.T) {
	s := NewValueStack(2)
	s.Push(1)
	s.Push(2)

	if s.Push(3) {
		t.Error("Push at capacity reported success")
	}
	if s.Len() != 2 {
		t.Errorf("Len() after rejected push = %d, want 2", s.Len())
	}

	// Contents unchanged: top is still 2.
	if v, _ := s.Pop(); v != 2 {
		t.Errorf("top after rejected push = %d, want 2", v)
	}
}

func TestStackPopEmpty(t *testing.T) {
	s := NewValueStack(2)

	v, ok := s.Pop()
	if ok {
		t.Errorf("Pop() on empty stack = %d, true, want absence", v)
	}
	if s.Len() != 0 {
		t.Errorf("Len() after empty pop = %d, want 0", s.Len())
	}
}

func TestStackZeroCapacity(t *testing.T) {
	s := NewValueStack(0)
	if s.Push(1) {
		t.Error("Push on zero-capacity stack reported success")
	}
}

func TestStackTopToBottom(t *testing.T) {
	s := NewValueStack(4)
	s.Push(1)
	s.Push(2)
	s.Push(3)

	snap := s.TopToBottom()
	want := []int64{3, 2, 1}
	if len(snap) != len(want) {
		t.Fatalf("TopToBottom() = %v, want %v", snap, want)
	}
	for i := range want {
		if snap[i] != want[i] {
			t.Errorf("TopToBottom()[%d] = %d, want %d", i, snap[i], want[i])
		}
	}

	// The snapshot is a copy; mutating it must not touch the stack.
	snap[0] = 99
	if v, _ := s.Pop(); v != 3 {
		t.Errorf("top after snapshot mutation = %d, want 3", v)
	}
}

func TestSeededStack(t *testing.T) {
	s, err := NewSeededValueStack(4, []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("NewSeededValueStack: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	// Seed is given bottom to top.
	if v, _ := s.Pop(); v != 3 {
		t.Errorf("top of seeded stack = %d, want 3", v)
	}
}

func TestSeededStackExceedsCapacity(t *testing.T) {
	_, err := NewSeededValueStack(2, []int64{1, 2, 3})
	if !errors.Is(err, ErrSeedExceedsCapacity) {
		t.Errorf("err = %v, want ErrSeedExceedsCapacity", err)
	}
}
