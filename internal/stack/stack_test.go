package stack_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/expression-tree-calculator/internal/stack"
)

func TestStack(t *testing.T) {
	t.Parallel()

	s := stack.New[string](2)
	if !s.IsEmpty() {
		t.Fatal("new stack should be empty")
	}

	for _, v := range []string{"a", "b", "c"} {
		s.Push(v)
	}
	if s.Len() != 3 {
		t.Errorf("expect len 3 but got %d", s.Len())
	}

	if v, ok := s.Peek(); !ok || v != "c" {
		t.Errorf("expect peek to be (c, true) but got (%q, %v)", v, ok)
	}
	if s.Len() != 3 {
		t.Errorf("peek should not remove: len=%d", s.Len())
	}

	var popped []string
	for {
		v, ok := s.Pop()
		if !ok {
			break
		}
		popped = append(popped, v)
	}
	if diff := cmp.Diff([]string{"c", "b", "a"}, popped); diff != "" {
		t.Errorf("pop order mismatch (-want +got):\n%s", diff)
	}
	if !s.IsEmpty() {
		t.Error("stack should be empty after popping everything")
	}
}

func TestStackEmptySentinel(t *testing.T) {
	t.Parallel()

	t.Run("zero value", func(t *testing.T) {
		t.Parallel()

		var s stack.Stack[*int]
		if v, ok := s.Pop(); ok || v != nil {
			t.Errorf("expect (nil, false) but got (%v, %v)", v, ok)
		}
		if v, ok := s.Peek(); ok || v != nil {
			t.Errorf("expect (nil, false) but got (%v, %v)", v, ok)
		}
	})

	t.Run("drained", func(t *testing.T) {
		t.Parallel()

		s := stack.New[int](0)
		s.Push(42)
		if v, ok := s.Pop(); !ok || v != 42 {
			t.Fatalf("expect (42, true) but got (%d, %v)", v, ok)
		}
		for i := 0; i < 3; i++ {
			if v, ok := s.Pop(); ok || v != 0 {
				t.Errorf("expect (0, false) but got (%d, %v)", v, ok)
			}
			if v, ok := s.Peek(); ok || v != 0 {
				t.Errorf("expect (0, false) but got (%d, %v)", v, ok)
			}
		}
		if s.Len() != 0 {
			t.Errorf("expect len 0 but got %d", s.Len())
		}
	})
}
