package stack

// Stack is a LIFO container. The zero value is an empty stack ready to use.
type Stack[T any] struct {
	items []T
}

func New[T any](capacity int) *Stack[T] {
	return &Stack[T]{items: make([]T, 0, capacity)}
}

func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top element.
// On an empty stack it returns the zero value of T and false.
func (s *Stack[T]) Pop() (v T, ok bool) {
	if s.IsEmpty() {
		return v, false
	}
	last := len(s.items) - 1
	v = s.items[last]

	var zero T
	s.items[last] = zero // release reference
	s.items = s.items[:last]
	return v, true
}

// Peek returns the top element without removing it.
// On an empty stack it returns the zero value of T and false.
func (s *Stack[T]) Peek() (v T, ok bool) {
	if s.IsEmpty() {
		return v, false
	}
	return s.items[len(s.items)-1], true
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}
