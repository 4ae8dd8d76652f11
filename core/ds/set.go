// Package ds provides small generic data structures used across the
// generator, chiefly an insertion-ordered set for deterministic diagnostics.
package ds

import "fmt"

type StringSet = Set[string]

// Set is an ordered set that maintains both O(1) membership testing and
// insertion order preservation. Deterministic iteration keeps generated
// output and error messages stable across runs.
//
// Add mutates the receiver; Intersect, Without and Values return new data
// without modifying the receiver.
type Set[T comparable] struct {
	items map[T]struct{}
	order []T // preserves insertion order
}

func (s *Set[T]) String() string {
	return fmt.Sprintf("%v", s.order)
}

// Add adds the given value to the set. No-op if already present. (mutates)
func (s *Set[T]) Add(v T) {
	if s.Contains(v) {
		return
	}
	s.items[v] = struct{}{}
	s.order = append(s.order, v)
}

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int { return len(s.items) }

// Contains returns true if v is present in the set.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.items[v]
	return ok
}

// Values returns the elements in insertion order. The returned slice is a
// copy and safe to modify.
func (s *Set[T]) Values() []T {
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}

// Intersect returns a new set with the elements present in both s and other.
// Order follows s's insertion order.
func (s *Set[T]) Intersect(other *Set[T]) *Set[T] {
	out := NewSet[T]()
	for _, v := range s.order {
		if other.Contains(v) {
			out.Add(v)
		}
	}
	return out
}

// Without returns a new set with the elements of s that are not in other.
// Order follows s's insertion order.
func (s *Set[T]) Without(other *Set[T]) *Set[T] {
	out := NewSet[T]()
	for _, v := range s.order {
		if !other.Contains(v) {
			out.Add(v)
		}
	}
	return out
}

// NewSet creates a set containing the given values.
func NewSet[T comparable](values ...T) *Set[T] {
	s := &Set[T]{items: make(map[T]struct{}, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}
