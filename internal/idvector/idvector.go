// Package idvector implements the dense, index-addressable vector the
// entity registry uses to map an id back to its owning name: slot id holds
// a copy of the name, or is null once the id is retired.
package idvector

import "sort"

// Vector is a growable, index-addressable slice of *T. A nil element marks
// a retired or never-written slot. Indices past the current length are
// implicitly null until written.
type Vector[T any] struct {
	items        []*T
	nextFree     int // high-water mark: one past the largest index ever written
	nonNullCount int
}

// New constructs a Vector with at least initialCapacity backing slots.
func New[T any](initialCapacity int) *Vector[T] {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	return &Vector[T]{items: make([]*T, initialCapacity)}
}

func (v *Vector[T]) growTo(n int) {
	if n <= len(v.items) {
		return
	}
	newSize := len(v.items)
	if newSize == 0 {
		newSize = 1
	}
	for newSize < n {
		newSize *= 2
	}
	grown := make([]*T, newSize)
	copy(grown, v.items)
	v.items = grown
}

// Append writes val at the next free index and returns that index.
func (v *Vector[T]) Append(val *T) int {
	idx := v.nextFree
	v.growTo(idx + 1)
	if val != nil {
		v.nonNullCount++
	}
	v.items[idx] = val
	v.nextFree = idx + 1
	return idx
}

// InsertAt writes val at index, growing the backing array if needed.
// Writing nil over a previously non-nil slot retires it; writing non-nil
// over nil fills it. Both update the non-null count.
func (v *Vector[T]) InsertAt(index int, val *T) {
	v.growTo(index + 1)
	switch {
	case v.items[index] != nil && val == nil:
		v.nonNullCount--
	case v.items[index] == nil && val != nil:
		v.nonNullCount++
	}
	v.items[index] = val
	if index >= v.nextFree {
		v.nextFree = index + 1
	}
}

// Get returns the value at index, or (nil, false) if index is out of
// range or the slot is null.
func (v *Vector[T]) Get(index int) (*T, bool) {
	if index < 0 || index >= len(v.items) || v.items[index] == nil {
		return nil, false
	}
	return v.items[index], true
}

// Len returns the number of non-null slots.
func (v *Vector[T]) Len() int {
	return v.nonNullCount
}

// Sort orders the written prefix of the vector (indices [0, high-water
// mark)) in place according to less, leaving null slots where sort's
// stability places them.
func (v *Vector[T]) Sort(less func(a, b *T) bool) {
	window := v.items[:v.nextFree]
	sort.SliceStable(window, func(i, j int) bool {
		return less(window[i], window[j])
	})
}
