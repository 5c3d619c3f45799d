// Package arena provides the append-only node storage shared by the signal
// graph and the Wagner IR. Handles are 1-based; zero is the "no node" sentinel,
// so a zero-valued ID field never aliases a real element.
package arena

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena stores values of T and hands out stable 1-based handles.
type Arena[T any] struct {
	data []T
}

// New creates an arena with the given capacity hint; zero is allowed.
func New[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate appends value and returns its handle.
// Panics only when the arena outgrows the uint32 handle space.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	idx, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return idx
}

// Get returns a pointer to the element, or nil for the zero handle or an
// out-of-range handle.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage. READONLY.
func (a *Arena[T]) Slice() []T {
	return a.data
}

// Len returns the number of allocated elements.
func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		return ^uint32(0)
	}
	return n
}
