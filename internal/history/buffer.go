// Package history keeps a bounded stack of canvas snapshots for undo.
//
// Eviction on overflow is oldest-first while retrieval is newest-first:
// the buffer is a sliding window of the most recent states.
package history

// Capacity is the number of snapshots the canvas keeps.
const Capacity = 6

type Buffer[T any] struct {
	items    []T
	capacity int
}

// New returns an empty buffer holding at most capacity entries.
// A non-positive capacity falls back to Capacity.
func New[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		capacity = Capacity
	}
	return &Buffer[T]{
		items:    make([]T, 0, capacity),
		capacity: capacity,
	}
}

// Push appends v, evicting the oldest entry first when full.
func (b *Buffer[T]) Push(v T) {
	if len(b.items) >= b.capacity {
		var zero T
		b.items[0] = zero
		b.items = append(b.items[:0], b.items[1:]...)
	}
	b.items = append(b.items, v)
}

// Pop removes and returns the most recently pushed entry.
func (b *Buffer[T]) Pop() (T, bool) {
	var zero T
	if len(b.items) == 0 {
		return zero, false
	}
	last := len(b.items) - 1
	v := b.items[last]
	b.items[last] = zero
	b.items = b.items[:last]
	return v, true
}

// Clear drops every entry.
func (b *Buffer[T]) Clear() {
	var zero T
	for i := range b.items {
		b.items[i] = zero
	}
	b.items = b.items[:0]
}

// CanUndo reports whether Pop would return an entry.
func (b *Buffer[T]) CanUndo() bool { return len(b.items) > 0 }

func (b *Buffer[T]) Len() int { return len(b.items) }
