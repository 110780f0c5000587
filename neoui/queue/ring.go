// Package queue provides the fixed-capacity FIFO used by the message bus.
package queue

import "sync/atomic"

// Ring is a bounded FIFO over caller-provided storage.
//
// It never allocates after Init. One producer and one consumer may run on
// different contexts (main loop and an interrupt handler) without masking:
// the producer only stores head, the consumer only stores tail.
// More than one producer needs an external critical section.
// A Ring must not be copied after Init; go vet flags copies through the
// atomic fields.
type Ring[T any] struct {
	head  atomic.Uint32
	tail  atomic.Uint32
	slots []T
}

// Init binds the ring to its backing storage and empties it.
// The capacity of the ring is len(buf).
func (r *Ring[T]) Init(buf []T) {
	r.slots = buf
	r.head.Store(0)
	r.tail.Store(0)
}

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int { return len(r.slots) }

// Len returns the number of queued entries.
func (r *Ring[T]) Len() int {
	return int(r.head.Load() - r.tail.Load())
}

// Push appends v, returning false if the ring is full. A full ring keeps
// its contents; v is dropped.
func (r *Ring[T]) Push(v T) bool {
	n := uint32(len(r.slots))
	head := r.head.Load()
	if n == 0 || head-r.tail.Load() >= n {
		return false
	}
	r.slots[head%n] = v
	r.head.Store(head + 1)
	return true
}

// Pop removes the oldest entry. An empty ring returns the zero value and
// false and is left unchanged.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	tail := r.tail.Load()
	if tail == r.head.Load() {
		return zero, false
	}
	n := uint32(len(r.slots))
	v := r.slots[tail%n]
	r.slots[tail%n] = zero
	r.tail.Store(tail + 1)
	return v, true
}

// Peek returns the oldest entry without removing it.
func (r *Ring[T]) Peek() (T, bool) {
	var zero T
	tail := r.tail.Load()
	if tail == r.head.Load() {
		return zero, false
	}
	return r.slots[tail%uint32(len(r.slots))], true
}
