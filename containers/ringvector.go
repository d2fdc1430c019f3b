// File: containers/ringvector.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ring vector: the ring buffer contract with capacity chosen at runtime and
// adjustable via Resize. Shrinking preserves the newest elements.

package containers

// RingVector is a bounded FIFO whose capacity can change at runtime.
// Push/Pop/Front/Back semantics match RingBuffer, including overwrite-on-full.
type RingVector[T any] struct {
	ring *RingBuffer[T]
}

// NewRingVector allocates a ring vector with an initial capacity (must be > 0).
func NewRingVector[T any](capacity int) *RingVector[T] {
	return &RingVector[T]{ring: NewRingBuffer[T](capacity)}
}

// Push appends v at the back, dropping the front element when full.
func (r *RingVector[T]) Push(v T) { r.ring.Push(v) }

// Pop removes and returns the front element.
func (r *RingVector[T]) Pop() (T, bool) { return r.ring.Pop() }

// Front returns the oldest element without removing it.
func (r *RingVector[T]) Front() (T, bool) { return r.ring.Front() }

// Back returns the newest element without removing it.
func (r *RingVector[T]) Back() (T, bool) { return r.ring.Back() }

// At returns the element at logical position i, where 0 is the front.
func (r *RingVector[T]) At(i int) (T, bool) { return r.ring.At(i) }

// Len returns the current number of elements.
func (r *RingVector[T]) Len() int { return r.ring.Len() }

// Cap returns the current capacity.
func (r *RingVector[T]) Cap() int { return r.ring.Cap() }

// Do calls fn for every element from front to back.
func (r *RingVector[T]) Do(fn func(v T)) { r.ring.Do(fn) }

// Resize changes the capacity to n (must be > 0). On shrink the newest n
// elements are preserved; on grow all elements are kept.
func (r *RingVector[T]) Resize(n int) {
	if n <= 0 {
		panic("containers: ring vector capacity must be positive")
	}
	if n == r.ring.Cap() {
		return
	}
	next := NewRingBuffer[T](n)
	drop := r.ring.Len() - n
	r.ring.Do(func(v T) {
		if drop > 0 {
			drop--
			return
		}
		next.Push(v)
	})
	r.ring = next
}
