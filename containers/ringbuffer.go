// File: containers/ringbuffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity ring buffer with overwrite-on-full semantics. Not safe for
// concurrent use; see SyncRingBuffer for the mutex-guarded variant.

package containers

// RingBuffer is a bounded FIFO of fixed capacity. Pushing into a full buffer
// overwrites the oldest element: the logical front advances by one and the new
// element becomes the back. Len never exceeds Cap.
type RingBuffer[T any] struct {
	data []T
	head int // index of the oldest element
	size int
}

// NewRingBuffer allocates a ring buffer with the given capacity (must be > 0).
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity <= 0 {
		panic("containers: ring buffer capacity must be positive")
	}
	return &RingBuffer[T]{data: make([]T, capacity)}
}

// Push appends v at the back, dropping the front element when full.
func (r *RingBuffer[T]) Push(v T) {
	idx := (r.head + r.size) % len(r.data)
	r.data[idx] = v
	if r.size == len(r.data) {
		// Overwrote the oldest slot; advance the logical window.
		r.head = (r.head + 1) % len(r.data)
		return
	}
	r.size++
}

// Pop removes and returns the front element.
func (r *RingBuffer[T]) Pop() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	v := r.data[r.head]
	r.data[r.head] = zero // release reference
	r.head = (r.head + 1) % len(r.data)
	r.size--
	return v, true
}

// Front returns the oldest element without removing it.
func (r *RingBuffer[T]) Front() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	return r.data[r.head], true
}

// Back returns the newest element without removing it.
func (r *RingBuffer[T]) Back() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	return r.data[(r.head+r.size-1)%len(r.data)], true
}

// At returns the element at logical position i, where 0 is the front.
func (r *RingBuffer[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= r.size {
		return zero, false
	}
	return r.data[(r.head+i)%len(r.data)], true
}

// Len returns the current number of elements.
func (r *RingBuffer[T]) Len() int { return r.size }

// Cap returns the fixed capacity.
func (r *RingBuffer[T]) Cap() int { return len(r.data) }

// Do calls fn for every element from front to back.
func (r *RingBuffer[T]) Do(fn func(v T)) {
	for i := 0; i < r.size; i++ {
		fn(r.data[(r.head+i)%len(r.data)])
	}
}

// Reset drops all elements, keeping capacity.
func (r *RingBuffer[T]) Reset() {
	var zero T
	for i := range r.data {
		r.data[i] = zero
	}
	r.head = 0
	r.size = 0
}
