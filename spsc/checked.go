// File: spsc/checked.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// CheckedRing wraps Ring with producer/consumer activity flags that detect
// concurrent misuse of the single-producer/single-consumer contract. Intended
// for tests and debug deployments; the plain Ring carries no such guard.

package spsc

import "sync/atomic"

// CheckedRing is a Ring that panics when more than one goroutine acts as
// producer, or more than one as consumer, at the same time.
type CheckedRing[T any] struct {
	ring      *Ring[T]
	producing atomic.Bool
	consuming atomic.Bool
}

// NewCheckedRing allocates a checked ring; capacity must be a power of two.
func NewCheckedRing[T any](capacity uint64) *CheckedRing[T] {
	return &CheckedRing[T]{ring: NewRing[T](capacity)}
}

// Push appends v, panicking if a concurrent producer is detected.
func (c *CheckedRing[T]) Push(v T) bool {
	if !c.producing.CompareAndSwap(false, true) {
		panic("spsc: concurrent producers detected")
	}
	ok := c.ring.Push(v)
	c.producing.Store(false)
	return ok
}

// Pop removes the oldest item, panicking if a concurrent consumer is detected.
func (c *CheckedRing[T]) Pop() (T, bool) {
	if !c.consuming.CompareAndSwap(false, true) {
		panic("spsc: concurrent consumers detected")
	}
	v, ok := c.ring.Pop()
	c.consuming.Store(false)
	return v, ok
}

// Len returns the approximate number of items in flight.
func (c *CheckedRing[T]) Len() int { return c.ring.Len() }

// Cap returns the number of usable slots.
func (c *CheckedRing[T]) Cap() int { return c.ring.Cap() }
