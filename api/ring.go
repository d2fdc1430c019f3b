// Package api
// Author: momentics@gmail.com
//
// Lock-free ring buffer contract for cross-thread producer/consumer transfer.

package api

// Ring is a single-producer/single-consumer lock-free ring buffer contract.
type Ring[T any] interface {
	// Push adds an item, returns false if full.
	Push(item T) bool
	// Pop removes the oldest item, returns false if empty.
	Pop() (T, bool)
	// Len returns current number of items.
	Len() int
	// Cap returns buffer capacity.
	Cap() int
}
