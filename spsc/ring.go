// File: spsc/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-producer/single-consumer lock-free ring. Two free-running uint64
// counters index a power-of-two cell array; producer and consumer each keep a
// cached copy of the opposite counter so the hot path avoids cross-core loads.
// One slot is kept in reserve: the ring reports full when
// pushCount - popCount == capacity - 1, so the two sides never race over the
// same cell at wraparound.
//
// T must be trivially copyable (scalar or pointer payloads). With more than
// one concurrent producer or consumer behavior is undefined; use CheckedRing
// to detect misuse.

package spsc

import (
	"sync/atomic"
	"unsafe"

	"github.com/momentics/hioload-kit/api"
)

const cacheLine = 64

var _ api.Ring[any] = (*Ring[any])(nil)

// Ring is a wait-minimal bounded queue for exactly one producer and one
// consumer. Operations never block and never allocate.
type Ring[T any] struct {
	// Producer side: push counter plus cached copy of the pop counter.
	pushCnt   atomic.Uint64
	cachedPop uint64
	_         [cacheLine - unsafe.Sizeof(atomic.Uint64{}) - 8]byte

	// Consumer side: pop counter plus cached copy of the push counter.
	popCnt     atomic.Uint64
	cachedPush uint64
	_          [cacheLine - unsafe.Sizeof(atomic.Uint64{}) - 8]byte

	// Immutable after construction.
	buf  []T
	mask uint64
}

// NewRing allocates a ring with the given capacity, which must be a power of
// two. One slot is reserved, so at most capacity-1 items are in flight.
func NewRing[T any](capacity uint64) *Ring[T] {
	if capacity == 0 || capacity&(capacity-1) != 0 {
		panic("spsc: ring capacity must be a power of two")
	}
	return &Ring[T]{
		buf:  make([]T, capacity),
		mask: capacity - 1,
	}
}

// Push appends v. Returns false when the ring is full. Producer side only.
func (r *Ring[T]) Push(v T) bool {
	push := r.pushCnt.Load()
	if push-r.cachedPop >= r.mask {
		// Local cache says possibly full; reload the real pop counter.
		r.cachedPop = r.popCnt.Load()
		if push-r.cachedPop >= r.mask {
			return false
		}
	}
	r.buf[push&r.mask] = v
	r.pushCnt.Store(push + 1) // publish to the consumer
	return true
}

// Pop removes the oldest item. Returns false when empty. Consumer side only.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	pop := r.popCnt.Load()
	if pop == r.cachedPush {
		// Local cache says possibly empty; reload the real push counter.
		r.cachedPush = r.pushCnt.Load()
		if pop == r.cachedPush {
			return zero, false
		}
	}
	v := r.buf[pop&r.mask]
	r.buf[pop&r.mask] = zero
	r.popCnt.Store(pop + 1) // release the slot
	return v, true
}

// Len returns the approximate number of items in flight.
func (r *Ring[T]) Len() int {
	return int(r.pushCnt.Load() - r.popCnt.Load())
}

// Cap returns the number of usable slots (capacity - 1).
func (r *Ring[T]) Cap() int {
	return len(r.buf) - 1
}
