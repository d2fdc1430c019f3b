// File: containers/sync_queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded blocking FIFO used as the delegate and data queue for worker tasks.
// Backed by the growable eapache/queue ring; capacity is enforced on top.
// Close moves the queue into a closed state that wakes every waiter: pushes
// fail with ErrClosed, pops drain the remainder and then fail with ErrClosed.

package containers

import (
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-kit/api"
)

// SyncQueue is a mutex-and-condition bounded FIFO. capacity <= 0 means unbounded.
type SyncQueue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	q        *queue.Queue
	capacity int
	closed   bool
}

// NewSyncQueue allocates a queue with the given capacity (<= 0 for unbounded).
func NewSyncQueue[T any](capacity int) *SyncQueue[T] {
	s := &SyncQueue[T]{
		q:        queue.New(),
		capacity: capacity,
	}
	s.notEmpty = sync.NewCond(&s.mu)
	s.notFull = sync.NewCond(&s.mu)
	return s
}

// waitDeadline blocks on c until signaled or the deadline passes.
// Zero deadline waits without limit. Returns false once the deadline is past.
// Caller holds s.mu.
func (s *SyncQueue[T]) waitDeadline(c *sync.Cond, deadline time.Time) bool {
	if deadline.IsZero() {
		c.Wait()
		return true
	}
	d := time.Until(deadline)
	if d <= 0 {
		return false
	}
	t := time.AfterFunc(d, func() {
		s.mu.Lock()
		c.Broadcast()
		s.mu.Unlock()
	})
	c.Wait()
	t.Stop()
	return true
}

func (s *SyncQueue[T]) push(v T, deadline time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.closed {
			return api.ErrClosed
		}
		if s.capacity <= 0 || s.q.Length() < s.capacity {
			break
		}
		if !s.waitDeadline(s.notFull, deadline) {
			return api.ErrOperationTimeout
		}
	}
	s.q.Add(v)
	s.notEmpty.Signal()
	return nil
}

// Push blocks while the queue is full, then appends v.
func (s *SyncQueue[T]) Push(v T) error { return s.push(v, time.Time{}) }

// PushTimeout is Push bounded by the given timeout.
func (s *SyncQueue[T]) PushTimeout(v T, timeout time.Duration) error {
	return s.push(v, time.Now().Add(timeout))
}

// TryPush appends v only if space is immediately available.
func (s *SyncQueue[T]) TryPush(v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return api.ErrClosed
	}
	if s.capacity > 0 && s.q.Length() >= s.capacity {
		return api.ErrQueueFull
	}
	s.q.Add(v)
	s.notEmpty.Signal()
	return nil
}

func (s *SyncQueue[T]) pop(deadline time.Time) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.q.Length() == 0 {
		if s.closed {
			return zero, api.ErrClosed
		}
		if !s.waitDeadline(s.notEmpty, deadline) {
			return zero, api.ErrOperationTimeout
		}
	}
	v := s.q.Remove().(T)
	s.notFull.Signal()
	return v, nil
}

// Pop blocks while the queue is empty, then removes the front element.
// After Close, remaining elements are drained before ErrClosed is returned.
func (s *SyncQueue[T]) Pop() (T, error) { return s.pop(time.Time{}) }

// PopTimeout is Pop bounded by the given timeout.
func (s *SyncQueue[T]) PopTimeout(timeout time.Duration) (T, error) {
	return s.pop(time.Now().Add(timeout))
}

// TryPop removes the front element only if one is immediately available.
func (s *SyncQueue[T]) TryPop() (T, bool) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.q.Length() == 0 {
		return zero, false
	}
	v := s.q.Remove().(T)
	s.notFull.Signal()
	return v, true
}

// Len returns the current number of queued elements.
func (s *SyncQueue[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.Length()
}

// Cap returns the configured capacity; 0 or negative means unbounded.
func (s *SyncQueue[T]) Cap() int { return s.capacity }

// Closed reports whether Close has been called.
func (s *SyncQueue[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close wakes all waiters. Subsequent pushes fail; pops drain the remainder.
func (s *SyncQueue[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.notEmpty.Broadcast()
	s.notFull.Broadcast()
}
