// File: containers/sync_ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Mutex-guarded variants of RingBuffer and RingVector. Same contracts as the
// unsynchronized types; every method holds the container's lock.

package containers

import "sync"

// SyncRingBuffer is a RingBuffer safe for concurrent use.
type SyncRingBuffer[T any] struct {
	mu   sync.Mutex
	ring *RingBuffer[T]
}

// NewSyncRingBuffer allocates a synchronized ring buffer.
func NewSyncRingBuffer[T any](capacity int) *SyncRingBuffer[T] {
	return &SyncRingBuffer[T]{ring: NewRingBuffer[T](capacity)}
}

func (s *SyncRingBuffer[T]) Push(v T) {
	s.mu.Lock()
	s.ring.Push(v)
	s.mu.Unlock()
}

func (s *SyncRingBuffer[T]) Pop() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ring.Pop()
}

func (s *SyncRingBuffer[T]) Front() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ring.Front()
}

func (s *SyncRingBuffer[T]) Back() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ring.Back()
}

func (s *SyncRingBuffer[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ring.Len()
}

func (s *SyncRingBuffer[T]) Cap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ring.Cap()
}

// Snapshot returns the current contents from front to back.
func (s *SyncRingBuffer[T]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, s.ring.Len())
	s.ring.Do(func(v T) { out = append(out, v) })
	return out
}

// SyncRingVector is a RingVector safe for concurrent use.
type SyncRingVector[T any] struct {
	mu  sync.Mutex
	vec *RingVector[T]
}

// NewSyncRingVector allocates a synchronized ring vector.
func NewSyncRingVector[T any](capacity int) *SyncRingVector[T] {
	return &SyncRingVector[T]{vec: NewRingVector[T](capacity)}
}

func (s *SyncRingVector[T]) Push(v T) {
	s.mu.Lock()
	s.vec.Push(v)
	s.mu.Unlock()
}

func (s *SyncRingVector[T]) Pop() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vec.Pop()
}

func (s *SyncRingVector[T]) Front() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vec.Front()
}

func (s *SyncRingVector[T]) Back() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vec.Back()
}

func (s *SyncRingVector[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vec.Len()
}

func (s *SyncRingVector[T]) Cap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vec.Cap()
}

func (s *SyncRingVector[T]) Resize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vec.Resize(n)
}

// Snapshot returns the current contents from front to back.
func (s *SyncRingVector[T]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, s.vec.Len())
	s.vec.Do(func(v T) { out = append(out, v) })
	return out
}
