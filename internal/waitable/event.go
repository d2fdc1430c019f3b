// File: internal/waitable/event.go
// Package waitable provides a signalable event object with timeout waits.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Event is the blocking primitive behind async observers and task queues:
// a manually set/cleared flag that waiters can block on with an optional
// timeout. Close releases all waiters permanently for shutdown.

package waitable

import (
	"sync"
	"time"
)

// Event is a signalable flag. The zero value is not usable; use New.
type Event struct {
	mu     sync.Mutex
	gate   chan struct{} // closed while the flag is set
	done   chan struct{} // closed once on Close
	set    bool
	closed bool
}

// New creates an unset event.
func New() *Event {
	return &Event{
		gate: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Set raises the flag and releases current waiters.
func (e *Event) Set() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.set {
		return
	}
	e.set = true
	close(e.gate)
}

// Clear lowers the flag. Subsequent waits block again.
func (e *Event) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.set {
		return
	}
	e.set = false
	e.gate = make(chan struct{})
}

// IsSet reports whether the flag is currently raised.
func (e *Event) IsSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.set
}

// Wait blocks until the flag is set, the event is closed, or timeout elapses.
// timeout <= 0 means wait without limit. Returns true only if the flag was
// observed set. Spurious early returns are permitted by the contract but this
// implementation does not produce them.
func (e *Event) Wait(timeout time.Duration) bool {
	e.mu.Lock()
	if e.set {
		e.mu.Unlock()
		return true
	}
	if e.closed {
		e.mu.Unlock()
		return false
	}
	gate := e.gate
	e.mu.Unlock()

	if timeout <= 0 {
		select {
		case <-gate:
			return true
		case <-e.done:
			return false
		}
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-gate:
		return true
	case <-e.done:
		return false
	case <-t.C:
		return false
	}
}

// Close releases all waiters permanently. Further Set/Clear calls are no-ops.
func (e *Event) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	close(e.done)
}
