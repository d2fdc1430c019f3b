// File: timer/scheduler.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Scheduler is the name-bearing facade over Engine. Auto-reload timers fire
// every period; one-shot timers fire once at now + period and release their
// engine id automatically. Close removes every live timer the facade owns.

package timer

import (
	"sync"
	"time"

	"github.com/momentics/hioload-kit/api"
	"github.com/momentics/hioload-kit/control"
)

// Handle identifies one scheduled timer owned by a Scheduler.
type Handle uint64

// NamedHandler runs with the name the timer was registered under.
type NamedHandler func(name string)

type schedEntry struct {
	name string
	id   api.TimerID
}

// Scheduler wraps an Engine with named timers and auto-release of one-shots.
type Scheduler struct {
	mu      sync.Mutex
	engine  *Engine
	entries map[Handle]schedEntry
	next    Handle
	closed  bool
}

// NewScheduler creates a scheduler owning a fresh engine. metrics may be nil.
func NewScheduler(metrics *control.MetricsRegistry) *Scheduler {
	return &Scheduler{
		engine:  NewEngine(metrics),
		entries: make(map[Handle]schedEntry),
	}
}

// Add schedules handler under name. With autoReload the handler fires every
// period; without it the handler fires once at now + period and the timer is
// released automatically after completion. Duplicate names are permitted; the
// returned Handle is the unit of identity.
func (s *Scheduler) Add(name string, period time.Duration, handler NamedHandler, autoReload bool) (Handle, error) {
	if handler == nil {
		return 0, api.ErrInvalidArgument
	}
	if period <= 0 {
		return 0, api.NewError(api.ErrCodeInvalidArgument, "timer period must be positive").
			WithContext("name", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, api.ErrClosed
	}
	s.next++
	h := s.next

	var id api.TimerID
	if autoReload {
		id = s.engine.AddPeriodicAfter(period, period, func(api.TimerID) {
			handler(name)
		})
	} else {
		id = s.engine.AddAfter(period, func(api.TimerID) {
			handler(name)
			// One-shot: the engine frees its id on return; drop our entry.
			s.mu.Lock()
			delete(s.entries, h)
			s.mu.Unlock()
		})
	}
	s.entries[h] = schedEntry{name: name, id: id}
	return h, nil
}

// Remove cancels the timer identified by handle. Returns false if the handle
// is unknown or already completed.
func (s *Scheduler) Remove(h Handle) bool {
	s.mu.Lock()
	ent, ok := s.entries[h]
	if ok {
		delete(s.entries, h)
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	return s.engine.Remove(ent.id)
}

// Name returns the name a live handle was registered under.
func (s *Scheduler) Name(h Handle) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ent, ok := s.entries[h]
	return ent.name, ok
}

// Live returns the number of timers currently owned by the scheduler.
func (s *Scheduler) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close removes all live timers and stops the owned engine. Idempotent.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for h, ent := range s.entries {
		s.engine.Remove(ent.id)
		delete(s.entries, h)
	}
	s.mu.Unlock()
	return s.engine.Close()
}
