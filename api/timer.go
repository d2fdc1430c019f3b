// Package api
// Author: momentics
//
// Timer engine contract for one-shot and periodic callback dispatch.

package api

import "time"

// TimerID is a dense recyclable timer identifier.
type TimerID int

// TimerHandler runs on the engine's dispatcher thread when a deadline is reached.
type TimerHandler func(id TimerID)

// TimerEngine dispatches callables at absolute times.
type TimerEngine interface {
	// Add schedules a one-shot handler at the absolute time when.
	Add(when time.Time, h TimerHandler) TimerID
	// AddPeriodic schedules a handler at when and every period thereafter.
	AddPeriodic(when time.Time, period time.Duration, h TimerHandler) TimerID
	// Remove cancels a live timer. Returns false if id is not live.
	// Safe to call from inside the handler itself.
	Remove(id TimerID) bool
	// Close stops the dispatcher and drops remaining handlers uninvoked.
	Close() error
}
