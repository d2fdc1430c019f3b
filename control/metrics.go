// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for the toolkit's workers and dispatchers.
// Exposes named atomic counters with dynamic registration; tasks, the timer
// engine and subjects report into an optional registry.

package control

import (
	"sync"
	"sync/atomic"
	"time"
)

// Counter names reported by the core components.
const (
	MetricTimersFired     = "timers_fired"
	MetricTimerPanics     = "timer_panics"
	MetricDelegatesRun    = "delegates_run"
	MetricDelegatePanics  = "delegate_panics"
	MetricItemsProcessed  = "items_processed"
	MetricPeriodicTicks   = "periodic_ticks"
	MetricEventsPublished = "events_published"
	MetricEventsQueued    = "events_queued"
	MetricEventsDropped   = "events_dropped"
	MetricPublishPanics   = "publish_panics"
)

// MetricsRegistry holds named monotonic counters.
type MetricsRegistry struct {
	mu       sync.RWMutex
	counters map[string]*atomic.Int64
	updated  time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		counters: make(map[string]*atomic.Int64),
	}
}

// Counter returns the counter registered under name, creating it on demand.
func (mr *MetricsRegistry) Counter(name string) *atomic.Int64 {
	mr.mu.RLock()
	c, ok := mr.counters[name]
	mr.mu.RUnlock()
	if ok {
		return c
	}
	mr.mu.Lock()
	defer mr.mu.Unlock()
	if c, ok = mr.counters[name]; ok {
		return c
	}
	c = new(atomic.Int64)
	mr.counters[name] = c
	mr.updated = time.Now()
	return c
}

// Inc increments the named counter by one. Safe on a nil registry, so
// components can carry an optional *MetricsRegistry without guards.
func (mr *MetricsRegistry) Inc(name string) {
	if mr == nil {
		return
	}
	mr.Counter(name).Add(1)
}

// Add increments the named counter by delta. Safe on a nil registry.
func (mr *MetricsRegistry) Add(name string, delta int64) {
	if mr == nil {
		return
	}
	mr.Counter(name).Add(delta)
}

// Get returns the current value of the named counter.
func (mr *MetricsRegistry) Get(name string) int64 {
	if mr == nil {
		return 0
	}
	return mr.Counter(name).Load()
}

// GetSnapshot returns the latest values of all counters.
func (mr *MetricsRegistry) GetSnapshot() map[string]int64 {
	if mr == nil {
		return nil
	}
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]int64, len(mr.counters))
	for k, v := range mr.counters {
		out[k] = v.Load()
	}
	return out
}
