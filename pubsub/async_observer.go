// File: pubsub/async_observer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// AsyncObserver decouples event delivery from event handling: Inform (on the
// publisher's thread) only enqueues and signals; a consumer drains at its own
// pace with the pop and wait calls. Inform never blocks: with a bounded
// queue the newest event is dropped when full and counted in metrics.

package pubsub

import (
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-kit/api"
	"github.com/momentics/hioload-kit/containers"
	"github.com/momentics/hioload-kit/control"
	"github.com/momentics/hioload-kit/internal/waitable"
)

// QueuedEvent is one delivery held by an AsyncObserver.
type QueuedEvent struct {
	Topic  string
	Event  any
	Origin string
}

var _ api.Observer = (*AsyncObserver)(nil)

// AsyncObserver is an api.Observer that queues deliveries for later draining.
type AsyncObserver struct {
	queue   *containers.SyncQueue[QueuedEvent]
	avail   *waitable.Event
	closed  atomic.Bool
	metrics *control.MetricsRegistry
}

// NewAsyncObserver creates an async observer. capacity <= 0 means an
// unbounded event queue. metrics may be nil.
func NewAsyncObserver(capacity int, metrics *control.MetricsRegistry) *AsyncObserver {
	return &AsyncObserver{
		queue:   containers.NewSyncQueue[QueuedEvent](capacity),
		avail:   waitable.New(),
		metrics: metrics,
	}
}

// Inform implements api.Observer: enqueue and signal, never block.
func (a *AsyncObserver) Inform(topic string, event any, origin string) {
	if a.closed.Load() {
		return
	}
	ev := QueuedEvent{Topic: topic, Event: event, Origin: origin}
	if err := a.queue.TryPush(ev); err != nil {
		a.metrics.Inc(control.MetricEventsDropped)
		return
	}
	a.metrics.Inc(control.MetricEventsQueued)
	a.avail.Set()
}

// Alive implements api.Observer; subjects prune the entry after Close.
func (a *AsyncObserver) Alive() bool { return !a.closed.Load() }

// PopFirstEvent removes and returns the oldest queued event.
func (a *AsyncObserver) PopFirstEvent() (QueuedEvent, bool) {
	ev, ok := a.queue.TryPop()
	a.syncFlag()
	return ev, ok
}

// PopLastEvent returns the newest queued event and clears the queue.
func (a *AsyncObserver) PopLastEvent() (QueuedEvent, bool) {
	var last QueuedEvent
	found := false
	for {
		ev, ok := a.queue.TryPop()
		if !ok {
			break
		}
		last = ev
		found = true
	}
	a.syncFlag()
	return last, found
}

// PopAllEvents drains the queue in FIFO order.
func (a *AsyncObserver) PopAllEvents() []QueuedEvent {
	var out []QueuedEvent
	for {
		ev, ok := a.queue.TryPop()
		if !ok {
			break
		}
		out = append(out, ev)
	}
	a.syncFlag()
	return out
}

// HasEvents reports whether at least one event is queued.
func (a *AsyncObserver) HasEvents() bool { return a.queue.Len() > 0 }

// NumberOfEvents returns the queued event count.
func (a *AsyncObserver) NumberOfEvents() int { return a.queue.Len() }

// WaitForEvents blocks until an event is signaled or timeout elapses.
// timeout <= 0 waits without limit. Spurious wakeups are permitted: a true
// return does not guarantee the queue is still non-empty.
func (a *AsyncObserver) WaitForEvents(timeout time.Duration) bool {
	return a.avail.Wait(timeout)
}

// syncFlag re-arms the availability flag to match queue occupancy.
func (a *AsyncObserver) syncFlag() {
	if a.queue.Len() == 0 {
		a.avail.Clear()
	} else {
		a.avail.Set()
	}
}

// Close stops accepting deliveries and releases all waiters. Queued events
// remain drainable.
func (a *AsyncObserver) Close() error {
	if a.closed.CompareAndSwap(false, true) {
		a.avail.Close()
		a.queue.Close()
	}
	return nil
}
