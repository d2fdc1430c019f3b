// File: timer/engine.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Timer engine: a single dispatcher goroutine drains a deadline-ordered heap
// of time events backed by an indexable slot table with a free-list of dense
// recyclable ids. Handlers run with the engine lock released, so a handler
// may call Remove on its own id.
//
// Scheduling policy: a periodic timer's next deadline is previous + period,
// never now + period, so long-run drift stays bounded. After a late wakeup
// overdue deadlines fire back-to-back until the schedule catches up; missed
// ticks are not coalesced. Equal deadlines fire in insertion order.
//
// A handler that panics is contained at the dispatch boundary: the engine
// keeps running, the counter MetricTimerPanics is incremented, and a failed
// periodic is not rescheduled and its slot is reclaimed.

package timer

import (
	"container/heap"
	"sync"
	"time"

	"github.com/momentics/hioload-kit/api"
	"github.com/momentics/hioload-kit/control"
)

// slot is one entry of the indexable event table.
type slot struct {
	deadline time.Time
	period   time.Duration // 0 means one-shot
	handler  api.TimerHandler
	gen      uint64 // bumped on every release; detects stale heap entries
	valid    bool
}

// timeEvent is one entry of the deadline-ordered set.
type timeEvent struct {
	deadline time.Time
	seq      uint64 // insertion order, tie-break for equal deadlines
	id       api.TimerID
	gen      uint64
}

// deadlineHeap orders time events by deadline, then insertion order.
type deadlineHeap []timeEvent

func (h deadlineHeap) Len() int { return len(h) }
func (h deadlineHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}
func (h deadlineHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *deadlineHeap) Push(x any)   { *h = append(*h, x.(timeEvent)) }
func (h *deadlineHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	*h = old[:n-1]
	return ev
}

var _ api.TimerEngine = (*Engine)(nil)

// Engine dispatches one-shot and periodic handlers ordered by deadline.
type Engine struct {
	mu      sync.Mutex
	events  deadlineHeap
	table   []slot
	free    []api.TimerID
	seq     uint64
	closed  bool
	metrics *control.MetricsRegistry

	wakeCh chan struct{} // pokes the dispatcher after Add
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewEngine creates an engine and starts its dispatcher. metrics may be nil.
func NewEngine(metrics *control.MetricsRegistry) *Engine {
	e := &Engine{
		metrics: metrics,
		wakeCh:  make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go e.dispatch()
	return e
}

// allocID pops a free id or extends the table.
func (e *Engine) allocID() api.TimerID {
	if n := len(e.free); n > 0 {
		id := e.free[n-1]
		e.free = e.free[:n-1]
		return id
	}
	e.table = append(e.table, slot{})
	return api.TimerID(len(e.table) - 1)
}

// release reclaims a live slot and returns its id to the free-list.
// Idempotent through the valid flag. Caller holds e.mu.
func (e *Engine) release(id api.TimerID) {
	s := &e.table[id]
	if !s.valid {
		return
	}
	s.valid = false
	s.handler = nil
	s.gen++
	e.free = append(e.free, id)
}

func (e *Engine) add(deadline time.Time, period time.Duration, h api.TimerHandler) api.TimerID {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return -1
	}
	id := e.allocID()
	s := &e.table[id]
	s.deadline = deadline
	s.period = period
	s.handler = h
	s.valid = true
	e.seq++
	heap.Push(&e.events, timeEvent{deadline: deadline, seq: e.seq, id: id, gen: s.gen})
	select {
	case e.wakeCh <- struct{}{}:
	default:
	}
	return id
}

// Add schedules a one-shot handler at the absolute time when. A deadline in
// the past fires as soon as the dispatcher next runs.
func (e *Engine) Add(when time.Time, h api.TimerHandler) api.TimerID {
	return e.add(when, 0, h)
}

// AddAfter schedules a one-shot handler after the relative delay d.
func (e *Engine) AddAfter(d time.Duration, h api.TimerHandler) api.TimerID {
	return e.add(time.Now().Add(d), 0, h)
}

// AddPeriodic schedules a handler at when and every period thereafter.
func (e *Engine) AddPeriodic(when time.Time, period time.Duration, h api.TimerHandler) api.TimerID {
	if period <= 0 {
		return e.add(when, 0, h)
	}
	return e.add(when, period, h)
}

// AddPeriodicAfter schedules a periodic handler first firing after delay d.
func (e *Engine) AddPeriodicAfter(d, period time.Duration, h api.TimerHandler) api.TimerID {
	return e.AddPeriodic(time.Now().Add(d), period, h)
}

// Remove cancels a live timer. Returns false if id is not live. Calling
// Remove from inside the handler for the id being dispatched is safe; the
// handler must not touch captured state afterwards.
func (e *Engine) Remove(id api.TimerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if id < 0 || int(id) >= len(e.table) || !e.table[id].valid {
		return false
	}
	// The heap entry, if any, goes stale and is skipped by generation check.
	e.release(id)
	return true
}

// Live returns the number of currently live timer ids.
func (e *Engine) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for i := range e.table {
		if e.table[i].valid {
			n++
		}
	}
	return n
}

// dispatch is the engine's single worker loop.
func (e *Engine) dispatch() {
	defer close(e.doneCh)
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		e.mu.Lock()
		if e.closed {
			e.mu.Unlock()
			return
		}
		if e.events.Len() == 0 {
			e.mu.Unlock()
			select {
			case <-e.wakeCh:
				continue
			case <-e.stopCh:
				return
			}
		}
		top := e.events[0]
		now := time.Now()
		if top.deadline.After(now) {
			wait := top.deadline.Sub(now)
			e.mu.Unlock()
			timer.Reset(wait)
			select {
			case <-timer.C:
			case <-e.wakeCh:
				// An earlier deadline may have arrived; re-evaluate.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			case <-e.stopCh:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				return
			}
			continue
		}

		heap.Pop(&e.events)
		s := &e.table[top.id]
		if !s.valid || s.gen != top.gen {
			// Stale entry left behind by Remove; skip it.
			e.mu.Unlock()
			continue
		}
		handler := s.handler
		gen := s.gen
		id := top.id
		e.mu.Unlock()

		failed := e.invoke(handler, id)

		e.mu.Lock()
		s = &e.table[id]
		if s.valid && s.gen == gen {
			if s.period > 0 && !failed {
				// previous + period keeps the schedule drift-free.
				s.deadline = s.deadline.Add(s.period)
				e.seq++
				heap.Push(&e.events, timeEvent{deadline: s.deadline, seq: e.seq, id: id, gen: gen})
			} else {
				e.release(id)
			}
		}
		e.mu.Unlock()
	}
}

// invoke runs one handler outside the engine lock, containing panics.
func (e *Engine) invoke(h api.TimerHandler, id api.TimerID) (failed bool) {
	defer func() {
		if r := recover(); r != nil {
			failed = true
			e.metrics.Inc(control.MetricTimerPanics)
		}
	}()
	h(id)
	e.metrics.Inc(control.MetricTimersFired)
	return false
}

// Close stops the dispatcher and drops every remaining handler without
// invoking it. Idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		<-e.doneCh
		return nil
	}
	e.closed = true
	e.mu.Unlock()
	close(e.stopCh)
	<-e.doneCh

	e.mu.Lock()
	e.events = nil
	for id := range e.table {
		if e.table[id].valid {
			e.release(api.TimerID(id))
		}
	}
	e.mu.Unlock()
	return nil
}
