// File: fake/observer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fake

import "sync"

// Delivery is one recorded Inform call.
type Delivery struct {
	Topic  string
	Event  any
	Origin string
}

// RecordingObserver is a test observer that records every delivery.
type RecordingObserver struct {
	mu         sync.Mutex
	deliveries []Delivery
	dead       bool
}

// NewRecordingObserver returns a live recording observer.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

// Inform records the delivery.
func (r *RecordingObserver) Inform(topic string, event any, origin string) {
	r.mu.Lock()
	r.deliveries = append(r.deliveries, Delivery{Topic: topic, Event: event, Origin: origin})
	r.mu.Unlock()
}

// Alive reports liveness; see Kill.
func (r *RecordingObserver) Alive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.dead
}

// Kill marks the observer dead so subjects prune it.
func (r *RecordingObserver) Kill() {
	r.mu.Lock()
	r.dead = true
	r.mu.Unlock()
}

// Deliveries returns a snapshot of recorded deliveries.
func (r *RecordingObserver) Deliveries() []Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Delivery, len(r.deliveries))
	copy(out, r.deliveries)
	return out
}

// Count returns the number of recorded deliveries.
func (r *RecordingObserver) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.deliveries)
}

// PanickingObserver always panics in Inform; for dispatch-boundary tests.
type PanickingObserver struct{}

func (p *PanickingObserver) Inform(string, any, string) { panic("observer failure") }
func (p *PanickingObserver) Alive() bool                { return true }
