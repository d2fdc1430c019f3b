// File: pubsub/subject.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Subject: synchronous topic-based event routing. Publish snapshots the
// subscriber set under the subject lock, then invokes observers and handlers
// with the lock released. That keeps re-entrant calls into the subject legal
// from inside a callback and rules out unsubscribe-during-publish deadlocks.
// Observers are held as non-owning references; entries whose observer reports
// not alive are pruned on the next publish.

package pubsub

import (
	"sync"

	"github.com/momentics/hioload-kit/api"
	"github.com/momentics/hioload-kit/control"
)

type handlerEntry struct {
	name string
	h    api.Handler
}

var _ api.Subject = (*Subject)(nil)

// Subject routes topic-tagged events to subscribed observers and named
// handlers. Safe for concurrent use.
type Subject struct {
	mu        sync.Mutex
	name      string
	observers map[string][]api.Observer
	handlers  map[string][]handlerEntry
	metrics   *control.MetricsRegistry
}

// NewSubject creates a subject. name is passed to subscribers as the event
// origin. metrics may be nil.
func NewSubject(name string, metrics *control.MetricsRegistry) *Subject {
	return &Subject{
		name:      name,
		observers: make(map[string][]api.Observer),
		handlers:  make(map[string][]handlerEntry),
		metrics:   metrics,
	}
}

// Name returns the subject's name.
func (s *Subject) Name() string { return s.name }

// Subscribe registers obs for topic. Subscribing the same observer again
// adds another entry: publishing then delivers multiple times.
func (s *Subject) Subscribe(topic string, obs api.Observer) {
	if obs == nil {
		return
	}
	s.mu.Lock()
	s.observers[topic] = append(s.observers[topic], obs)
	s.mu.Unlock()
}

// SubscribeHandler registers a named handler callable for topic.
func (s *Subject) SubscribeHandler(topic, name string, h api.Handler) {
	if h == nil {
		return
	}
	s.mu.Lock()
	s.handlers[topic] = append(s.handlers[topic], handlerEntry{name: name, h: h})
	s.mu.Unlock()
}

// Unsubscribe removes the first entry matching obs on topic.
func (s *Subject) Unsubscribe(topic string, obs api.Observer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.observers[topic]
	for i, o := range list {
		if o == obs {
			s.observers[topic] = append(list[:i:i], list[i+1:]...)
			if len(s.observers[topic]) == 0 {
				delete(s.observers, topic)
			}
			return true
		}
	}
	return false
}

// UnsubscribeHandler removes the first handler entry with the given name.
func (s *Subject) UnsubscribeHandler(topic, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.handlers[topic]
	for i, e := range list {
		if e.name == name {
			s.handlers[topic] = append(list[:i:i], list[i+1:]...)
			if len(s.handlers[topic]) == 0 {
				delete(s.handlers, topic)
			}
			return true
		}
	}
	return false
}

// Publish delivers event to every observer and handler currently subscribed
// to topic, in subscription order, on the caller's thread. Entries whose
// observer is no longer alive are pruned instead of informed. A panicking
// subscriber is contained; remaining subscribers are still informed.
func (s *Subject) Publish(topic string, event any) {
	s.mu.Lock()
	obsList := s.observers[topic]
	var obsSnap []api.Observer
	pruned := false
	for _, o := range obsList {
		if o.Alive() {
			obsSnap = append(obsSnap, o)
		} else {
			pruned = true
		}
	}
	if pruned {
		if len(obsSnap) == 0 {
			delete(s.observers, topic)
		} else {
			s.observers[topic] = append([]api.Observer(nil), obsSnap...)
		}
	}
	hSnap := make([]handlerEntry, len(s.handlers[topic]))
	copy(hSnap, s.handlers[topic])
	s.mu.Unlock()

	for _, o := range obsSnap {
		s.inform(o, topic, event)
	}
	for _, e := range hSnap {
		s.call(e.h, topic, event)
	}
	s.metrics.Inc(control.MetricEventsPublished)
}

func (s *Subject) inform(o api.Observer, topic string, event any) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.Inc(control.MetricPublishPanics)
		}
	}()
	o.Inform(topic, event, s.name)
}

func (s *Subject) call(h api.Handler, topic string, event any) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.Inc(control.MetricPublishPanics)
		}
	}()
	h(topic, event, s.name)
}

// Subscribers returns the number of observer entries for topic.
func (s *Subject) Subscribers(topic string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers[topic]) + len(s.handlers[topic])
}
