// File: pubsub/async_observer_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pubsub

import (
	"testing"
	"time"

	"github.com/momentics/hioload-kit/control"
)

func TestAsyncObserverQueuesEvents(t *testing.T) {
	a := NewAsyncObserver(8, nil)
	defer a.Close()
	s := NewSubject("src", nil)
	s.Subscribe("t", a)

	s.Publish("t", 1)
	s.Publish("t", 2)

	if !a.HasEvents() || a.NumberOfEvents() != 2 {
		t.Fatalf("queued = %d, want 2", a.NumberOfEvents())
	}
	ev, ok := a.PopFirstEvent()
	if !ok || ev.Event != 1 || ev.Topic != "t" || ev.Origin != "src" {
		t.Errorf("first event = %+v", ev)
	}
	ev, ok = a.PopFirstEvent()
	if !ok || ev.Event != 2 {
		t.Errorf("second event = %+v", ev)
	}
	if _, ok := a.PopFirstEvent(); ok {
		t.Error("pop from empty queue succeeded")
	}
}

func TestAsyncObserverPopLast(t *testing.T) {
	a := NewAsyncObserver(8, nil)
	defer a.Close()
	for i := 1; i <= 3; i++ {
		a.Inform("t", i, "src")
	}
	ev, ok := a.PopLastEvent()
	if !ok || ev.Event != 3 {
		t.Fatalf("PopLastEvent = %+v, want newest", ev)
	}
	ev, _ = a.PopFirstEvent()
	if ev.Event != 1 {
		t.Errorf("remaining head = %+v, want oldest", ev)
	}
	if a.NumberOfEvents() != 1 {
		t.Errorf("remaining = %d, want 1", a.NumberOfEvents())
	}
}

func TestAsyncObserverPopAll(t *testing.T) {
	a := NewAsyncObserver(8, nil)
	defer a.Close()
	for i := 0; i < 4; i++ {
		a.Inform("t", i, "src")
	}
	all := a.PopAllEvents()
	if len(all) != 4 {
		t.Fatalf("PopAllEvents returned %d events", len(all))
	}
	for i, ev := range all {
		if ev.Event != i {
			t.Errorf("event[%d] = %v, out of order", i, ev.Event)
		}
	}
	if a.HasEvents() {
		t.Error("events remain after PopAllEvents")
	}
}

func TestAsyncObserverWaitForEvents(t *testing.T) {
	a := NewAsyncObserver(8, nil)
	defer a.Close()

	start := time.Now()
	if a.WaitForEvents(30 * time.Millisecond) {
		t.Error("wait on empty queue reported events")
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("timed wait returned too early")
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		a.Inform("t", "late", "src")
	}()
	if !a.WaitForEvents(500 * time.Millisecond) {
		t.Fatal("wait missed the arriving event")
	}
	if _, ok := a.PopFirstEvent(); !ok {
		t.Error("event not present after successful wait")
	}
}

func TestAsyncObserverDropsWhenFull(t *testing.T) {
	mr := control.NewMetricsRegistry()
	a := NewAsyncObserver(2, mr)
	defer a.Close()
	for i := 0; i < 5; i++ {
		a.Inform("t", i, "src")
	}
	if a.NumberOfEvents() != 2 {
		t.Errorf("queued = %d, want capacity 2", a.NumberOfEvents())
	}
	if mr.Get(control.MetricEventsDropped) != 3 {
		t.Errorf("dropped = %d, want 3", mr.Get(control.MetricEventsDropped))
	}
}

func TestAsyncObserverClose(t *testing.T) {
	a := NewAsyncObserver(8, nil)
	done := make(chan bool, 1)
	go func() {
		done <- a.WaitForEvents(time.Second)
	}()
	time.Sleep(20 * time.Millisecond)
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not wake waiter")
	}
	if a.Alive() {
		t.Error("closed observer still reports alive")
	}
	a.Inform("t", 1, "src")
	if a.HasEvents() {
		t.Error("closed observer accepted an event")
	}
}
