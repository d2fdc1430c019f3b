// File: spsc/ring_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package spsc

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestRingPushPopRoundTrip(t *testing.T) {
	r := NewRing[int](8)
	if !r.Push(42) {
		t.Fatal("Push on empty ring failed")
	}
	v, ok := r.Pop()
	if !ok || v != 42 {
		t.Errorf("Pop = %d,%v, want 42", v, ok)
	}
	if _, ok := r.Pop(); ok {
		t.Error("Pop on empty ring should fail")
	}
}

func TestRingFullSemantics(t *testing.T) {
	r := NewRing[int](8)
	if r.Cap() != 7 {
		t.Fatalf("Cap = %d, want 7 (one slot reserved)", r.Cap())
	}
	for i := 0; i < 7; i++ {
		if !r.Push(i) {
			t.Fatalf("Push %d failed before capacity", i)
		}
	}
	if r.Push(99) {
		t.Error("Push on full ring should fail")
	}
	if _, ok := r.Pop(); !ok {
		t.Fatal("Pop failed")
	}
	if !r.Push(99) {
		t.Error("Push after one Pop should succeed")
	}
}

func TestRingPowerOfTwoEnforced(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewRing(12) should panic")
		}
	}()
	NewRing[int](12)
}

func TestRingProducerConsumerOrder(t *testing.T) {
	const count = 100000
	r := NewRing[int](16)
	done := make(chan bool, 1)
	go func() {
		next := 0
		for next < count {
			v, ok := r.Pop()
			if !ok {
				continue
			}
			if v != next {
				t.Errorf("out of order: got %d, want %d", v, next)
				done <- false
				return
			}
			next++
		}
		done <- true
	}()
	for i := 0; i < count; {
		if r.Push(i) {
			i++
		}
	}
	select {
	case ok := <-done:
		if !ok {
			t.Fatal("consumer observed reordering")
		}
	case <-time.After(10 * time.Second):
		t.Fatal("consumer stalled")
	}
}

func TestCheckedRingDelegates(t *testing.T) {
	r := NewCheckedRing[int](8)
	if !r.Push(7) {
		t.Fatal("Push failed")
	}
	if v, ok := r.Pop(); !ok || v != 7 {
		t.Errorf("Pop = %d,%v, want 7", v, ok)
	}
	if r.Cap() != 7 || r.Len() != 0 {
		t.Errorf("Cap/Len = %d/%d", r.Cap(), r.Len())
	}
}

func TestPinnedConsumerDrains(t *testing.T) {
	r := NewRing[int](64)
	var sum atomic.Int64
	pc := NewPinnedConsumer(r, -1, func(v int) {
		sum.Add(int64(v))
	})
	want := int64(0)
	for i := 1; i <= 1000; {
		if r.Push(i) {
			want += int64(i)
			i++
		}
	}
	deadline := time.Now().Add(5 * time.Second)
	for sum.Load() != want && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := pc.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if sum.Load() != want {
		t.Errorf("sum = %d, want %d", sum.Load(), want)
	}
}
