// File: task/data_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package task

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-kit/api"
)

func dataOpts(name string, capacity int) Options {
	opts := DefaultOptions(name)
	opts.Capacity = capacity
	return opts
}

func TestDataProcessesInOrder(t *testing.T) {
	const count = 200
	results := make(chan int, count)
	d, err := NewData(dataOpts("order", 8), nil, func(ctx any, v int, name string) {
		results <- v
	}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	for i := 0; i < count; i++ {
		if err := d.Submit(i); err != nil {
			t.Fatalf("Submit(%d) error: %v", i, err)
		}
	}
	for i := 0; i < count; i++ {
		select {
		case got := <-results:
			if got != i {
				t.Fatalf("value %d processed out of order (got %d)", i, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("value %d never processed", i)
		}
	}
}

func TestDataSubmitBlocksAtCapacity(t *testing.T) {
	gate := make(chan struct{})
	d, err := NewData(dataOpts("backpressure", 2), nil, func(ctx any, v int, name string) {
		<-gate
	}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		close(gate)
		d.Close()
	}()
	// Fill the in-flight window: one being processed plus the queue.
	for i := 0; i < 2; i++ {
		if err := d.Submit(i); err != nil {
			t.Fatal(err)
		}
	}
	blocked := make(chan error, 1)
	go func() {
		blocked <- d.Submit(99)
	}()
	select {
	case err := <-blocked:
		t.Fatalf("Submit over capacity returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	gate <- struct{}{} // let one value through
	select {
	case err := <-blocked:
		if err != nil {
			t.Errorf("Submit after drain error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Submit never unblocked")
	}
}

func TestDataCloseReleasesBlockedSubmit(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	d, err := NewData(dataOpts("closing", 1), nil, func(ctx any, v int, name string) {
		<-gate
	}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = d.Submit(1)
	blocked := make(chan error, 1)
	go func() {
		blocked <- d.Submit(2)
	}()
	time.Sleep(20 * time.Millisecond)
	go func() {
		gate <- struct{}{}
	}()
	_ = d.Close()
	select {
	case err := <-blocked:
		if !errors.Is(err, api.ErrClosed) && err != nil {
			t.Errorf("blocked Submit after Close = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("blocked Submit not released by Close")
	}
	if err := d.Submit(3); !errors.Is(err, api.ErrClosed) {
		t.Errorf("Submit after Close = %v, want ErrClosed", err)
	}
}

func TestDataInvalidConstruction(t *testing.T) {
	if _, err := NewData[int](dataOpts("bad", 4), nil, nil, nil, nil); err == nil {
		t.Error("nil process should be rejected")
	}
	if _, err := NewData(dataOpts("bad", 0), nil, func(any, int, string) {}, nil, nil); err == nil {
		t.Error("zero capacity should be rejected")
	}
}

// Two data tasks pass a token back and forth; each side counts its receipts.
func TestDataPingPong(t *testing.T) {
	const rounds = 10
	var aCount, bCount atomic.Int64
	var a, b *Data[int]
	done := make(chan struct{})

	// The token counts every hop: a sees odd values, b sees even ones.
	// After 2*rounds hops each side has processed exactly rounds tokens.
	var err error
	a, err = NewData(dataOpts("ping", 4), nil, func(ctx any, v int, name string) {
		aCount.Add(1)
		if v < 2*rounds {
			_ = b.Submit(v + 1)
		}
	}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err = NewData(dataOpts("pong", 4), nil, func(ctx any, v int, name string) {
		bCount.Add(1)
		if v == 2*rounds {
			close(done)
			return
		}
		_ = a.Submit(v + 1)
	}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	defer b.Close()

	if err := a.Submit(1); err != nil {
		t.Fatal(err)
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("ping-pong stalled: a=%d b=%d", aCount.Load(), bCount.Load())
	}
	if aCount.Load() != rounds || bCount.Load() != rounds {
		t.Errorf("counts a=%d b=%d, want %d each", aCount.Load(), bCount.Load(), rounds)
	}
}

func TestDataConcurrentSubmitters(t *testing.T) {
	const submitters = 8
	const perSubmitter = 500
	var processed atomic.Int64
	d, err := NewData(dataOpts("stress", 32), nil, func(ctx any, v int, name string) {
		processed.Add(1)
	}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	var g errgroup.Group
	for s := 0; s < submitters; s++ {
		g.Go(func() error {
			for i := 0; i < perSubmitter; i++ {
				if err := d.Submit(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for processed.Load() < submitters*perSubmitter {
		if time.Now().After(deadline) {
			t.Fatalf("processed %d of %d", processed.Load(), submitters*perSubmitter)
		}
		time.Sleep(time.Millisecond)
	}
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
}
