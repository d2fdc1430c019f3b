// File: spsc/pinned_consumer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// PinnedConsumer drains a Ring on a dedicated OS thread, optionally pinned to
// a CPU. Idle backoff is staged: tight poll first, cooperative yield next,
// short sleeps once the ring stays quiet. Keeps latency low during bursts
// without burning a core on a silent feed.

package spsc

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-kit/affinity"
)

const (
	spinPolls  = 1024 // tight polls before yielding
	yieldPolls = 256  // yields before sleeping
	idleSleep  = 50 * time.Microsecond
)

// PinnedConsumer owns the consumer side of a ring.
type PinnedConsumer[T any] struct {
	ring *Ring[T]
	stop atomic.Bool
	wg   sync.WaitGroup
}

// NewPinnedConsumer starts a consumer loop calling fn for every popped item.
// cpuID >= 0 pins the consumer thread to that CPU; pinning failures are
// advisory and do not prevent consumption. Close drains nothing: items still
// queued when Close is called remain in the ring.
func NewPinnedConsumer[T any](r *Ring[T], cpuID int, fn func(T)) *PinnedConsumer[T] {
	pc := &PinnedConsumer[T]{ring: r}
	pc.wg.Add(1)
	go pc.run(cpuID, fn)
	return pc
}

func (pc *PinnedConsumer[T]) run(cpuID int, fn func(T)) {
	defer pc.wg.Done()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if cpuID >= 0 {
		_ = affinity.SetAffinity(cpuID) // best effort
	}

	idle := 0
	for {
		if v, ok := pc.ring.Pop(); ok {
			fn(v)
			idle = 0
			continue
		}
		if pc.stop.Load() {
			return
		}
		idle++
		switch {
		case idle <= spinPolls:
			// tight poll
		case idle <= spinPolls+yieldPolls:
			runtime.Gosched()
		default:
			time.Sleep(idleSleep)
		}
	}
}

// Close stops the consumer loop and waits for the thread to exit.
func (pc *PinnedConsumer[T]) Close() error {
	pc.stop.Store(true)
	pc.wg.Wait()
	return nil
}
