// File: task/base.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Base carries the descriptor shared by worker, periodic and data tasks and
// owns the single worker thread lifecycle. A task is neither copyable nor
// movable: it owns a running worker, and go vet flags copies via the noCopy
// guard.

package task

import (
	"runtime"
	"sync/atomic"

	"github.com/momentics/hioload-kit/affinity"
	"github.com/momentics/hioload-kit/control"
)

// noCopy triggers go vet's copylocks check when a task value is copied.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Base is the common state of every owning-worker task. Subclasses embed it
// by pointer-receiver composition and drive exactly one worker goroutine.
type Base struct {
	noCopy  noCopy
	opts    Options
	metrics *control.MetricsRegistry

	running atomic.Bool
	closing atomic.Bool
	done    chan struct{}
	tid     atomic.Int64
}

func (b *Base) init(opts Options, metrics *control.MetricsRegistry) {
	b.opts = opts
	b.metrics = metrics
	b.done = make(chan struct{})
}

// Name returns the task name.
func (b *Base) Name() string { return b.opts.Name }

// Options returns the immutable task descriptor.
func (b *Base) Options() Options { return b.opts }

// Running reports whether the worker loop is active.
func (b *Base) Running() bool { return b.running.Load() }

// NativeHandle returns the OS thread id the worker runs on, for
// platform-specific tuning. Zero until the worker has started; -1 where the
// platform exposes no thread ids.
func (b *Base) NativeHandle() int64 { return b.tid.Load() }

// start launches the worker goroutine around loop. The worker thread is
// locked for the lifetime of the loop so affinity and priority stick.
// Pinning failures are advisory and do not prevent the worker from running.
func (b *Base) start(loop func()) {
	b.running.Store(true)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(b.done)
		defer b.running.Store(false)

		if b.opts.CPUAffinity != affinity.AnyCPU {
			_ = affinity.SetAffinity(b.opts.CPUAffinity)
		}
		if b.opts.Priority != affinity.DefaultPriority {
			_ = affinity.SetPriority(b.opts.Priority)
		}
		b.tid.Store(int64(affinity.CurrentThreadID()))

		loop()
	}()
}

// beginClose flips the closing flag once. Returns false on repeat calls.
func (b *Base) beginClose() bool {
	return b.closing.CompareAndSwap(false, true)
}

// Closing reports whether shutdown has begun.
func (b *Base) Closing() bool { return b.closing.Load() }

// join blocks until the worker loop has exited.
func (b *Base) join() { <-b.done }
