// File: task/worker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker executes queued delegates strictly in submission order on its own
// thread. Close drops delegates that have not started; a delegate observed to
// start has its effects sequenced before the next delegate on the same task.

package task

import (
	"github.com/momentics/hioload-kit/api"
	"github.com/momentics/hioload-kit/containers"
	"github.com/momentics/hioload-kit/control"
)

var _ api.Worker = (*Worker)(nil)

// Worker is a task with a FIFO of delegates.
type Worker struct {
	Base
	queue   *containers.SyncQueue[api.Delegate]
	startup api.Delegate
	ctx     any
}

// NewWorker constructs and starts a worker task. startup, if non-nil, runs
// once on the worker thread before any delegate. ctx is the shared context
// handed to every callable. metrics may be nil.
func NewWorker(opts Options, startup api.Delegate, ctx any, metrics *control.MetricsRegistry) *Worker {
	w := &Worker{
		queue:   containers.NewSyncQueue[api.Delegate](opts.Capacity),
		startup: startup,
		ctx:     ctx,
	}
	w.init(opts, metrics)
	w.start(w.loop)
	return w
}

// Delegate enqueues f for execution on the worker thread. Blocks while a
// bounded queue is full. Returns ErrClosed once shutdown has begun.
func (w *Worker) Delegate(f api.Delegate) error {
	if f == nil {
		return api.ErrInvalidArgument
	}
	if w.Closing() {
		return api.ErrClosed
	}
	return w.queue.Push(f)
}

func (w *Worker) loop() {
	if w.startup != nil {
		w.invoke(w.startup)
	}
	for {
		f, err := w.queue.Pop()
		if err != nil {
			return
		}
		if w.Closing() {
			continue // dropped without invocation
		}
		w.invoke(f)
	}
}

// invoke runs one delegate with the panic boundary required of dispatchers:
// a failing callable is counted and the worker keeps running.
func (w *Worker) invoke(f api.Delegate) {
	defer func() {
		if r := recover(); r != nil {
			w.metrics.Inc(control.MetricDelegatePanics)
		}
	}()
	f(w.ctx, w.opts.Name)
	w.metrics.Inc(control.MetricDelegatesRun)
}

// Close stops the worker and drops pending delegates. Idempotent; blocks
// until the in-flight delegate, if any, has completed.
func (w *Worker) Close() error {
	if w.beginClose() {
		w.queue.Close()
	}
	w.join()
	return nil
}
