// File: task/data.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Data is a typed processing task with a bounded input queue. Admission is
// controlled by a weighted semaphore sized to the queue capacity: Submit
// blocks while N values are in flight and returns promptly once Close begins.
// Queued but unprocessed values are dropped on Close.

package task

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/momentics/hioload-kit/api"
	"github.com/momentics/hioload-kit/containers"
	"github.com/momentics/hioload-kit/control"
)

// ProcessFunc handles one value on the task's thread.
type ProcessFunc[T any] func(ctx any, v T, name string)

// Data is a task consuming a bounded typed input queue.
type Data[T any] struct {
	Base
	queue    *containers.SyncQueue[T]
	sem      *semaphore.Weighted
	process  ProcessFunc[T]
	startup  api.Delegate
	ctx      any
	closeCtx context.Context
	cancel   context.CancelFunc
}

// NewData constructs and starts a data task with input capacity opts.Capacity
// (must be positive). process is required; startup, if non-nil, runs once
// before the first value. metrics may be nil.
func NewData[T any](opts Options, startup api.Delegate, process ProcessFunc[T], ctx any, metrics *control.MetricsRegistry) (*Data[T], error) {
	if process == nil {
		return nil, api.ErrInvalidArgument
	}
	if opts.Capacity <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "data task capacity must be positive").
			WithContext("capacity", opts.Capacity)
	}
	closeCtx, cancel := context.WithCancel(context.Background())
	d := &Data[T]{
		queue:    containers.NewSyncQueue[T](0),
		sem:      semaphore.NewWeighted(int64(opts.Capacity)),
		process:  process,
		startup:  startup,
		ctx:      ctx,
		closeCtx: closeCtx,
		cancel:   cancel,
	}
	d.init(opts, metrics)
	d.start(d.loop)
	return d, nil
}

// Submit enqueues v for processing, blocking while the input queue is full.
// Returns ErrClosed once shutdown has begun.
func (d *Data[T]) Submit(v T) error {
	if d.Closing() {
		return api.ErrClosed
	}
	if err := d.sem.Acquire(d.closeCtx, 1); err != nil {
		return api.ErrClosed
	}
	if err := d.queue.Push(v); err != nil {
		d.sem.Release(1)
		return err
	}
	return nil
}

// Pending returns the number of submitted values not yet processed.
func (d *Data[T]) Pending() int { return d.queue.Len() }

func (d *Data[T]) loop() {
	if d.startup != nil {
		d.invokeStartup()
	}
	for {
		v, err := d.queue.Pop()
		if err != nil {
			return
		}
		d.sem.Release(1)
		if d.Closing() {
			continue // dropped without processing
		}
		d.invoke(v)
	}
}

func (d *Data[T]) invokeStartup() {
	defer func() {
		if r := recover(); r != nil {
			d.metrics.Inc(control.MetricDelegatePanics)
		}
	}()
	d.startup(d.ctx, d.opts.Name)
}

func (d *Data[T]) invoke(v T) {
	defer func() {
		if r := recover(); r != nil {
			d.metrics.Inc(control.MetricDelegatePanics)
		}
	}()
	d.process(d.ctx, v, d.opts.Name)
	d.metrics.Inc(control.MetricItemsProcessed)
}

// Close stops the worker, releases blocked submitters and drops queued
// values. Idempotent; blocks until the in-flight value has been processed.
func (d *Data[T]) Close() error {
	if d.beginClose() {
		d.cancel()
		d.queue.Close()
	}
	d.join()
	return nil
}
