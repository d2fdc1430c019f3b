// File: api/task.go
// Package api defines worker task contracts.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Delegate is a unit of work queued to a worker task. It receives the
// task's shared context and the task name it runs on.
type Delegate func(ctx any, name string)

// Task is the common surface of every owning-worker component.
type Task interface {
	// Name returns the human-readable task name.
	Name() string
	// Running reports whether the worker loop is still active.
	Running() bool
	// Close stops the worker and drops pending work. Idempotent.
	Close() error
}

// Worker is a task executing queued delegates in submission order.
type Worker interface {
	Task
	// Delegate enqueues f for execution on the worker thread.
	// Returns ErrClosed after Close has begun.
	Delegate(f Delegate) error
}
