// File: task/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package task

import "github.com/momentics/hioload-kit/affinity"

// Options holds the immutable attributes common to every task.
// All fields are fixed at construction.
type Options struct {
	Name        string // Human-readable task name, passed to every callable
	StackSize   int    // Advisory lower bound on worker stack; the Go runtime grows stacks on demand
	CPUAffinity int    // Logical CPU to pin the worker thread to; affinity.AnyCPU disables pinning
	Priority    int    // Scheduling priority for the worker thread; affinity.DefaultPriority keeps the OS default
	Capacity    int    // Queue capacity for worker/data tasks; <= 0 means unbounded
}

// DefaultOptions returns task options with no pinning and default priority.
func DefaultOptions(name string) Options {
	return Options{
		Name:        name,
		StackSize:   0,
		CPUAffinity: affinity.AnyCPU,
		Priority:    affinity.DefaultPriority,
		Capacity:    0,
	}
}
