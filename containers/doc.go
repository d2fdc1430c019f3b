// Package containers
// Author: momentics <momentics@gmail.com>
//
// Bounded in-process containers for hioload-kit: fixed and runtime-capacity
// ring buffers with overwrite-on-full semantics, their mutex-guarded variants,
// a synchronized dictionary, a bounded blocking queue with a closed state, and
// a byte-oriented memory pipe.
// See ringbuffer.go, sync_queue.go, mempipe.go for implementation details.
package containers
