// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics and configuration control layer for hioload-kit.
//
// Provides concurrent-safe state handling primitives including:
//   - Immutable snapshot config reads and atomic updates
//   - Runtime observers for reload propagation
//   - Named atomic counters reported by tasks, timers and subjects
package control
