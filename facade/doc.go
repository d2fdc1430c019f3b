// File: facade/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package facade aggregates the library's runtime services (scheduler,
// goroutine pool, metrics, configuration) behind a single Kit type with a
// unified graceful-shutdown lifecycle.
package facade
