// File: facade/kit.go
// Unified facade layer for the hioload-kit library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the Kit struct, which aggregates the core runtime
// services of the library behind a single facade: a shared timer scheduler,
// a goroutine pool for detached jobs, a metrics registry, and a dynamic
// configuration store. The facade owns the lifecycle of these services and
// implements api.GracefulShutdown for unified teardown.

package facade

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/momentics/hioload-kit/api"
	"github.com/momentics/hioload-kit/control"
	"github.com/momentics/hioload-kit/task"
	"github.com/momentics/hioload-kit/timer"
)

// Config holds parameters immutable per run.
// All fields influence the initialization of internal components and cannot
// be changed at runtime except via the ConfigStore reload mechanism.
type Config struct {
	PoolSize        int           // Number of goroutines in the detached-job pool
	TaskCapacity    int           // Default pending-item capacity for tasks built via the facade
	CPUAffinity     int           // CPU index to pin facade-built tasks to, -1 for any
	Priority        int           // Thread priority for facade-built tasks
	EnableMetrics   bool          // Whether to allocate a metrics registry
	ShutdownTimeout time.Duration // Upper bound on graceful shutdown
}

// DefaultConfig returns default configuration values.
// These sane defaults support typical use cases without extensive tuning.
func DefaultConfig() *Config {
	return &Config{
		PoolSize:        8,                // Eight pooled goroutines
		TaskCapacity:    1024,             // 1024 pending items per task queue
		CPUAffinity:     -1,               // No pinning by default
		Priority:        0,                // Platform default priority
		EnableMetrics:   true,             // Collect counters by default
		ShutdownTimeout: 30 * time.Second, // 30-second graceful shutdown
	}
}

// Kit is the main facade type.
// It implements api.GracefulShutdown to allow unified shutdown logic.
type Kit struct {
	scheduler *timer.Scheduler         // Shared timer scheduler for periodic jobs
	pool      *ants.Pool               // Goroutine pool for detached jobs
	metrics   *control.MetricsRegistry // Counter registry, nil when disabled
	config    *control.ConfigStore     // Dynamic configuration store

	cfg  *Config    // Immutable configuration
	mu   sync.Mutex // Protects done flag
	done bool       // Set once Shutdown has run
}

// Ensure compliance with api.GracefulShutdown.
var _ api.GracefulShutdown = (*Kit)(nil)

// New constructs a Kit with the given configuration. A nil cfg selects
// DefaultConfig. The scheduler and goroutine pool start immediately.
func New(cfg *Config) (*Kit, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.PoolSize <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "facade pool size must be positive").
			WithContext("pool_size", cfg.PoolSize)
	}
	k := &Kit{cfg: cfg}

	if cfg.EnableMetrics {
		k.metrics = control.NewMetricsRegistry()
	}
	k.config = control.NewConfigStore()
	k.config.SetConfig(map[string]any{
		control.ConfigDefaultCapacity: cfg.TaskCapacity,
		control.ConfigDefaultAffinity: cfg.CPUAffinity,
		control.ConfigDefaultPriority: cfg.Priority,
	})

	k.scheduler = timer.NewScheduler(k.metrics)

	pool, err := ants.NewPool(cfg.PoolSize)
	if err != nil {
		k.scheduler.Close()
		return nil, fmt.Errorf("facade: pool init failure: %w", err)
	}
	k.pool = pool

	return k, nil
}

// Go runs fn on the shared goroutine pool. It returns api.ErrClosed after
// Shutdown and api.ErrResourceExhausted when the pool cannot accept work.
func (k *Kit) Go(fn func()) error {
	if fn == nil {
		return api.ErrInvalidArgument
	}
	if err := k.pool.Submit(fn); err != nil {
		if errors.Is(err, ants.ErrPoolClosed) {
			return api.ErrClosed
		}
		return fmt.Errorf("%w: %v", api.ErrResourceExhausted, err)
	}
	return nil
}

// Schedule registers a job on the shared scheduler. One-shot jobs pass
// autoReload=false and run once after period; periodic jobs reload forever.
func (k *Kit) Schedule(name string, period time.Duration, fn timer.NamedHandler, autoReload bool) (timer.Handle, error) {
	return k.scheduler.Add(name, period, fn, autoReload)
}

// Unschedule cancels a job returned by Schedule before it fires.
func (k *Kit) Unschedule(h timer.Handle) bool {
	return k.scheduler.Remove(h)
}

// NewWorker builds a delegate worker task wired to the facade's metrics
// and defaults. The caller owns the task and must Close it.
func (k *Kit) NewWorker(name string, startup api.Delegate, ctx any) *task.Worker {
	return task.NewWorker(k.taskOptions(name), startup, ctx, k.metrics)
}

// NewPeriodic builds a periodic task wired to the facade's metrics and
// defaults. The caller owns the task and must Close it.
func (k *Kit) NewPeriodic(name string, startup, body api.Delegate, ctx any, period time.Duration) (*task.Periodic, error) {
	return task.NewPeriodic(k.taskOptions(name), startup, body, ctx, period, k.metrics)
}

func (k *Kit) taskOptions(name string) task.Options {
	opts := task.DefaultOptions(name)
	opts.Capacity = k.cfg.TaskCapacity
	opts.CPUAffinity = k.cfg.CPUAffinity
	opts.Priority = k.cfg.Priority
	return opts
}

// Scheduler exposes the shared timer scheduler.
func (k *Kit) Scheduler() *timer.Scheduler { return k.scheduler }

// Metrics returns the counter registry, or nil when metrics are disabled.
func (k *Kit) Metrics() *control.MetricsRegistry { return k.metrics }

// ConfigStore returns the dynamic configuration store.
func (k *Kit) ConfigStore() *control.ConfigStore { return k.config }

// Running reports the number of pool goroutines currently executing jobs.
func (k *Kit) Running() int { return k.pool.Running() }

// Shutdown implements api.GracefulShutdown: it stops the scheduler, then
// releases the goroutine pool, waiting up to ShutdownTimeout for in-flight
// jobs. Subsequent calls are no-ops.
func (k *Kit) Shutdown() error {
	k.mu.Lock()
	if k.done {
		k.mu.Unlock()
		return nil
	}
	k.done = true
	k.mu.Unlock()

	k.scheduler.Close()

	released := make(chan struct{})
	go func() {
		k.pool.Release()
		close(released)
	}()
	select {
	case <-released:
		return nil
	case <-time.After(k.cfg.ShutdownTimeout):
		return fmt.Errorf("%w: facade shutdown after %v", api.ErrOperationTimeout, k.cfg.ShutdownTimeout)
	}
}
