// File: task/periodic.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Periodic runs a body callable on a drift-free cadence: the next deadline is
// previous + period, never now + period. After a long suspension missed ticks
// fire back-to-back until the schedule catches up; ticks are not coalesced.
// The same catch-up policy is used by the timer engine.

package task

import (
	"time"

	"github.com/momentics/hioload-kit/api"
	"github.com/momentics/hioload-kit/control"
)

// Periodic is a task invoking body every period on its own thread.
type Periodic struct {
	Base
	period  time.Duration
	startup api.Delegate
	body    api.Delegate
	ctx     any
	stopCh  chan struct{}
}

// NewPeriodic constructs and starts a periodic task. startup, if non-nil,
// runs once before the first tick. period must be positive. metrics may be nil.
func NewPeriodic(opts Options, startup, body api.Delegate, ctx any, period time.Duration, metrics *control.MetricsRegistry) (*Periodic, error) {
	if body == nil {
		return nil, api.ErrInvalidArgument
	}
	if period <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "periodic task period must be positive").
			WithContext("period", period.String())
	}
	p := &Periodic{
		period:  period,
		startup: startup,
		body:    body,
		ctx:     ctx,
		stopCh:  make(chan struct{}),
	}
	p.init(opts, metrics)
	p.start(p.loop)
	return p, nil
}

// Period returns the configured tick interval.
func (p *Periodic) Period() time.Duration { return p.period }

func (p *Periodic) loop() {
	if p.startup != nil {
		p.invoke(p.startup)
	}
	next := time.Now().Add(p.period)
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	for {
		wait := time.Until(next)
		if wait > 0 {
			timer.Reset(wait)
			select {
			case <-p.stopCh:
				return
			case <-timer.C:
			}
		} else {
			// Behind schedule: fire immediately, still honoring stop.
			select {
			case <-p.stopCh:
				return
			default:
			}
		}
		p.invoke(p.body)
		p.metrics.Inc(control.MetricPeriodicTicks)
		next = next.Add(p.period)
	}
}

func (p *Periodic) invoke(f api.Delegate) {
	defer func() {
		if r := recover(); r != nil {
			p.metrics.Inc(control.MetricDelegatePanics)
		}
	}()
	f(p.ctx, p.opts.Name)
}

// Close stops the tick loop. The in-flight body completes before Close
// returns. Idempotent.
func (p *Periodic) Close() error {
	if p.beginClose() {
		close(p.stopCh)
	}
	p.join()
	return nil
}
