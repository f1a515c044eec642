package main

import (
	"fmt"
	"sync/atomic"

	"copper/internal/driver"
)

// runProgress counts finished files for the trace heartbeat.
type runProgress struct {
	started  atomic.Int64
	finished atomic.Int64
}

func (p *runProgress) observe(ev driver.Event) {
	switch {
	case ev.Stage == driver.StageLoad && ev.Status == driver.StatusStarted:
		p.started.Add(1)
	case ev.Stage == driver.StageInspect && ev.Status == driver.StatusDone,
		ev.Status == driver.StatusFailed && (ev.Stage == driver.StageLoad || ev.Stage == driver.StageParse):
		p.finished.Add(1)
	}
}

func (p *runProgress) status() string {
	return fmt.Sprintf("%d/%d files", p.finished.Load(), p.started.Load())
}

// chainSink calls a, then b; either may be nil.
func chainSink(a, b driver.Sink) driver.Sink {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ev driver.Event) {
		a(ev)
		b(ev)
	}
}
