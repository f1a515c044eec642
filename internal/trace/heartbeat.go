package trace

import (
	"sync"
	"time"
)

// Heartbeat periodically emits a driver-scope event carrying the run's
// status, so a stuck run (a cop looping on a pathological file) is visible
// in the trace.
type Heartbeat struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartHeartbeat emits a heartbeat every interval until Stop. status, if
// not nil, supplies the event detail ("12/40 files"). It returns nil when
// tracing is off or interval <= 0; Stop on nil is a no-op.
func StartHeartbeat(tracer Tracer, interval time.Duration, status func() string) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(h.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ev := &Event{Time: time.Now(), Seq: NextSeq(), Kind: KindHeartbeat, Scope: ScopeDriver, Name: "heartbeat"}
				if status != nil {
					ev.Detail = status()
				}
				tracer.Emit(ev)
			case <-h.stop:
				return
			}
		}
	}()
	return h
}

// Stop ends the heartbeat and waits for its goroutine.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
