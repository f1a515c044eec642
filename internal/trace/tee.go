package trace

import "errors"

// TeeTracer copies every event to several tracers, e.g. a stream and the
// ring that is dumped after a failed run.
type TeeTracer struct {
	tracers []Tracer
	level   Level
}

// Tee combines tracers; its level is the most verbose of theirs.
func Tee(tracers ...Tracer) *TeeTracer {
	t := &TeeTracer{}
	for _, tr := range tracers {
		if tr == nil {
			continue
		}
		t.tracers = append(t.tracers, tr)
		t.level = max(t.level, tr.Level())
	}
	return t
}

// Emit hands each tracer its own copy of ev.
func (t *TeeTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *TeeTracer) Flush() error {
	errs := make([]error, 0, len(t.tracers))
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *TeeTracer) Close() error {
	errs := make([]error, 0, len(t.tracers))
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (t *TeeTracer) Level() Level { return t.level }
func (t *TeeTracer) Enabled() bool { return t.level > LevelOff }
