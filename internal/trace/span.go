package trace

import (
	"sync/atomic"
	"time"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return globalSeq.Add(1) }

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 { return globalSpans.Add(1) }

// Span is an open begin/end pair. A Span from a disabled tracer records
// nothing; its methods are safe on nil.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	unit    string
	name    string
	started time.Time
	extra   map[string]string
}

// Begin starts a span at scope and emits its begin event. parent is the
// enclosing span ID, 0 for a root.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	return begin(t, scope, name, "", parent)
}

// BeginUnit starts a unit-scope span for the file at path. Every event of
// the span carries the path.
func BeginUnit(t Tracer, path string, parent uint64) *Span {
	return begin(t, ScopeUnit, "unit", path, parent)
}

func begin(t Tracer, scope Scope, name, unit string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:  t,
		id:      NextSpanID(),
		parent:  parent,
		scope:   scope,
		unit:    unit,
		name:    name,
		started: time.Now(),
	}
	s.emit(KindSpanBegin, "", s.started, nil)
	return s
}

func (s *Span) emit(kind Kind, detail string, at time.Time, extra map[string]string) {
	s.tracer.Emit(&Event{
		Time:     at,
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Unit:     s.unit,
		Name:     s.name,
		Detail:   detail,
		Extra:    extra,
	})
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

// End emits the end event with detail and the collected extras, and
// returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	s.emit(KindSpanEnd, detail, now, s.extra)
	return now.Sub(s.started)
}

// WithExtra adds a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for a disabled span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event at scope.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	instant(t, KindPoint, scope, name, detail, parent)
}

// Error emits a failure event; it is recorded at every level but off.
func Error(t Tracer, scope Scope, name string, err error, parent uint64) {
	if err == nil || t == nil || !t.Enabled() {
		return
	}
	instant(t, KindError, scope, name, err.Error(), parent)
}

func instant(t Tracer, kind Kind, scope Scope, name, detail string, parent uint64) {
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}
