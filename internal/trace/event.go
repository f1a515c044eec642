package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
	KindHeartbeat // periodic liveness signal
	// KindError is an instant failure event; it passes every level but off.
	KindError
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	// ScopeDriver is one CLI command run.
	ScopeDriver Scope = iota + 1
	// ScopePass is a phase over all units: discovery, inspect, write.
	ScopePass
	// ScopeUnit is one file: parse, investigate, autocorrect loop.
	ScopeUnit
	// ScopeCop is one cop on one unit.
	ScopeCop
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeUnit:
		return "unit"
	case ScopeCop:
		return "cop"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier
	ParentID uint64            // parent span (0 if root)
	Unit     string            // file the event belongs to, if any
	Name     string            // e.g. "inspect_paths", "unit", "cop:Rails/Date"
	Detail   string            // optional detail message
	Extra    map[string]string // extensible key-value pairs
}
