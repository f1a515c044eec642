// Package trace is copper's structured event log.
//
// Tracing follows one run through its phases: the driver expands paths,
// every unit (file) is parsed and inspected, each cop runs in its own span,
// and edit conflicts or cop failures show up as point events.
//
// # Usage
//
//	copper inspect --trace=- --trace-level=detail app/
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a failure
//   - TeeTracer: copies events to several tracers (stream plus ring)
//
// # Levels and scopes
//
// Levels off, error, phase, detail and debug select scopes from coarse to
// fine: driver, pass (parse, inspect, correct), unit and cop.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
