package trace

import "context"

// carrier is what a context holds: the tracer and the innermost open span.
type carrier struct {
	tracer Tracer
	span   SpanContext
}

type carrierKey struct{}

// SpanContext identifies the span new spans should hang off.
type SpanContext struct {
	SpanID uint64
}

func load(ctx context.Context) carrier {
	if ctx != nil {
		if c, ok := ctx.Value(carrierKey{}).(carrier); ok {
			return c
		}
	}
	return carrier{tracer: Nop}
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return load(ctx).tracer
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	c := load(ctx)
	c.tracer = t
	return context.WithValue(ctx, carrierKey{}, c)
}

// CurrentSpan returns the span recorded by WithSpanContext, zero if none.
func CurrentSpan(ctx context.Context) SpanContext {
	return load(ctx).span
}

// WithSpanContext records sc as the parent for spans started under ctx.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	c := load(ctx)
	c.span = sc
	return context.WithValue(ctx, carrierKey{}, c)
}
