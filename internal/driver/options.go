package driver

import (
	"copper/internal/config"
	"copper/internal/cop"
	"copper/internal/fix"
	"copper/internal/trace"
)

// MaxIterations bounds the autocorrect loop of one file.
const MaxIterations = 20

// Options control an inspection run. Cops are shared read-only between
// workers.
type Options struct {
	Cops []cop.Cop
	// Config supplies AllCops and per-cop Exclude; nil means none.
	Config *config.Resolved

	Autocorrect bool
	// Write stores corrected text back to disk. Virtual files are never
	// written.
	Write  bool
	Policy fix.Policy

	// Jobs limits parallel files; <= 0 means GOMAXPROCS.
	Jobs int
	// MaxSyntaxErrors caps reported syntax errors per file; 0 is no cap.
	MaxSyntaxErrors uint

	Tracer trace.Tracer
	Sink   Sink
}

// copsFor returns the cops that apply to path.
func (o *Options) copsFor(path string) []cop.Cop {
	if o.Config == nil {
		return o.Cops
	}
	out := make([]cop.Cop, 0, len(o.Cops))
	for _, c := range o.Cops {
		if !o.Config.CopExcluded(c.Name(), path) {
			out = append(out, c)
		}
	}
	return out
}

func (o *Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}
