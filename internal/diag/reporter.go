package diag

import "copper/internal/source"

// Reporter is the minimal contract for receiving offenses.
// Implementations: BagReporter, ReporterFunc, NopReporter.
type Reporter interface {
	Report(o Offense)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Offense)

func (f ReporterFunc) Report(o Offense) { f(o) }

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Offense) {}

// BagReporter пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(o Offense) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(o)
}

// ReportBuilder accumulates offense details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	off      Offense
	emitted  bool
}

// NewReport constructs a builder bound to Reporter.
func NewReport(r Reporter, cop string, sev Severity, span source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		off:      New(cop, sev, span, msg),
	}
}

// Correctable marks whether the reporting cop is able to fix the offense.
func (b *ReportBuilder) Correctable(ok bool) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.off.Correctable = ok
	return b
}

// Severity overrides the default severity.
func (b *ReportBuilder) Severity(sev Severity) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.off.Severity = sev
	return b
}

// Emit sends the offense to the underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.off)
	}
	b.emitted = true
}

// Offense returns the accumulated offense without emitting.
func (b *ReportBuilder) Offense() Offense {
	if b == nil {
		return Offense{}
	}
	return b.off
}
