package diag

import "copper/internal/source"

// SyntaxCop is the cop name carried by lexer and parser errors.
const SyntaxCop = "Lint/Syntax"

// Offense is one reported violation.
type Offense struct {
	Cop         string
	Severity    Severity
	Span        source.Span
	Message     string
	Correctable bool
	Corrected   bool
}

// New builds an offense with the given fields.
func New(cop string, sev Severity, span source.Span, msg string) Offense {
	return Offense{Cop: cop, Severity: sev, Span: span, Message: msg}
}

// NewSyntax builds a fatal syntax offense.
func NewSyntax(span source.Span, msg string) Offense {
	return New(SyntaxCop, SevFatal, span, msg)
}

// WithCorrected returns a copy marked as corrected.
func (o Offense) WithCorrected() Offense {
	o.Corrected = true
	return o
}

// IsError reports whether the offense counts as an error (error or fatal).
func (o Offense) IsError() bool {
	return o.Severity >= SevError
}
