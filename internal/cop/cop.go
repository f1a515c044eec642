package cop

import (
	"strings"

	"copper/internal/ast"
	"copper/internal/diag"
	"copper/internal/fix"
	"copper/internal/source"
)

// Cop inspects one tree and reports offenses.
type Cop interface {
	Name() string
	Inspect(tree *ast.Tree, r diag.Reporter)
}

// Autocorrector is implemented by cops that can fix their offenses. It
// registers replacements for o with c and reports whether it did.
type Autocorrector interface {
	Autocorrect(tree *ast.Tree, o diag.Offense, c *fix.Corrector) bool
}

// Base carries what every cop needs from its configuration: the name, the
// effective severity and whether autocorrection is allowed.
type Base struct {
	name        string
	severity    diag.Severity
	autocorrect bool
}

// NewBase resolves the common keys of cfg (Severity, AutoCorrect).
func NewBase(name string, cfg Config, def diag.Severity) (Base, error) {
	sev, err := cfg.Severity(def)
	if err != nil {
		return Base{}, err
	}
	return Base{
		name:        name,
		severity:    sev,
		autocorrect: cfg.Bool(KeyAutoCorrect, true),
	}, nil
}

func (b Base) Name() string { return b.name }

// Severity returns the severity offenses are reported with.
func (b Base) Severity() diag.Severity { return b.severity }

// AutocorrectEnabled reports whether AutoCorrect is on for the cop.
func (b Base) AutocorrectEnabled() bool { return b.autocorrect }

// AddOffense starts an offense of this cop; call Emit on the result.
func (b Base) AddOffense(r diag.Reporter, span source.Span, msg string) *diag.ReportBuilder {
	return diag.NewReport(r, b.name, b.severity, span, msg)
}

// Department returns the part of a cop name before the slash
// ("Rails" for "Rails/Date").
func Department(name string) string {
	dept, _, ok := strings.Cut(name, "/")
	if !ok {
		return ""
	}
	return dept
}
