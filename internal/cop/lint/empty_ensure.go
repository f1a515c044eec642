package lint

import (
	"strings"

	"copper/internal/ast"
	"copper/internal/cop"
	"copper/internal/diag"
	"copper/internal/fix"
	"copper/internal/source"
)

const (
	EmptyEnsureName = "Lint/EmptyEnsure"
	emptyEnsureMsg  = "Empty `ensure` block detected."
)

// EmptyEnsure flags an `ensure` clause with no statements. The offense
// covers the `ensure` keyword only.
type EmptyEnsure struct {
	cop.Base
}

// EmptyEnsureRegistration describes Lint/EmptyEnsure.
var EmptyEnsureRegistration = cop.Registration{
	Name:        EmptyEnsureName,
	Description: "Checks for empty `ensure` blocks.",
	Defaults: cop.Config{
		cop.KeyEnabled:     true,
		cop.KeySeverity:    diag.SevWarning.String(),
		cop.KeyAutoCorrect: true,
	},
	Safe:         true,
	Autocorrects: true,
	New: func(cfg cop.Config) (cop.Cop, error) {
		return NewEmptyEnsure(cfg)
	},
}

func NewEmptyEnsure(cfg cop.Config) (*EmptyEnsure, error) {
	b, err := cop.NewBase(EmptyEnsureName, cfg, diag.SevWarning)
	if err != nil {
		return nil, err
	}
	return &EmptyEnsure{Base: b}, nil
}

// Inspect reports every ensure whose cleanup body is empty. What the
// statements of a non-empty cleanup do is irrelevant.
func (c *EmptyEnsure) Inspect(tree *ast.Tree, r diag.Reporter) {
	for n := range tree.Nodes() {
		if n.Kind != ast.Ensure || n.Cleanup != nil {
			continue
		}
		c.AddOffense(r, n.Loc.Keyword, emptyEnsureMsg).Correctable(true).Emit()
	}
}

// Autocorrect drops the empty clause. When only blanks or `;` separate the
// keyword from the closing `end`, the whole gap becomes one newline; when
// both keywords open their lines the gap runs line to line so the
// indentation of `end` survives. Otherwise (comments in between) only the keyword goes.
func (c *EmptyEnsure) Autocorrect(tree *ast.Tree, o diag.Offense, corr *fix.Corrector) bool {
	ens := tree.Find(func(n *ast.Node) bool {
		return n.Kind == ast.Ensure && n.Loc.Keyword == o.Span
	})
	if ens == nil {
		return false
	}
	kw := ens.Loc.Keyword
	end := closingEnd(tree, ens)
	if !end.Empty() && blankGap(tree.Source(kw.Between(end))) {
		gap := source.Span{File: kw.File, Start: kw.Start, End: end.Start}
		if tree.File != nil {
			from, ok1 := lineStart(tree.File.Content, kw.Start)
			to, ok2 := lineStart(tree.File.Content, end.Start)
			if ok1 && ok2 {
				// оба ключевых слова стоят первыми в строке: отступ end не трогаем
				gap.Start, gap.End = from, to
			}
		}
		corr.Replace(gap, "\n", fix.ByCop(c.Name()))
		return true
	}
	corr.Remove(kw, fix.Guard("ensure"), fix.ByCop(c.Name()))
	return true
}

// closingEnd returns the `end` keyword of the begin or def owning ens.
func closingEnd(tree *ast.Tree, ens *ast.Node) source.Span {
	parent := tree.Parent(ens)
	if parent.Is(ast.KwBegin, ast.Def) {
		return parent.Loc.End
	}
	return source.Span{}
}

// lineStart returns the start of the line holding off when only blanks
// precede off on that line.
func lineStart(content []byte, off uint32) (uint32, bool) {
	i := off
	for i > 0 {
		switch content[i-1] {
		case ' ', '\t':
			i--
		case '\n':
			return i, true
		default:
			return off, false
		}
	}
	return 0, true
}

func blankGap(text string) bool {
	return strings.Trim(text, " \t\r\n;") == ""
}
