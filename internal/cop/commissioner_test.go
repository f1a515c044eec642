package cop

import (
	"errors"
	"testing"

	"copper/internal/ast"
	"copper/internal/diag"
	"copper/internal/fix"
	"copper/internal/parser"
	"copper/internal/source"
)

func parseTree(t *testing.T, src string) *ast.Tree {
	t.Helper()
	fs := source.NewFileSet()
	res, err := parser.ParseFile(fs.Get(fs.AddVirtual("t.rb", []byte(src))), parser.Options{})
	if err != nil || res.Errors != 0 {
		t.Fatalf("parse %q: %v (%d errors)", src, err, res.Errors)
	}
	return res.Tree
}

// renameCop flags every call named from and renames it to to.
type renameCop struct {
	Base
	from, to string
}

func newRenameCop(name, from, to string, cfg Config) *renameCop {
	b, err := NewBase(name, cfg, diag.SevWarning)
	if err != nil {
		panic(err)
	}
	return &renameCop{Base: b, from: from, to: to}
}

func (c *renameCop) Inspect(tree *ast.Tree, r diag.Reporter) {
	for n := range tree.Nodes() {
		if n.IsCall() && n.Name == c.from {
			c.AddOffense(r, n.Loc.Selector, "use "+c.to).Correctable(true).Emit()
		}
	}
}

func (c *renameCop) Autocorrect(tree *ast.Tree, o diag.Offense, corr *fix.Corrector) bool {
	corr.Replace(o.Span, c.to, fix.ByCop(c.Name()))
	return true
}

// stmtCop flags whole statements and rewrites them, overlapping renameCop.
type stmtCop struct{ Base }

func (c stmtCop) Inspect(tree *ast.Tree, r diag.Reporter) {
	for _, n := range ast.Statements(tree.Root) {
		c.AddOffense(r, n.Span, "statement").Correctable(true).Emit()
	}
}

func (c stmtCop) Autocorrect(tree *ast.Tree, o diag.Offense, corr *fix.Corrector) bool {
	corr.Replace(o.Span, "nil")
	return true
}

type panicCop struct{ Base }

func (panicCop) Inspect(*ast.Tree, diag.Reporter) { panic("kaboom") }

// halfCop registers a replacement and then panics while autocorrecting.
type halfCop struct{ Base }

func (c halfCop) Inspect(tree *ast.Tree, r diag.Reporter) {
	c.AddOffense(r, tree.Root.Span, "half").Correctable(true).Emit()
}

func (halfCop) Autocorrect(_ *ast.Tree, o diag.Offense, corr *fix.Corrector) bool {
	corr.Remove(o.Span)
	panic("half done")
}

func base(name string) Base {
	b, err := NewBase(name, Config{}, diag.SevConvention)
	if err != nil {
		panic(err)
	}
	return b
}

func TestInvestigateMergesInDocumentOrder(t *testing.T) {
	tree := parseTree(t, "foo\nbar\nfoo")
	c := NewCommissioner([]Cop{
		newRenameCop("T/Bar", "bar", "baz", Config{}),
		newRenameCop("T/Foo", "foo", "qux", Config{}),
	})
	rep := c.Investigate(tree, Options{})
	if len(rep.Errors) != 0 {
		t.Fatal(rep.Errors)
	}
	var got []string
	for _, o := range rep.Offenses {
		got = append(got, o.Cop)
	}
	want := []string{"T/Foo", "T/Bar", "T/Foo"}
	if len(got) != len(want) {
		t.Fatalf("offenses = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("offenses = %v, want %v", got, want)
		}
	}
	if rep.Correction != nil || rep.Corrected() != nil {
		t.Fatal("no autocorrect requested")
	}
}

func TestPanickingCopIsIsolated(t *testing.T) {
	tree := parseTree(t, "foo")
	c := NewCommissioner([]Cop{panicCop{base("T/Panic")}, newRenameCop("T/Foo", "foo", "bar", Config{})})
	rep := c.Investigate(tree, Options{})
	if len(rep.Offenses) != 1 {
		t.Fatalf("offenses = %v", rep.Offenses)
	}
	if len(rep.Errors) != 1 || !errors.Is(rep.Errors[0], ErrCopPanicked) {
		t.Fatalf("errors = %v", rep.Errors)
	}
	var ce *CopError
	if !errors.As(rep.Errors[0], &ce) || ce.Cop != "T/Panic" {
		t.Fatalf("error = %v", rep.Errors[0])
	}
}

func TestAutocorrectMarksCorrected(t *testing.T) {
	tree := parseTree(t, "foo.bar(1)\nbar")
	c := NewCommissioner([]Cop{newRenameCop("T/Bar", "bar", "baz", Config{})})
	rep := c.Investigate(tree, Options{Autocorrect: true})
	if got := string(rep.Corrected()); got != "foo.baz(1)\nbaz" {
		t.Fatalf("corrected = %q", got)
	}
	for _, o := range rep.Offenses {
		if !o.Corrected {
			t.Fatalf("offense not marked corrected: %+v", o)
		}
	}
}

func TestAutocorrectConflictSkipsLater(t *testing.T) {
	tree := parseTree(t, "foo")
	c := NewCommissioner([]Cop{
		newRenameCop("T/Foo", "foo", "bar", Config{}),
		stmtCop{base("T/Stmt")},
	})
	rep := c.Investigate(tree, Options{Autocorrect: true})
	if len(rep.Offenses) != 2 {
		t.Fatalf("offenses = %v", rep.Offenses)
	}
	// обе замены покрывают [0,3): побеждает первая зарегистрированная
	if got := string(rep.Corrected()); got != "bar" {
		t.Fatalf("corrected = %q", got)
	}
	if len(rep.Correction.Skipped) != 1 {
		t.Fatalf("skipped = %+v", rep.Correction.Skipped)
	}
	corrected := 0
	for _, o := range rep.Offenses {
		if o.Corrected {
			corrected++
		}
	}
	if corrected != 1 {
		t.Fatalf("corrected offenses = %d, want 1", corrected)
	}
}

func TestAutocorrectRejectAll(t *testing.T) {
	tree := parseTree(t, "foo")
	c := NewCommissioner([]Cop{
		newRenameCop("T/Foo", "foo", "bar", Config{}),
		stmtCop{base("T/Stmt")},
	})
	rep := c.Investigate(tree, Options{Autocorrect: true, Policy: fix.PolicyRejectAll})
	if len(rep.Errors) != 1 || !errors.Is(rep.Errors[0], fix.ErrEditConflict) {
		t.Fatalf("errors = %v", rep.Errors)
	}
	if rep.Corrected() != nil {
		t.Fatal("nothing may be applied under reject-all")
	}
	if len(rep.Offenses) != 2 {
		t.Fatal("offenses are reported even when correction fails")
	}
}

func TestAutocorrectDisabledByConfig(t *testing.T) {
	tree := parseTree(t, "foo")
	c := NewCommissioner([]Cop{newRenameCop("T/Foo", "foo", "bar", Config{KeyAutoCorrect: false})})
	rep := c.Investigate(tree, Options{Autocorrect: true})
	if rep.Corrected() != nil || rep.Offenses[0].Corrected {
		t.Fatal("AutoCorrect: false must disable correction")
	}
}

func TestPanickingAutocorrectLeavesNoEdits(t *testing.T) {
	tree := parseTree(t, "foo")
	c := NewCommissioner([]Cop{halfCop{base("T/Half")}})
	rep := c.Investigate(tree, Options{Autocorrect: true})
	if len(rep.Errors) != 1 || !errors.Is(rep.Errors[0], ErrCopPanicked) {
		t.Fatalf("errors = %v", rep.Errors)
	}
	if rep.Corrected() != nil {
		t.Fatalf("partial edit applied: %q", rep.Corrected())
	}
}
