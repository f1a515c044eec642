package coptest

import (
	"testing"

	"copper/internal/ast"
	"copper/internal/cop"
	"copper/internal/diag"
	"copper/internal/parser"
	"copper/internal/source"
)

// MaxIterations bounds the correction loop of ExpectCorrection.
const MaxIterations = 20

// New builds a cop from its registration with overrides merged over the
// defaults.
func New(t testing.TB, reg cop.Registration, overrides cop.Config) cop.Cop {
	t.Helper()
	c, err := reg.New(reg.Defaults.Merge(overrides))
	if err != nil {
		t.Fatalf("build %s: %v", reg.Name, err)
	}
	return c
}

// Inspect parses src and runs c over it. Syntax errors fail the test.
func Inspect(t testing.TB, c cop.Cop, src string) (*ast.Tree, []diag.Offense) {
	t.Helper()
	tree := parse(t, src)
	rep := cop.NewCommissioner([]cop.Cop{c}).Investigate(tree, cop.Options{})
	for _, err := range rep.Errors {
		t.Fatalf("%s: %v", c.Name(), err)
	}
	return tree, rep.Offenses
}

// Messages returns the messages c reports for src in document order.
func Messages(t testing.TB, c cop.Cop, src string) []string {
	t.Helper()
	_, offs := Inspect(t, c, src)
	out := make([]string, 0, len(offs))
	for _, o := range offs {
		out = append(out, o.Message)
	}
	return out
}

// ExpectOffense checks that c reports exactly the offenses marked in
// annotated.
func ExpectOffense(t testing.TB, c cop.Cop, annotated string) {
	t.Helper()
	src, want, err := Parse(annotated)
	if err != nil {
		t.Fatalf("annotation: %v", err)
	}
	tree, offs := Inspect(t, c, src)
	expected := Render(src, want)
	actual := Render(src, Annotations(tree.File, offs))
	if expected != actual {
		t.Errorf("%s offenses mismatch\nwant:\n%s\ngot:\n%s", c.Name(), expected, actual)
	}
}

// ExpectNoOffenses checks that c stays silent on src.
func ExpectNoOffenses(t testing.TB, c cop.Cop, src string) {
	t.Helper()
	tree, offs := Inspect(t, c, src)
	if len(offs) != 0 {
		t.Errorf("%s: expected no offenses, got:\n%s", c.Name(), Render(src, Annotations(tree.File, offs)))
	}
}

// ExpectCorrection checks the offenses marked in annotated, then corrects
// the source until it stops changing and compares the result with want.
func ExpectCorrection(t testing.TB, c cop.Cop, annotated, want string) {
	t.Helper()
	ExpectOffense(t, c, annotated)
	src, _, err := Parse(annotated)
	if err != nil {
		t.Fatalf("annotation: %v", err)
	}
	if got := Correct(t, c, src); got != want {
		t.Errorf("%s correction mismatch\nwant:\n%s\ngot:\n%s", c.Name(), want, got)
	}
}

// Correct autocorrects src with c until a fixpoint.
func Correct(t testing.TB, c cop.Cop, src string) string {
	t.Helper()
	comm := cop.NewCommissioner([]cop.Cop{c})
	for range MaxIterations {
		rep := comm.Investigate(parse(t, src), cop.Options{Autocorrect: true})
		for _, err := range rep.Errors {
			t.Fatalf("%s: %v", c.Name(), err)
		}
		next := rep.Corrected()
		if next == nil || string(next) == src {
			return src
		}
		src = string(next)
	}
	t.Fatalf("%s: correction did not settle after %d iterations", c.Name(), MaxIterations)
	return src
}

// Annotations converts offenses into markers. Offenses spanning lines are
// cut at the end of their first line.
func Annotations(file *source.File, offs []diag.Offense) []Annotation {
	out := make([]Annotation, 0, len(offs))
	for _, o := range offs {
		start, end := file.Resolve(o.Span)
		a := Annotation{
			Line:    int(start.Line),
			Col:     int(start.Col) - 1,
			Message: o.Message,
		}
		if end.Line == start.Line {
			a.Len = int(end.Col - start.Col)
		} else {
			a.Len = len(file.GetLine(start.Line)) - a.Col
		}
		out = append(out, a)
	}
	return out
}

func parse(t testing.TB, src string) *ast.Tree {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("example.rb", []byte(src)))
	bag := diag.NewBag()
	res, err := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Errors > 0 {
		t.Fatalf("syntax errors in %q:\n%s", src, diag.FormatShort(bag.Items(), fs))
	}
	return res.Tree
}
