package driver

import (
	"context"
	"errors"
	"testing"

	"copper/internal/ast"
	"copper/internal/cop"
	"copper/internal/cop/all"
	"copper/internal/diag"
	"copper/internal/fix"
	"copper/internal/source"
)

func builtinCops(t *testing.T) []cop.Cop {
	t.Helper()
	reg := all.Registry()
	resolved, _ := reg.Resolve(nil)
	cops, errs := reg.Build(resolved)
	if len(errs) != 0 {
		t.Fatalf("build cops: %v", errs)
	}
	return cops
}

// rewriteCop flags receiverless calls and replaces the selector with
// whatever next returns for the old name.
type rewriteCop struct {
	cop.Base
	next func(string) string
}

func newRewriteCop(t *testing.T, next func(string) string) *rewriteCop {
	b, err := cop.NewBase("Test/Rewrite", cop.Config{}, diag.SevConvention)
	if err != nil {
		t.Fatal(err)
	}
	return &rewriteCop{Base: b, next: next}
}

func (c *rewriteCop) Inspect(tree *ast.Tree, r diag.Reporter) {
	for n := range tree.Nodes() {
		if n.Kind == ast.Send && n.Receiver == nil {
			c.AddOffense(r, n.Loc.Selector, "rewrite").Correctable(true).Emit()
		}
	}
}

func (c *rewriteCop) Autocorrect(tree *ast.Tree, o diag.Offense, corr *fix.Corrector) bool {
	corr.Replace(o.Span, c.next(tree.Source(o.Span)))
	return true
}

func TestInspectSourceBuiltinCops(t *testing.T) {
	src := "begin\n  Date.today\nensure\nend\n"
	res, err := InspectSource(context.Background(), source.NewFileSet(), "a.rb", []byte(src), Options{
		Cops:        builtinCops(t),
		Autocorrect: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("errors: %v", res.Errors)
	}
	if len(res.Offenses) != 2 {
		t.Fatalf("offenses = %+v", res.Offenses)
	}
	// Rails/Date (строка 2) идёт раньше Lint/EmptyEnsure (строка 3)
	if res.Offenses[0].Cop != "Rails/Date" || res.Offenses[0].Corrected {
		t.Errorf("first offense = %+v", res.Offenses[0])
	}
	if res.Offenses[1].Cop != "Lint/EmptyEnsure" || !res.Offenses[1].Corrected {
		t.Errorf("second offense = %+v", res.Offenses[1])
	}
	if want := "begin\n  Date.today\n\nend\n"; string(res.Corrected) != want {
		t.Errorf("corrected = %q, want %q", res.Corrected, want)
	}
	if res.Written {
		t.Error("virtual file must not be written")
	}
	if len(res.Passes) != 1 || len(res.Passes[0].Applied) != 1 {
		t.Errorf("passes = %+v", res.Passes)
	}
}

func TestInspectSourceSyntaxErrorSkipsCops(t *testing.T) {
	res, err := InspectSource(context.Background(), source.NewFileSet(), "bad.rb", []byte("begin\nensure\n"), Options{
		Cops: builtinCops(t),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.SyntaxError() || len(res.Offenses) != 1 || res.Offenses[0].Cop != diag.SyntaxCop {
		t.Fatalf("offenses = %+v", res.Offenses)
	}
	if ExitCode([]*Result{res}) != 1 {
		t.Fatal("syntax error must fail the run")
	}
}

func TestInspectSourceWithoutAutocorrect(t *testing.T) {
	res, err := InspectSource(context.Background(), source.NewFileSet(), "a.rb", []byte("begin\nensure\nend\n"), Options{
		Cops: builtinCops(t),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Corrected != nil || res.CorrectedCount() != 0 || len(res.Offenses) != 1 {
		t.Fatalf("result = %+v", res)
	}
}

func TestAutocorrectLoop(t *testing.T) {
	tests := []struct {
		name    string
		next    func(string) string
		src     string
		want    string
		wantErr error
	}{
		{
			name: "settles",
			next: func(s string) string {
				if len(s) < 3 {
					return s + "x"
				}
				return s
			},
			src:  "a\n",
			want: "axx\n",
		},
		{
			name:    "cycle",
			next:    func(s string) string { return map[string]string{"a": "b", "b": "a"}[s] },
			src:     "a\n",
			wantErr: ErrInfiniteLoop,
		},
		{
			name:    "grows forever",
			next:    func(s string) string { return s + "_" },
			src:     "a\n",
			wantErr: ErrInfiniteLoop,
		},
		{
			name:    "breaks syntax",
			next:    func(s string) string { return s + "(" },
			src:     "a\n",
			wantErr: ErrCorrectionBroke,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := InspectSource(context.Background(), source.NewFileSet(), "loop.rb", []byte(tt.src), Options{
				Cops:        []cop.Cop{newRewriteCop(t, tt.next)},
				Autocorrect: true,
			})
			if err != nil {
				t.Fatal(err)
			}
			if tt.wantErr != nil {
				if len(res.Errors) != 1 || !errors.Is(res.Errors[0], tt.wantErr) {
					t.Fatalf("errors = %v, want %v", res.Errors, tt.wantErr)
				}
				if res.Corrected != nil || res.CorrectedCount() != 0 {
					t.Fatalf("failed correction must be discarded: %+v", res)
				}
				if ExitCode([]*Result{res}) != 2 {
					t.Fatal("exit code should be 2")
				}
				return
			}
			if len(res.Errors) != 0 {
				t.Fatalf("errors: %v", res.Errors)
			}
			if string(res.Corrected) != tt.want {
				t.Fatalf("corrected = %q, want %q", res.Corrected, tt.want)
			}
		})
	}
}

func TestInspectSourceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := InspectSource(ctx, source.NewFileSet(), "a.rb", []byte("a\n"), Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestExitCode(t *testing.T) {
	clean := &Result{}
	open := &Result{Offenses: []diag.Offense{{Cop: "X"}}}
	fixed := &Result{Offenses: []diag.Offense{{Cop: "X", Corrected: true}}}
	failed := &Result{Errors: []error{errors.New("boom")}}

	tests := []struct {
		name    string
		results []*Result
		want    int
	}{
		{"empty", nil, 0},
		{"clean", []*Result{clean}, 0},
		{"corrected", []*Result{fixed, clean}, 0},
		{"offense", []*Result{clean, open}, 1},
		{"error wins", []*Result{open, failed}, 2},
		{"nil entries", []*Result{nil, clean}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.results); got != tt.want {
				t.Fatalf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}
