package lint

import (
	"testing"

	"copper/internal/cop"
	"copper/internal/coptest"
	"copper/internal/diag"
)

func newEmptyEnsure(t *testing.T) cop.Cop {
	return coptest.New(t, EmptyEnsureRegistration, nil)
}

func TestEmptyEnsureOffense(t *testing.T) {
	coptest.ExpectOffense(t, newEmptyEnsure(t), `begin
  something
ensure
^^^^^^ Empty `+"`ensure`"+` block detected.
end
`)
}

func TestEmptyEnsureAcceptsNonEmpty(t *testing.T) {
	coptest.ExpectNoOffenses(t, newEmptyEnsure(t), `begin
  something
  return
ensure
  file.close
end
`)
}

func TestEmptyEnsureInDef(t *testing.T) {
	coptest.ExpectOffense(t, newEmptyEnsure(t), `def foo
  bar
  ensure
  ^^^^^^ Empty `+"`ensure`"+` block detected.
end
`)
}

func TestEmptyEnsureCorrection(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "begin",
			src:  "begin\n  something\nensure\nend\n",
			want: "begin\n  something\n\nend\n",
		},
		{
			name: "def",
			src:  "def foo\n  bar\nensure\nend\n",
			want: "def foo\n  bar\n\nend\n",
		},
		{
			name: "semicolons",
			src:  "begin; x; ensure; end\n",
			want: "begin; x; \nend\n",
		},
		{
			name: "nested begin",
			src:  "def f\n  begin\n    x\n  ensure\n  end\nend\n",
			want: "def f\n  begin\n    x\n\n  end\nend\n",
		},
		{
			name: "begin in begin",
			src:  "begin\n  begin\n    x\n  ensure\n  end\nensure\n  y\nend\n",
			want: "begin\n  begin\n    x\n\n  end\nensure\n  y\nend\n",
		},
		{
			name: "rescue and ensure",
			src:  "begin\n  x\nrescue\n  y\nensure\nend\n",
			want: "begin\n  x\nrescue\n  y\n\nend\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coptest.Correct(t, newEmptyEnsure(t), tt.src); got != tt.want {
				t.Fatalf("corrected = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmptyEnsureCorrectionIsIdempotent(t *testing.T) {
	c := newEmptyEnsure(t)
	for _, src := range []string{
		"begin\n  a\nensure\nend\n",
		"def f\n  begin\n    a\n  ensure\n  end\nend\n",
	} {
		once := coptest.Correct(t, c, src)
		if twice := coptest.Correct(t, c, once); twice != once {
			t.Fatalf("second pass changed %q into %q", once, twice)
		}
		coptest.ExpectNoOffenses(t, c, once)
	}
}

func TestEmptyEnsureDefaults(t *testing.T) {
	c, err := NewEmptyEnsure(EmptyEnsureRegistration.Defaults)
	if err != nil {
		t.Fatal(err)
	}
	if c.Severity() != diag.SevWarning || !c.AutocorrectEnabled() {
		t.Fatalf("severity %v autocorrect %v", c.Severity(), c.AutocorrectEnabled())
	}
	_, offs := coptest.Inspect(t, c, "begin\nensure\nend\n")
	if len(offs) != 1 || !offs[0].Correctable || offs[0].Cop != EmptyEnsureName {
		t.Fatalf("offenses = %+v", offs)
	}
}

func TestEmptyEnsureAutocorrectDisabled(t *testing.T) {
	c := coptest.New(t, EmptyEnsureRegistration, cop.Config{cop.KeyAutoCorrect: false})
	src := "begin\n  x\nensure\nend\n"
	if got := coptest.Correct(t, c, src); got != src {
		t.Fatalf("disabled autocorrect changed source to %q", got)
	}
}
