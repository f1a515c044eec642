package diag

import (
	"testing"

	"copper/internal/source"
)

func TestFormatGolden(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.Add("./app/b.rb", []byte("Date.today\nx\n"), 0)
	b := fs.Add("app/a.rb", []byte("begin\nensure\nend\n"), 0)

	offs := []Offense{
		{Cop: "Rails/Date", Severity: SevConvention, Span: source.Span{File: a, Start: 5, End: 10}, Message: "first\nsecond"},
		{Cop: "Lint/EmptyEnsure", Severity: SevWarning, Span: source.Span{File: b, Start: 6, End: 12}, Message: "Empty `ensure` block detected.", Correctable: true},
		{Cop: "Rails/Date", Severity: SevConvention, Span: source.Span{File: 99}, Message: "unknown file is skipped"},
	}

	want := "W Lint/EmptyEnsure app/a.rb:2:1 Empty `ensure` block detected.\n" +
		"C Rails/Date app/b.rb:1:6 first second"
	if got := FormatGolden(offs, fs); got != want {
		t.Fatalf("unexpected golden output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}

	short := "app/a.rb:2:1: W: [Correctable] Lint/EmptyEnsure: Empty `ensure` block detected.\n" +
		"app/b.rb:1:6: C: Rails/Date: first second"
	if got := FormatShort(offs, fs); got != short {
		t.Fatalf("unexpected short output:\nwant:\n%s\n\ngot:\n%s", short, got)
	}
}
