package diag

import (
	"testing"

	"copper/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func TestBagKeepsDuplicates(t *testing.T) {
	b := NewBag()
	r := BagReporter{Bag: b}
	for range 3 {
		NewReport(r, "Rails/Date", SevConvention, span(5, 10), "same").Emit()
	}
	if b.Len() != 3 {
		t.Fatalf("expected 3 offenses, got %d", b.Len())
	}
}

func TestBagDocumentOrder(t *testing.T) {
	b := NewBag()
	b.Add(New("C/a", SevWarning, span(10, 12), "third"))
	b.Add(New("C/b", SevWarning, span(0, 4), "first"))
	b.Add(New("C/c", SevWarning, span(10, 11), "fourth"))
	b.Add(New("C/d", SevWarning, span(0, 2), "second"))

	items := b.Items()
	want := []string{"first", "second", "third", "fourth"}
	for i, msg := range want {
		if items[i].Message != msg {
			t.Fatalf("item %d = %q, want %q (all: %+v)", i, items[i].Message, msg, items)
		}
	}
}

func TestBagItemsIsACopy(t *testing.T) {
	b := NewBag()
	b.Add(New("C/a", SevWarning, span(0, 1), "x"))
	items := b.Items()
	items[0].Message = "mutated"
	if b.Items()[0].Message != "x" {
		t.Fatal("Items must not expose internal storage")
	}
}

func TestBagMergeAndErrors(t *testing.T) {
	a, other := NewBag(), NewBag()
	a.Add(New("C/a", SevConvention, span(0, 1), "a"))
	if a.HasErrors() {
		t.Fatal("convention is not an error")
	}
	other.Add(NewSyntax(span(2, 3), "unexpected token"))
	a.Merge(other)
	a.Merge(a)
	if a.Len() != 2 {
		t.Fatalf("Len = %d", a.Len())
	}
	if !a.HasErrors() || !a.HasSyntaxErrors() {
		t.Fatal("expected syntax error after merge")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	var got []Offense
	r := ReporterFunc(func(o Offense) { got = append(got, o) })
	b := NewReport(r, "Lint/EmptyEnsure", SevWarning, span(1, 2), "m").Correctable(true).Severity(SevError)
	b.Emit()
	b.Emit()
	if len(got) != 1 {
		t.Fatalf("emitted %d times", len(got))
	}
	if !got[0].Correctable || got[0].Severity != SevError || got[0].Cop != "Lint/EmptyEnsure" {
		t.Fatalf("unexpected offense %+v", got[0])
	}
	var nilBuilder *ReportBuilder
	nilBuilder.Correctable(true).Emit()
}

func TestParseSeverity(t *testing.T) {
	for _, name := range []string{"info", "refactor", "Convention", "WARNING", "error", "fatal"} {
		sev, err := ParseSeverity(name)
		if err != nil {
			t.Fatalf("ParseSeverity(%q): %v", name, err)
		}
		if sev.Letter() != string(name[0]&^0x20) {
			t.Errorf("%s.Letter() = %s", sev, sev.Letter())
		}
	}
	if _, err := ParseSeverity("loud"); err == nil {
		t.Fatal("expected error for unknown severity")
	}
	var s Severity
	if err := s.UnmarshalText([]byte("warning")); err != nil || s != SevWarning {
		t.Fatalf("UnmarshalText = %v, %v", s, err)
	}
}
