package coptest

import (
	"slices"
	"testing"
)

func TestParse(t *testing.T) {
	src, anns, err := Parse("Date.today\n     ^^^^^ msg one\nfoo\n^{} empty\n  ^\n")
	if err != nil {
		t.Fatal(err)
	}
	if src != "Date.today\nfoo\n" {
		t.Fatalf("src = %q", src)
	}
	want := []Annotation{
		{Line: 1, Col: 5, Len: 5, Message: "msg one"},
		{Line: 2, Col: 0, Len: 0, Message: "empty"},
		{Line: 2, Col: 2, Len: 1},
	}
	if !slices.Equal(anns, want) {
		t.Fatalf("annotations = %+v, want %+v", anns, want)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"^^^ before source\n",
		"x\n^^^x\n",
	} {
		if _, _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q): expected error", in)
		}
	}
}

func TestRenderRoundTrip(t *testing.T) {
	in := "a = 1\nb.c\n  ^ one\n  ^ two\n"
	src, anns, err := Parse(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := Render(src, anns); got != in {
		t.Fatalf("Render = %q, want %q", got, in)
	}
	// порядок аннотаций не важен
	slices.Reverse(anns)
	if got := Render(src, anns); got != in {
		t.Fatalf("Render reversed = %q", got)
	}
}

func TestRenderAddsMissingNewline(t *testing.T) {
	got := Render("x", []Annotation{{Line: 1, Len: 1, Message: "m"}})
	if got != "x\n^ m\n" {
		t.Fatalf("Render = %q", got)
	}
}
