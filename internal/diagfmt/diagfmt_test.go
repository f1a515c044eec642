package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"copper/internal/diag"
	"copper/internal/fix"
	"copper/internal/source"
)

func sample(t *testing.T) (*source.FileSet, *source.File, []diag.Offense) {
	t.Helper()
	fs := source.NewFileSetWithBase("/proj")
	f := fs.Get(fs.AddVirtual("/proj/app/a.rb", []byte("x = Date.today\nbegin\nensure\nend\n")))
	offs := []diag.Offense{
		diag.New("Rails/Date", diag.SevConvention, source.Span{File: f.ID, Start: 9, End: 14}, "Do not use `Date.today` without zone."),
		{
			Cop: "Lint/EmptyEnsure", Severity: diag.SevWarning,
			Span:    source.Span{File: f.ID, Start: 21, End: 27},
			Message: "Empty `ensure` block detected.", Correctable: true, Corrected: true,
		},
	}
	return fs, f, offs
}

func TestPretty(t *testing.T) {
	fs, _, offs := sample(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, offs, fs, PrettyOpts{PathMode: PathModeRelative}); err != nil {
		t.Fatal(err)
	}
	want := "app/a.rb:1:10: C: Rails/Date: Do not use `Date.today` without zone.\n" +
		"x = Date.today\n" +
		"         ^^^^^\n" +
		"app/a.rb:3:1: W: [Corrected] Lint/EmptyEnsure: Empty `ensure` block detected.\n" +
		"ensure\n" +
		"^^^^^^\n"
	if buf.String() != want {
		t.Fatalf("Pretty =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestPrettyMax(t *testing.T) {
	fs, _, offs := sample(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, offs, fs, PrettyOpts{Max: 1}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "... and 1 more offenses not shown\n") || strings.Contains(buf.String(), "EmptyEnsure") {
		t.Fatalf("Pretty with Max =\n%s", buf.String())
	}
}

func TestUnderlineUsesDisplayWidth(t *testing.T) {
	line := "s = \"日本\".to_time"
	from := strings.Index(line, "to_time")
	pad, mark := underline(line, from, from+len("to_time"))
	// два широких символа занимают по две колонки
	if pad != 11 || mark != "^^^^^^^" {
		t.Fatalf("underline = %d %q", pad, mark)
	}
	if _, mark := underline("abc", 1, 1); mark != "^" {
		t.Fatalf("empty span mark = %q", mark)
	}
	if pad, _ := underline("\tx", 1, 2); pad != 1 {
		t.Fatalf("tab pad = %d", pad)
	}
}

func TestShort(t *testing.T) {
	fs, _, offs := sample(t)
	var buf bytes.Buffer
	if err := Short(&buf, offs, fs, PathModeBasename); err != nil {
		t.Fatal(err)
	}
	want := "a.rb:1:10: C: Rails/Date: Do not use `Date.today` without zone.\n" +
		"a.rb:3:1: W: [Corrected] Lint/EmptyEnsure: Empty `ensure` block detected.\n"
	if buf.String() != want {
		t.Fatalf("Short =\n%s", buf.String())
	}
}

func TestJSON(t *testing.T) {
	fs, f, offs := sample(t)
	files := []FileOffenses{
		{Path: f.Path, File: f, Offenses: offs},
		{Path: "/proj/missing.rb"},
	}
	var buf bytes.Buffer
	if err := JSON(&buf, files, fs, JSONOpts{PathMode: PathModeRelative, Version: "1.0.0"}); err != nil {
		t.Fatal(err)
	}
	var doc ReportJSON
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if doc.Metadata.Tool != "copper" || doc.Metadata.Version != "1.0.0" {
		t.Errorf("metadata = %+v", doc.Metadata)
	}
	if doc.Summary != (SummaryJSON{OffenseCount: 2, CorrectedCount: 1, TargetFileCount: 2, InspectedFileCount: 1}) {
		t.Errorf("summary = %+v", doc.Summary)
	}
	if len(doc.Files) != 2 || doc.Files[0].Path != "app/a.rb" || doc.Files[1].Path != "/proj/missing.rb" {
		t.Fatalf("files = %+v", doc.Files)
	}
	got := doc.Files[0].Offenses[0]
	want := OffenseJSON{
		Severity: "convention",
		Message:  "Do not use `Date.today` without zone.",
		CopName:  "Rails/Date",
		Location: LocationJSON{StartLine: 1, StartColumn: 10, LastLine: 1, LastColumn: 14, Length: 5, StartByte: 9, EndByte: 14},
	}
	if got != want {
		t.Errorf("offense = %+v, want %+v", got, want)
	}
	if doc.Files[1].Offenses == nil {
		t.Error("offenses must encode as [] for clean files")
	}
}

func TestJSONMax(t *testing.T) {
	fs, f, offs := sample(t)
	doc := BuildReport([]FileOffenses{{Path: f.Path, File: f, Offenses: offs}}, fs, JSONOpts{Max: 1})
	if len(doc.Files[0].Offenses) != 1 || doc.Summary.OffenseCount != 2 {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestMsgpackMatchesJSONDocument(t *testing.T) {
	fs, f, offs := sample(t)
	files := []FileOffenses{{Path: f.Path, File: f, Offenses: offs}}
	var buf bytes.Buffer
	if err := Msgpack(&buf, files, fs, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var doc ReportJSON
	if err := msgpack.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	want := BuildReport(files, fs, JSONOpts{})
	if doc.Summary != want.Summary || len(doc.Files) != 1 || len(doc.Files[0].Offenses) != 2 {
		t.Fatalf("msgpack doc = %+v", doc)
	}
	if doc.Files[0].Offenses[1] != want.Files[0].Offenses[1] {
		t.Fatalf("offense = %+v, want %+v", doc.Files[0].Offenses[1], want.Files[0].Offenses[1])
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		in   Totals
		want string
	}{
		{Totals{Files: 1}, "1 file inspected, no offenses detected"},
		{Totals{Files: 3, Offenses: 1}, "3 files inspected, 1 offense detected"},
		{Totals{Files: 2, Offenses: 4, Corrected: 1}, "2 files inspected, 4 offenses detected, 1 offense corrected"},
		{Totals{Files: 1200, Offenses: 2, Correctable: 2}, "1,200 files inspected, 2 offenses detected, 2 offenses autocorrectable"},
	}
	for _, tt := range tests {
		if got := Summary(tt.in); got != tt.want {
			t.Errorf("Summary(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCorrections(t *testing.T) {
	fs, f, _ := sample(t)
	applied := []fix.Applied{
		{Replacement: fix.ReplaceSpan(source.Span{File: f.ID, Start: 21, End: 28}, "\n", fix.ByCop("Lint/EmptyEnsure"))},
		{Replacement: fix.InsertText(source.Span{File: f.ID, Start: 0, End: 0}, "# x\n")},
		{Replacement: fix.DeleteSpan(source.Span{File: f.ID, Start: 0, End: 4})},
	}
	var buf bytes.Buffer
	if err := Corrections(&buf, f, applied, fs, PathModeBasename); err != nil {
		t.Fatal(err)
	}
	want := "a.rb:3:1: Lint/EmptyEnsure: replace \"ensure\\n\" with \"\\n\"\n" +
		"a.rb:1:1: ?: insert \"# x\\n\"\n" +
		"a.rb:1:1: ?: remove \"x = \"\n"
	if buf.String() != want {
		t.Fatalf("Corrections =\n%s", buf.String())
	}
}

func TestSkippedEdits(t *testing.T) {
	fs, f, _ := sample(t)
	skipped := []fix.Skipped{
		{Index: 1, Replacement: fix.DeleteSpan(source.Span{File: f.ID, Start: 21, End: 27}, fix.ByCop("Lint/EmptyEnsure")), Reason: "overlaps replacement 0"},
		{Index: 2, Replacement: fix.InsertText(source.Span{File: f.ID, Start: 0, End: 0}, "x"), Reason: "span out of range"},
	}
	var buf bytes.Buffer
	if err := SkippedEdits(&buf, f, skipped, fs, PathModeBasename); err != nil {
		t.Fatal(err)
	}
	want := "warning: a.rb: Lint/EmptyEnsure edit at 3:1 skipped: overlaps replacement 0\n" +
		"warning: a.rb: ? edit at 1:1 skipped: span out of range\n"
	if buf.String() != want {
		t.Fatalf("SkippedEdits =\n%s", buf.String())
	}
}
