package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"copper/internal/diagfmt"
	"copper/internal/driver"
	"copper/internal/fix"
	"copper/internal/source"
	"copper/internal/trace"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func request(dir string, format diagfmt.Format) inspectRequest {
	return inspectRequest{paths: []string{dir}, format: format, ui: uiModeOff, quiet: true}
}

func TestInspectJSON(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"app/today.rb": "x = Date.today\n",
		"clean.rb":     "x = Date.current\n",
		"README.md":    "Date.today\n",
	})
	var out, errOut bytes.Buffer
	code, err := runInspection(context.Background(), &out, &errOut, request(dir, diagfmt.FormatJSON), trace.Nop)
	if err != nil {
		t.Fatalf("runInspection: %v (stderr %q)", err, errOut.String())
	}
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	var doc diagfmt.ReportJSON
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out.String())
	}
	if doc.Summary.InspectedFileCount != 2 || doc.Summary.OffenseCount != 1 {
		t.Fatalf("summary = %+v", doc.Summary)
	}
	var cops []string
	for _, f := range doc.Files {
		for _, o := range f.Offenses {
			cops = append(cops, o.CopName)
		}
	}
	if !slices.Equal(cops, []string{"Rails/Date"}) {
		t.Errorf("cops = %v", cops)
	}
}

func TestInspectOnlyUnknownCop(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.rb": "x\n"})
	req := request(dir, diagfmt.FormatShort)
	req.only = []string{"Style/Nope"}
	var out, errOut bytes.Buffer
	if _, err := runInspection(context.Background(), &out, &errOut, req, trace.Nop); err == nil {
		t.Fatal("expected unknown cop error")
	}
}

func TestFixWritesFile(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.rb": "begin\n  x\nensure\nend\n"})
	req := request(dir, diagfmt.FormatPretty)
	req.autocorrect, req.write = true, true

	var out, errOut bytes.Buffer
	code, err := runInspection(context.Background(), &out, &errOut, req, trace.Nop)
	if err != nil {
		t.Fatal(err)
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; output:\n%s%s", code, out.String(), errOut.String())
	}
	got, err := os.ReadFile(filepath.Join(dir, "a.rb"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "begin\n  x\n\nend\n" {
		t.Errorf("file = %q", got)
	}
	if !strings.Contains(out.String(), "[Corrected]") {
		t.Errorf("pretty output does not mark the correction:\n%s", out.String())
	}
}

func TestFixDryRunKeepsFile(t *testing.T) {
	const src = "begin\n  x\nensure\nend\n"
	dir := writeTree(t, map[string]string{"a.rb": src})
	req := request(dir, diagfmt.FormatPretty)
	req.autocorrect, req.write, req.dryRun = true, true, true

	var out, errOut bytes.Buffer
	if _, err := runInspection(context.Background(), &out, &errOut, req, trace.Nop); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "a.rb"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != src {
		t.Errorf("dry run modified the file: %q", got)
	}
	if !strings.Contains(out.String(), `Lint/EmptyEnsure: replace "ensure\n" with "\n"`) {
		t.Errorf("replacement list missing:\n%s", out.String())
	}
}

func TestInspectConfigDisablesCop(t *testing.T) {
	dir := writeTree(t, map[string]string{
		".copper.toml": "[\"Rails/Date\"]\nEnabled = false\n",
		"a.rb":         "Date.today\n",
	})
	var out, errOut bytes.Buffer
	code, err := runInspection(context.Background(), &out, &errOut, request(dir, diagfmt.FormatShort), trace.Nop)
	if err != nil {
		t.Fatal(err)
	}
	if code != 0 || out.Len() != 0 {
		t.Fatalf("code = %d, output %q", code, out.String())
	}
}

func TestWriteCops(t *testing.T) {
	var errOut bytes.Buffer
	sess, err := loadSession(&errOut, "", []string{t.TempDir()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, format := range []string{"table", "yaml", "toml"} {
		var out bytes.Buffer
		if err := writeCops(&out, format, sess); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		for _, name := range []string{"Lint/EmptyEnsure", "Rails/Date"} {
			if !strings.Contains(out.String(), name) {
				t.Errorf("%s output misses %s:\n%s", format, name, out.String())
			}
		}
	}
	if err := writeCops(&bytes.Buffer{}, "xml", sess); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{" ON ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"maybe", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestWantsProgress(t *testing.T) {
	tests := []struct {
		name string
		req  inspectRequest
		tty  bool
		want bool
	}{
		{"auto on terminal", inspectRequest{ui: uiModeAuto, format: diagfmt.FormatPretty}, true, true},
		{"auto piped", inspectRequest{ui: uiModeAuto, format: diagfmt.FormatPretty}, false, false},
		{"auto json", inspectRequest{ui: uiModeAuto, format: diagfmt.FormatJSON}, true, false},
		{"auto quiet", inspectRequest{ui: uiModeAuto, format: diagfmt.FormatShort, quiet: true}, true, false},
		{"forced on", inspectRequest{ui: uiModeOn, format: diagfmt.FormatMsgpack}, false, true},
		{"off", inspectRequest{ui: uiModeOff}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.wantsProgress(tt.tty, tt.tty); got != tt.want {
				t.Fatalf("wantsProgress = %v, want %v", got, tt.want)
			}
		})
	}
	req := inspectRequest{ui: uiModeAuto, format: diagfmt.FormatPretty}
	if req.wantsProgress(true, false) || req.wantsProgress(false, true) {
		t.Fatal("auto needs both streams on a terminal")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{"Rails/Date, Lint/EmptyEnsure", "", " ,X"})
	want := []string{"Rails/Date", "Lint/EmptyEnsure", "X"}
	if !slices.Equal(got, want) {
		t.Errorf("splitList = %v, want %v", got, want)
	}
}

func TestStartDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.rb")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if got := startDir(nil); got != "." {
		t.Errorf("startDir(nil) = %q", got)
	}
	if got := startDir([]string{dir}); got != dir {
		t.Errorf("startDir(dir) = %q", got)
	}
	if got := startDir([]string{file}); got != dir {
		t.Errorf("startDir(file) = %q", got)
	}
}

func TestRunProgressCountsFiles(t *testing.T) {
	p := &runProgress{}
	var seen int
	sink := chainSink(p.observe, func(driver.Event) { seen++ })
	for _, ev := range []driver.Event{
		{File: "a.rb", Stage: driver.StageLoad, Status: driver.StatusStarted},
		{File: "b.rb", Stage: driver.StageLoad, Status: driver.StatusStarted},
		{File: "c.rb", Stage: driver.StageLoad, Status: driver.StatusStarted},
		{File: "a.rb", Stage: driver.StageInspect, Status: driver.StatusDone},
		{File: "b.rb", Stage: driver.StageParse, Status: driver.StatusFailed},
	} {
		sink(ev)
	}
	if got := p.status(); got != "2/3 files" {
		t.Errorf("status = %q", got)
	}
	if seen != 5 {
		t.Errorf("second sink saw %d events", seen)
	}
	if chainSink(nil, nil) != nil {
		t.Error("chain of nils should be nil")
	}
}

func TestWriteReportWarnsSkippedEdits(t *testing.T) {
	fs := source.NewFileSetWithBase("/proj")
	f := fs.Get(fs.AddVirtual("/proj/a.rb", []byte("begin\n  x\nensure\nend\n")))
	kw := source.Span{File: f.ID, Start: 10, End: 16}
	run := &driver.Run{FileSet: fs, Results: []*driver.Result{{
		Path: f.Path,
		File: f,
		Passes: []driver.Pass{{
			File:    f,
			Applied: []fix.Applied{{Replacement: fix.ReplaceSpan(kw, "", fix.ByCop("Lint/EmptyEnsure"))}},
			Skipped: []fix.Skipped{{Index: 1, Replacement: fix.ReplaceSpan(kw, "\n", fix.ByCop("Style/Other")), Reason: "overlaps replacement 0"}},
		}},
	}}}
	var out, errOut bytes.Buffer
	req := inspectRequest{format: diagfmt.FormatShort, pathMode: diagfmt.PathModeBasename, quiet: true}
	if err := writeReport(&out, &errOut, run, req); err != nil {
		t.Fatal(err)
	}
	want := "warning: a.rb: Style/Other edit at 3:1 skipped: overlaps replacement 0\n"
	if errOut.String() != want {
		t.Fatalf("stderr = %q, want %q", errOut.String(), want)
	}
}
