package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevelFilter(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeUnit, false},
		{LevelDetail, ScopeUnit, true},
		{LevelDetail, ScopeCop, false},
		{LevelDebug, ScopeCop, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil || l.String() != s {
			t.Fatalf("ParseLevel(%q) = %v, %v", s, l, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error")
	}
}

func TestStreamText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	span := Begin(tr, ScopeUnit, "unit:a.rb", 0)
	Point(tr, ScopeUnit, "edit_skipped", "overlap", span.ID())
	Begin(tr, ScopeCop, "cop:Rails/Date", span.ID()).End("") // отфильтровано уровнем
	span.WithExtra("offenses", "2").End("ok")

	out := buf.String()
	for _, want := range []string{"→ unit:a.rb", "• edit_skipped (overlap)", "← unit:a.rb (ok) {offenses=2}"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Rails/Date") {
		t.Errorf("cop scope leaked at detail level:\n%s", out)
	}
}

func TestErrorPassesErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatNDJSON)
	Begin(tr, ScopeDriver, "inspect", 0).End("")
	Error(tr, ScopeCop, "cop_failed", errors.New("boom"), 0)
	Error(tr, ScopeCop, "ignored", nil, 0)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want one event, got %q", buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev["kind"] != "error" || ev["detail"] != "boom" || ev["scope"] != "cop" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestRingWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d"} {
		Point(r, ScopeDriver, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Name != "b" || snap[2].Name != "d" {
		t.Fatalf("snapshot = %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestTeeAndRingLookup(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase)
	m := Tee(NewStreamTracer(&buf, LevelError, FormatText), ring, nil)
	if m.Level() != LevelPhase {
		t.Fatalf("tee level = %s, want phase", m.Level())
	}
	Point(m, ScopePass, "inspect", "", 0)
	if got, ok := Ring(m); !ok || got != ring {
		t.Fatal("Ring() should find the ring inside a tee")
	}
	if len(ring.Snapshot()) != 1 || buf.Len() != 0 {
		t.Fatal("each tracer filters by its own level")
	}
	if _, ok := Ring(Nop); ok {
		t.Fatal("nop has no ring")
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off tracer: %v %v", tr, err)
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("default tracer must be Nop")
	}
	r := NewRingTracer(1, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatal("tracer not propagated")
	}
}

func TestUnitSpanCarriesPath(t *testing.T) {
	r := NewRingTracer(8, LevelDetail)
	BeginUnit(r, "app/models/user.rb", 7).End("2 offenses")
	snap := r.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot = %+v", snap)
	}
	for _, ev := range snap {
		if ev.Unit != "app/models/user.rb" || ev.ParentID != 7 || ev.Scope != ScopeUnit {
			t.Errorf("event = %+v", ev)
		}
	}
	if !strings.Contains(string(FormatEvent(&snap[1], FormatText)), "unit @app/models/user.rb (2 offenses)") {
		t.Errorf("text = %q", FormatEvent(&snap[1], FormatText))
	}
}

func TestDisabledSpanIsInert(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "inspect", 0)
	if s.ID() != 0 || s.WithExtra("k", "v").End("") != 0 {
		t.Fatal("disabled span recorded something")
	}
	var nilSpan *Span
	if nilSpan.ID() != 0 || nilSpan.End("") != 0 {
		t.Fatal("nil span")
	}
}

func TestHeartbeatStatus(t *testing.T) {
	r := NewRingTracer(64, LevelError)
	h := StartHeartbeat(r, time.Millisecond, func() string { return "3/9 files" })
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	snap := r.Snapshot()
	if len(snap) == 0 || snap[0].Kind != KindHeartbeat || snap[0].Detail != "3/9 files" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if StartHeartbeat(Nop, time.Millisecond, nil) != nil {
		t.Fatal("heartbeat on a disabled tracer")
	}
}

func TestSpanContextKeepsTracer(t *testing.T) {
	r := NewRingTracer(1, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 42})
	if FromContext(ctx) != Tracer(r) || CurrentSpan(ctx).SpanID != 42 {
		t.Fatal("span context lost the tracer")
	}
	if CurrentSpan(context.Background()).SpanID != 0 {
		t.Fatal("empty context has a span")
	}
}

func TestNewModes(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		mode     StorageMode
		wantRing bool
		wantErr  bool
	}{
		{ModeStream, false, false},
		{ModeRing, true, false},
		{ModeBoth, true, false},
		{StorageMode(0), false, true},
	}
	for _, tt := range tests {
		tr, err := New(Config{Level: LevelPhase, Mode: tt.mode, Output: &buf})
		if (err != nil) != tt.wantErr {
			t.Fatalf("New(%s): err = %v", tt.mode, err)
		}
		if err != nil {
			continue
		}
		if _, ok := Ring(tr); ok != tt.wantRing {
			t.Errorf("New(%s): ring = %v, want %v", tt.mode, ok, tt.wantRing)
		}
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		cfg  Config
		want Format
	}{
		{Config{OutputPath: "run.ndjson"}, FormatNDJSON},
		{Config{OutputPath: "run.jsonl"}, FormatNDJSON},
		{Config{OutputPath: "-"}, FormatText},
		{Config{OutputPath: "run.log", Format: FormatNDJSON}, FormatNDJSON},
	}
	for _, tt := range tests {
		if got := formatFor(tt.cfg); got != tt.want {
			t.Errorf("formatFor(%+v) = %v, want %v", tt.cfg, got, tt.want)
		}
	}
}
