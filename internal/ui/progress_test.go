package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"copper/internal/driver"
)

func newTestModel(files ...string) *progressModel {
	return NewProgressModel("inspecting", files, nil).(*progressModel)
}

func TestApplyEventTracksFiles(t *testing.T) {
	m := newTestModel("a.rb", "b.rb")
	m.applyEvent(driver.Event{File: "a.rb", Stage: driver.StageParse, Status: driver.StatusStarted})
	if m.items[0].status != "parsing" || m.items[0].finished {
		t.Fatalf("a.rb = %+v", m.items[0])
	}
	m.applyEvent(driver.Event{File: "a.rb", Stage: driver.StageInspect, Status: driver.StatusDone, Offenses: 2})
	m.applyEvent(driver.Event{File: "b.rb", Stage: driver.StageParse, Status: driver.StatusFailed, Offenses: 1})
	if !m.items[0].finished || !m.items[1].finished || m.offenses != 3 {
		t.Fatalf("items = %+v, offenses = %d", m.items, m.offenses)
	}
	if m.items[1].status != "failed" {
		t.Fatalf("b.rb status = %q", m.items[1].status)
	}

	m.applyEvent(driver.Event{File: "a.rb", Stage: driver.StageCorrect, Status: driver.StatusStarted})
	if m.items[0].finished || m.items[0].status != "correcting" {
		t.Fatalf("correcting a.rb = %+v", m.items[0])
	}
	m.applyEvent(driver.Event{File: "a.rb", Stage: driver.StageWrite, Status: driver.StatusDone})
	if !m.items[0].finished || m.items[0].status != "written" {
		t.Fatalf("written a.rb = %+v", m.items[0])
	}
	// неизвестные файлы игнорируются
	if cmd := m.applyEvent(driver.Event{File: "zzz.rb", Stage: driver.StageLoad}); cmd != nil {
		t.Fatal("unknown file produced a command")
	}
}

func TestViewHeader(t *testing.T) {
	m := newTestModel("a.rb")
	m.applyEvent(driver.Event{File: "a.rb", Stage: driver.StageInspect, Status: driver.StatusDone, Offenses: 1})
	m.done = true
	view := m.View()
	if !strings.Contains(view, "done: inspecting 1/1, 1 offenses") || !strings.Contains(view, "a.rb") {
		t.Fatalf("view =\n%s", view)
	}
	if newTestModel().View() != "" {
		t.Fatal("empty model must render nothing")
	}
}

func TestVisibleItemsCapsRows(t *testing.T) {
	files := make([]string, 30)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.rb", i)
	}
	m := newTestModel(files...)
	m.applyEvent(driver.Event{File: "f03.rb", Stage: driver.StageParse, Status: driver.StatusStarted})
	m.applyEvent(driver.Event{File: "f07.rb", Stage: driver.StageInspect, Status: driver.StatusDone, Offenses: 4})
	rows := m.visibleItems()
	if len(rows) != 2 || rows[0].path != "f03.rb" || rows[1].path != "f07.rb" {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("app/models/user.rb", 10); got != "app/mod..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("app/models/user.rb", 12); runewidth.StringWidth(got) != 12 {
		t.Fatalf("truncate width = %d (%q), want 12", runewidth.StringWidth(got), got)
	}
	if got := truncate("short.rb", 20); got != "short.rb" {
		t.Fatalf("truncate = %q", got)
	}
}
