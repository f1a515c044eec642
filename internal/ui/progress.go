// Package ui renders a live progress view of a multi-file run.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"copper/internal/driver"
)

// maxRows caps the file list; longer runs show only the busiest rows.
const maxRows = 12

type progressModel struct {
	title    string
	events   <-chan driver.Event
	spinner  spinner.Model
	prog     progress.Model
	items    []fileItem
	index    map[string]int
	offenses int
	width    int
	done     bool
}

type fileItem struct {
	path     string
	status   string
	stage    driver.Stage
	finished bool
	offenses int
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model fed by driver events. The run
// is over when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued"})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	finished := 0
	for _, item := range m.items {
		if item.finished {
			finished++
		}
	}
	header := fmt.Sprintf("%s %d/%d, %d offenses", m.title, finished, len(m.items), m.offenses)
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.visibleItems() {
		status := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s\n", status, truncate(item.path, nameWidth)))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

// visibleItems: файлы в работе, затем файлы с оффенсами, не больше maxRows.
func (m *progressModel) visibleItems() []fileItem {
	if len(m.items) <= maxRows {
		return m.items
	}
	out := make([]fileItem, 0, maxRows)
	for _, pass := range []func(fileItem) bool{
		func(it fileItem) bool { return !it.finished && it.status != "queued" },
		func(it fileItem) bool { return it.finished && (it.offenses > 0 || it.status == "failed") },
	} {
		for _, it := range m.items {
			if len(out) == maxRows {
				return out
			}
			if pass(it) {
				out = append(out, it)
			}
		}
	}
	return out
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	item.stage = ev.Stage
	item.status = statusLabel(ev.Stage, ev.Status)
	if ev.Offenses > 0 || ev.Stage == driver.StageInspect {
		m.offenses += ev.Offenses - item.offenses
		item.offenses = ev.Offenses
	}
	switch {
	case ev.Status == driver.StatusFailed:
		item.finished = true
	case ev.Stage == driver.StageInspect && ev.Status == driver.StatusDone:
		// без автокоррекции файл на этом закончен
		item.finished = true
	case ev.Stage == driver.StageCorrect && ev.Status == driver.StatusStarted:
		item.finished = false
	case ev.Status == driver.StatusDone && (ev.Stage == driver.StageCorrect || ev.Stage == driver.StageWrite):
		item.finished = true
	}

	total := 0.0
	for _, it := range m.items {
		if it.finished {
			total++
		} else {
			total += progressFromStage(it.stage)
		}
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func progressFromStage(stage driver.Stage) float64 {
	switch stage {
	case driver.StageLoad:
		return 0.1
	case driver.StageParse:
		return 0.3
	case driver.StageInspect:
		return 0.6
	case driver.StageCorrect:
		return 0.8
	case driver.StageWrite:
		return 0.9
	default:
		return 0.0
	}
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusFailed:
		return "failed"
	case driver.StatusSkipped:
		return "skipped"
	case driver.StatusDone:
		switch stage {
		case driver.StageLoad:
			return "loaded"
		case driver.StageParse:
			return "parsed"
		case driver.StageCorrect:
			return "corrected"
		case driver.StageWrite:
			return "written"
		}
		return "done"
	}
	switch stage {
	case driver.StageLoad:
		return "loading"
	case driver.StageParse:
		return "parsing"
	case driver.StageInspect:
		return "inspecting"
	case driver.StageCorrect:
		return "correcting"
	case driver.StageWrite:
		return "writing"
	}
	return ""
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done", "corrected", "written":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "failed":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "loading", "loaded", "parsing", "parsed", "inspecting", "correcting", "writing":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
