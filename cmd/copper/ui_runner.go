package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"copper/internal/diagfmt"
	"copper/internal/driver"
	"copper/internal/ui"
)

// uiMode is the --ui setting of inspect and fix.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	mode := uiMode(strings.ToLower(strings.TrimSpace(value)))
	if mode == "" {
		return uiModeAuto, nil
	}
	if mode != uiModeAuto && mode != uiModeOn && mode != uiModeOff {
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return mode, nil
}

// wantsProgress reports whether inspect should draw the progress view.
// In auto mode the view is drawn on stderr only when both streams are
// terminals and the report is meant for people: quiet runs and machine
// formats stay plain.
func (req inspectRequest) wantsProgress(stdoutTTY, stderrTTY bool) bool {
	switch req.ui {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	if req.quiet || req.format == diagfmt.FormatJSON || req.format == diagfmt.FormatMsgpack {
		return false
	}
	return stdoutTTY && stderrTTY
}

type inspectOutcome struct {
	run *driver.Run
	err error
}

// runInspectWithUI runs the inspection in the background and renders its
// events with the progress model until the run is over.
func runInspectWithUI(ctx context.Context, title string, paths, files []string, opts driver.Options) (*driver.Run, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan inspectOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = chainSink(opts.Sink, func(ev driver.Event) { events <- ev })
		run, err := driver.InspectPaths(ctx, paths, optsCopy)
		outcomeCh <- inspectOutcome{run: run, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// модель больше не читает канал; дочитываем, чтобы воркеры не встали
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.run, uiErr
	}
	return outcome.run, outcome.err
}
