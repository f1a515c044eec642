package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"copper/internal/diag"
	"copper/internal/source"
)

type palette struct {
	sev       map[diag.Severity]*color.Color
	corrected *color.Color
	path      *color.Color
	cop       *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevInfo:       color.New(color.FgBlue),
			diag.SevRefactor:   color.New(color.FgYellow),
			diag.SevConvention: color.New(color.FgYellow),
			diag.SevWarning:    color.New(color.FgMagenta),
			diag.SevError:      color.New(color.FgRed),
			diag.SevFatal:      color.New(color.FgRed, color.Bold),
		},
		corrected: color.New(color.FgGreen),
		path:      color.New(color.FgCyan),
		cop:       color.New(color.Faint),
	}
	all := []*color.Color{p.corrected, p.path, p.cop}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty печатает оффенсы в человекочитаемом виде:
//
//	<path>:<line>:<col>: <S>: [Correctable] <Cop>: <message>
//	<source line>
//	<^^^ under the span>
//
// Колонки считаются в байтах, подчёркивание выравнивается по ширине символов.
func Pretty(w io.Writer, offs []diag.Offense, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	shown := len(offs)
	if opts.Max > 0 && opts.Max < shown {
		shown = opts.Max
	}
	for _, o := range offs[:shown] {
		if err := prettyOne(w, o, fs, opts, p); err != nil {
			return err
		}
	}
	if rest := len(offs) - shown; rest > 0 {
		if _, err := fmt.Fprintf(w, "... and %d more offenses not shown\n", rest); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, o diag.Offense, fs *source.FileSet, opts PrettyOpts, p palette) error {
	sev := p.sev[o.Severity]
	if sev == nil {
		sev = p.cop
	}
	f := fs.Get(o.Span.File)
	if f == nil {
		_, err := fmt.Fprintf(w, "%s: %s: %s\n", sev.Sprint(o.Severity.Letter()), o.Cop, o.Message)
		return err
	}
	start, end := f.Resolve(o.Span)
	var tag string
	switch {
	case o.Corrected:
		tag = p.corrected.Sprint("[Corrected]") + " "
	case o.Correctable:
		tag = p.corrected.Sprint("[Correctable]") + " "
	}
	_, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s%s: %s\n",
		p.path.Sprint(formatPath(f, "", fs, opts.PathMode)), start.Line, start.Col,
		sev.Sprint(o.Severity.Letter()), tag, p.cop.Sprint(o.Cop), o.Message)
	if err != nil {
		return err
	}

	line := f.GetLine(start.Line)
	if strings.TrimSpace(line) == "" {
		return nil
	}
	from := int(start.Col) - 1
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(line))
	}
	from = min(from, len(line))
	pad, mark := underline(line, from, to)
	_, err = fmt.Fprintf(w, "%s\n%s%s\n", detab(line), strings.Repeat(" ", pad), sev.Sprint(mark))
	return err
}

// underline returns the display offset of line[:from] and the caret run
// for line[from:to]; a zero-width span gets one caret.
func underline(line string, from, to int) (int, string) {
	pad := runewidth.StringWidth(detab(line[:from]))
	width := runewidth.StringWidth(detab(line[from:to]))
	return pad, strings.Repeat("^", max(width, 1))
}

// detab renders tabs as single spaces so the underline stays aligned.
func detab(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}
