package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"copper/internal/source"
)

type goldenOffense struct {
	Severity string
	Cop      string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
	Mark     string
}

// FormatGolden renders offenses into a stable, single-line-per-entry form
// suitable for golden files:
//
//	C Rails/Date app/a.rb:1:6 Do not use `Date.today` without zone. ...
//
// Entries are sorted by path, position, cop and message.
func FormatGolden(offs []Offense, fs *source.FileSet) string {
	return formatOffenses(offs, fs, func(d goldenOffense) string {
		return fmt.Sprintf("%s %s %s:%d:%d %s", d.Severity, d.Cop, d.Path, d.Line, d.Column, d.Message)
	})
}

// FormatShort renders offenses one per line in the CLI short layout:
//
//	app/a.rb:1:6: C: [Correctable] Rails/Date: Do not use ...
func FormatShort(offs []Offense, fs *source.FileSet) string {
	return formatOffenses(offs, fs, func(d goldenOffense) string {
		return fmt.Sprintf("%s:%d:%d: %s: %s%s: %s", d.Path, d.Line, d.Column, d.Severity, d.Mark, d.Cop, d.Message)
	})
}

func formatOffenses(offs []Offense, fs *source.FileSet, line func(goldenOffense) string) string {
	if fs == nil || len(offs) == 0 {
		return ""
	}

	rendered := make([]goldenOffense, 0, len(offs))
	for i := range offs {
		if g, ok := resolveOffense(&offs[i], fs); ok {
			rendered = append(rendered, g)
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Cop != dj.Cop {
			return di.Cop < dj.Cop
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		b.WriteString(line(d))
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func resolveOffense(o *Offense, fs *source.FileSet) (goldenOffense, bool) {
	file := fs.Get(o.Span.File)
	if file == nil {
		return goldenOffense{}, false
	}
	start, _ := file.Resolve(o.Span)
	mark := ""
	switch {
	case o.Corrected:
		mark = "[Corrected] "
	case o.Correctable:
		mark = "[Correctable] "
	}
	return goldenOffense{
		Severity: o.Severity.Letter(),
		Cop:      o.Cop,
		Path:     normalizePath(file.Path),
		Line:     start.Line,
		Column:   start.Col,
		Message:  sanitizeMessage(o.Message),
		Mark:     mark,
	}, true
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
