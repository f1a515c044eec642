// Package coptest runs cops against annotated Ruby snippets in tests.
//
// An annotated snippet is plain source where some lines are markers:
//
//	Date.today
//	     ^^^^^ Do not use `Date.today` without zone. Use `Time.zone.today` instead.
//
// A marker line starts (after indentation) with carets under the offending
// bytes of the source line above it, then a space and the message. `^{}`
// marks a zero-length offense.
package coptest

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Annotation is one expected or actual offense position.
type Annotation struct {
	Line    int // 1-based source line
	Col     int // 0-based byte column
	Len     int
	Message string
}

// Parse splits an annotated snippet into source and annotations.
func Parse(annotated string) (string, []Annotation, error) {
	var (
		src  strings.Builder
		anns []Annotation
		line int
	)
	for _, raw := range strings.SplitAfter(annotated, "\n") {
		if raw == "" {
			continue
		}
		a, ok, err := parseMarker(strings.TrimSuffix(raw, "\n"))
		if err != nil {
			return "", nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		if !ok {
			src.WriteString(raw)
			line++
			continue
		}
		if line == 0 {
			return "", nil, fmt.Errorf("marker %q before any source line", raw)
		}
		a.Line = line
		anns = append(anns, a)
	}
	return src.String(), anns, nil
}

func parseMarker(body string) (Annotation, bool, error) {
	trimmed := strings.TrimLeft(body, " ")
	if !strings.HasPrefix(trimmed, "^") {
		return Annotation{}, false, nil
	}
	a := Annotation{Col: len(body) - len(trimmed)}
	rest := trimmed
	if strings.HasPrefix(rest, "^{}") {
		rest = rest[3:]
	} else {
		a.Len = len(rest) - len(strings.TrimLeft(rest, "^"))
		rest = rest[a.Len:]
	}
	switch {
	case rest == "":
	case rest[0] == ' ':
		a.Message = rest[1:]
	default:
		return Annotation{}, false, fmt.Errorf("malformed marker %q", body)
	}
	return a, true, nil
}

// Render writes src back with a marker line under every annotated line.
// Markers on one line are ordered by column, then message.
func Render(src string, anns []Annotation) string {
	byLine := make(map[int][]Annotation)
	for _, a := range anns {
		byLine[a.Line] = append(byLine[a.Line], a)
	}
	var b strings.Builder
	line := 0
	for _, raw := range strings.SplitAfter(src, "\n") {
		if raw == "" {
			continue
		}
		line++
		b.WriteString(raw)
		if !strings.HasSuffix(raw, "\n") {
			b.WriteByte('\n')
		}
		marks := byLine[line]
		slices.SortFunc(marks, func(x, y Annotation) int {
			return cmp.Or(cmp.Compare(x.Col, y.Col), cmp.Compare(x.Len, y.Len), strings.Compare(x.Message, y.Message))
		})
		for _, a := range marks {
			b.WriteString(strings.Repeat(" ", a.Col))
			if a.Len == 0 {
				b.WriteString("^{}")
			} else {
				b.WriteString(strings.Repeat("^", a.Len))
			}
			if a.Message != "" {
				b.WriteString(" " + a.Message)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
