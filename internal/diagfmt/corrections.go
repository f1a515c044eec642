package diagfmt

import (
	"fmt"
	"io"
	"strconv"

	"copper/internal/fix"
	"copper/internal/source"
)

// Corrections lists applied replacements of one autocorrect pass, for
// `fix --dry-run`. Spans refer to file, the text that pass started from.
func Corrections(w io.Writer, file *source.File, applied []fix.Applied, fs *source.FileSet, mode PathMode) error {
	path := formatPath(file, "", fs, mode)
	for _, a := range applied {
		start, _ := file.Resolve(a.Span)
		old := file.Text(a.Span)
		var action string
		switch {
		case old == "":
			action = "insert " + strconv.Quote(a.NewText)
		case a.NewText == "":
			action = "remove " + strconv.Quote(old)
		default:
			action = fmt.Sprintf("replace %s with %s", strconv.Quote(old), strconv.Quote(a.NewText))
		}
		cop := a.Cop
		if cop == "" {
			cop = "?"
		}
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, start.Line, start.Col, cop, action); err != nil {
			return err
		}
	}
	return nil
}

// SkippedEdits warns about replacements Apply dropped in one pass, e.g. the
// later of two overlapping edits.
func SkippedEdits(w io.Writer, file *source.File, skipped []fix.Skipped, fs *source.FileSet, mode PathMode) error {
	path := formatPath(file, "", fs, mode)
	for _, s := range skipped {
		start, _ := file.Resolve(s.Span)
		cop := s.Cop
		if cop == "" {
			cop = "?"
		}
		if _, err := fmt.Fprintf(w, "warning: %s: %s edit at %d:%d skipped: %s\n", path, cop, start.Line, start.Col, s.Reason); err != nil {
			return err
		}
	}
	return nil
}
