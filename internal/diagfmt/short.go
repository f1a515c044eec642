package diagfmt

import (
	"fmt"
	"io"

	"copper/internal/diag"
	"copper/internal/source"
)

// Short prints one line per offense: `path:line:col: S: Cop: message`.
func Short(w io.Writer, offs []diag.Offense, fs *source.FileSet, mode PathMode) error {
	for _, o := range offs {
		path := "?"
		var start source.LineCol
		if f := fs.Get(o.Span.File); f != nil {
			path = formatPath(f, "", fs, mode)
			start, _ = f.Resolve(o.Span)
		}
		mark := ""
		if o.Corrected {
			mark = "[Corrected] "
		}
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s%s: %s\n", path, start.Line, start.Col, o.Severity.Letter(), mark, o.Cop, o.Message); err != nil {
			return err
		}
	}
	return nil
}
