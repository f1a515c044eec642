package diagfmt

import (
	"fmt"
	"strings"

	"copper/internal/diag"
	"copper/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths and shortens long absolute ones.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

var pathModeNames = [...]string{
	PathModeAuto:     "auto",
	PathModeAbsolute: "absolute",
	PathModeRelative: "relative",
	PathModeBasename: "basename",
}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return "auto"
}

// Format is an output format of the inspect command.
type Format string

const (
	FormatPretty  Format = "pretty"
	FormatShort   Format = "short"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPretty, FormatShort, FormatJSON, FormatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q (must be pretty, short, json or msgpack)", s)
}

// PrettyOpts configures pretty-printing of offenses.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// Max limits printed offenses; 0 - без ограничения.
	Max int
}

// JSONOpts configures JSON and msgpack output.
type JSONOpts struct {
	PathMode PathMode
	Max      int // обрезка вывода, не результатов
	Indent   bool
	// Version goes into metadata.
	Version string
}

// FileOffenses are the offenses of one inspected file. Files without
// offenses are listed too so the documents count them.
type FileOffenses struct {
	Path     string
	File     *source.File
	Offenses []diag.Offense
}

func formatPath(f *source.File, fallback string, fs *source.FileSet, mode PathMode) string {
	if f == nil {
		return fallback
	}
	base := ""
	if fs != nil {
		base = fs.BaseDir()
	}
	return f.FormatPath(mode.String(), base)
}
