package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of an offense.
type Severity uint8

const (
	// SevInfo is for informational offenses; they never fail a run.
	SevInfo Severity = iota
	SevRefactor
	SevConvention
	SevWarning
	SevError
	// SevFatal is reserved for syntax errors and crashed cops.
	SevFatal
)

var severityNames = [...]string{
	SevInfo:       "info",
	SevRefactor:   "refactor",
	SevConvention: "convention",
	SevWarning:    "warning",
	SevError:      "error",
	SevFatal:      "fatal",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "unknown"
}

// Letter returns the one-letter code used by the short formats (C, W, F...).
func (s Severity) Letter() string {
	if int(s) < len(severityNames) {
		return strings.ToUpper(severityNames[s][:1])
	}
	return "?"
}

// ParseSeverity parses a severity name as written in configuration files.
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if strings.EqualFold(n, name) {
			return Severity(i), nil // #nosec G115 -- bounded by severityNames
		}
	}
	return SevInfo, fmt.Errorf("unknown severity %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
