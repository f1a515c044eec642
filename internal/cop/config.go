package cop

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"copper/internal/diag"
)

// Common configuration keys.
const (
	KeyEnabled         = "Enabled"
	KeySeverity        = "Severity"
	KeyEnforcedStyle   = "EnforcedStyle"
	KeySupportedStyles = "SupportedStyles"
	KeyAutoCorrect     = "AutoCorrect"
	KeyDescription     = "Description"
	KeyExclude         = "Exclude"
)

var (
	// ErrConfigMissing: a required option is absent from the resolved config.
	ErrConfigMissing = errors.New("missing configuration option")
	// ErrUnsupportedStyle: EnforcedStyle names a style the cop does not know.
	ErrUnsupportedStyle = errors.New("unsupported style")
	// ErrBadOption: an option has the wrong type.
	ErrBadOption = errors.New("bad configuration value")
)

// Config is the resolved option set of one cop. Values come from TOML or
// YAML decoding, so numbers may be int or int64 and lists []any.
type Config map[string]any

// Style is one EnforcedStyle value.
type Style string

// Merge returns a copy of c with the keys of over applied on top.
func (c Config) Merge(over Config) Config {
	out := make(Config, len(c)+len(over))
	maps.Copy(out, c)
	maps.Copy(out, over)
	return out
}

// Enabled reports the Enabled key, true when absent.
func (c Config) Enabled() bool {
	return c.Bool(KeyEnabled, true)
}

// Bool returns a boolean option or def.
func (c Config) Bool(key string, def bool) bool {
	if v, ok := c[key].(bool); ok {
		return v
	}
	return def
}

// String returns a string option.
func (c Config) String(key string) (string, bool) {
	v, ok := c[key].(string)
	return v, ok
}

// Strings returns a list option. A single string is a one-element list.
func (c Config) Strings(key string) ([]string, error) {
	raw, ok := c[key]
	if !ok {
		return nil, fmt.Errorf("%w `%s`", ErrConfigMissing, key)
	}
	switch v := raw.(type) {
	case []string:
		return slices.Clone(v), nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: `%s` must be a list of strings, got %T element", ErrBadOption, key, item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: `%s` must be a list of strings, got %T", ErrBadOption, key, raw)
}

// Severity returns the Severity option or def when absent.
func (c Config) Severity(def diag.Severity) (diag.Severity, error) {
	raw, ok := c[KeySeverity]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case string:
		return diag.ParseSeverity(v)
	case diag.Severity:
		return v, nil
	}
	return def, fmt.Errorf("%w: `%s` must be a string, got %T", ErrBadOption, KeySeverity, raw)
}

// EnforcedStyle returns the EnforcedStyle option if it is one of supported.
// An absent option yields ErrConfigMissing, an unknown one ErrUnsupportedStyle.
func (c Config) EnforcedStyle(supported ...Style) (Style, error) {
	raw, ok := c[KeyEnforcedStyle]
	if !ok {
		return "", fmt.Errorf("%w `%s`", ErrConfigMissing, KeyEnforcedStyle)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: `%s` must be a string, got %T", ErrBadOption, KeyEnforcedStyle, raw)
	}
	style := Style(s)
	if !slices.Contains(supported, style) {
		return "", fmt.Errorf("%w %q for `%s`, supported: %v", ErrUnsupportedStyle, s, KeyEnforcedStyle, supported)
	}
	return style, nil
}
