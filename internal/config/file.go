package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"copper/internal/cop"
)

// Config file names in lookup order.
const (
	TomlName = ".copper.toml"
	YAMLName = ".rubocop.yml"

	AllCopsKey = "AllCops"
)

// Format of a configuration file.
type Format uint8

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FormatOf guesses the format from the file name.
func FormatOf(path string) Format {
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// ErrBadConfig wraps decoding and shape errors of a configuration file.
var ErrBadConfig = errors.New("invalid configuration")

// AllCops holds the settings that apply to every cop.
type AllCops struct {
	DisabledByDefault bool
	// Exclude are gitignore-style patterns relative to File.Root.
	Exclude []string
}

// File is one decoded configuration file.
type File struct {
	// Path is empty for the built-in defaults.
	Path    string
	Root    string
	Format  Format
	AllCops AllCops
	Cops    map[string]cop.Config
}

// Empty is the configuration used when no file is found.
func Empty(root string) *File {
	return &File{Root: root, Cops: map[string]cop.Config{}}
}

// Find walks up from startDir looking for TomlName, then YAMLName, in each
// directory.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range []string{TomlName, YAMLName} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds the configuration for startDir. Without a file it returns
// Empty rooted at startDir.
func Discover(startDir string) (*File, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		root, err := filepath.Abs(startDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve start directory: %w", err)
		}
		return Empty(root), nil
	}
	return Load(path)
}

// Load reads and decodes the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	f, err := Decode(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = abs
	f.Root = filepath.Dir(abs)
	return f, nil
}

// Decode parses a configuration document. Top-level keys other than AllCops
// are cop names and must map to tables.
func Decode(data []byte, format Format) (*File, error) {
	raw := map[string]any{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: failed to parse YAML: %w", ErrBadConfig, err)
		}
	default:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse TOML: %w", ErrBadConfig, err)
		}
	}

	f := &File{Format: format, Cops: make(map[string]cop.Config, len(raw))}
	for key, val := range raw {
		table, ok := asTable(val)
		if !ok {
			return nil, fmt.Errorf("%w: `%s` must be a table, got %T", ErrBadConfig, key, val)
		}
		if key == AllCopsKey {
			all, err := decodeAllCops(table)
			if err != nil {
				return nil, err
			}
			f.AllCops = all
			continue
		}
		f.Cops[key] = cop.Config(table)
	}
	return f, nil
}

func decodeAllCops(table map[string]any) (AllCops, error) {
	var all AllCops
	cfg := cop.Config(table)
	if v, ok := table["DisabledByDefault"]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return AllCops{}, fmt.Errorf("%w: `AllCops.DisabledByDefault` must be a boolean, got %T", ErrBadConfig, v)
		}
		all.DisabledByDefault = b
	}
	if _, ok := table[cop.KeyExclude]; ok {
		ex, err := cfg.Strings(cop.KeyExclude)
		if err != nil {
			return AllCops{}, fmt.Errorf("%w: AllCops: %w", ErrBadConfig, err)
		}
		all.Exclude = slices.Clone(ex)
	}
	return all, nil
}

// asTable accepts the map shapes produced by both decoders; an empty YAML
// section (`Rails/Date:`) decodes to nil and counts as an empty table.
func asTable(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case nil:
		return map[string]any{}, true
	}
	return nil, false
}
