package config

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"copper/internal/cop"
)

// Resolved is a configuration bound to a registry: the option set of every
// registered cop plus the exclusion rules.
type Resolved struct {
	Root string
	Cops map[string]cop.Config
	// Warnings are non-fatal problems such as unknown cop names.
	Warnings []string

	exclude    *gitignore.GitIgnore
	copExclude map[string]*gitignore.GitIgnore
}

// Resolve merges f over the registry defaults. With DisabledByDefault only
// cops mentioned in f run, and they run unless f disables them. only, when
// non-empty, restricts the run to the named cops regardless of f.
func (f *File) Resolve(reg *cop.Registry, only []string) (*Resolved, error) {
	overrides := make(map[string]cop.Config, len(f.Cops))
	for name, cfg := range f.Cops {
		overrides[name] = maps.Clone(cfg)
	}
	if f.AllCops.DisabledByDefault {
		for _, name := range reg.Names() {
			cfg, mentioned := overrides[name]
			if !mentioned {
				overrides[name] = cop.Config{cop.KeyEnabled: false}
				continue
			}
			if _, ok := cfg[cop.KeyEnabled]; !ok {
				overrides[name] = cfg.Merge(cop.Config{cop.KeyEnabled: true})
			}
		}
	}

	resolved, unknown := reg.Resolve(overrides)
	r := &Resolved{Root: f.Root, Cops: resolved, copExclude: map[string]*gitignore.GitIgnore{}}
	for _, name := range unknown {
		r.Warnings = append(r.Warnings, fmt.Sprintf("unrecognized cop %s found in %s", name, f.describe()))
	}

	if len(only) > 0 {
		for _, name := range only {
			if _, ok := resolved[name]; !ok {
				return nil, fmt.Errorf("%w: %s", cop.ErrUnknownCop, name)
			}
		}
		for name, cfg := range resolved {
			resolved[name] = cfg.Merge(cop.Config{cop.KeyEnabled: slices.Contains(only, name)})
		}
	}

	if len(f.AllCops.Exclude) > 0 {
		r.exclude = gitignore.CompileIgnoreLines(f.AllCops.Exclude...)
	}
	for _, name := range slices.Sorted(maps.Keys(resolved)) {
		cfg := resolved[name]
		if _, ok := cfg[cop.KeyExclude]; !ok {
			continue
		}
		patterns, err := cfg.Strings(cop.KeyExclude)
		if err != nil {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s: %s: %v", f.describe(), name, err))
			continue
		}
		r.copExclude[name] = gitignore.CompileIgnoreLines(patterns...)
	}
	return r, nil
}

func (f *File) describe() string {
	if f.Path == "" {
		return "default configuration"
	}
	return f.Path
}

// Excluded reports whether path is skipped by AllCops.Exclude.
func (r *Resolved) Excluded(path string) bool {
	return matches(r.exclude, r.rel(path))
}

// CopExcluded reports whether the cop's own Exclude list skips path.
func (r *Resolved) CopExcluded(name, path string) bool {
	return matches(r.copExclude[name], r.rel(path))
}

func matches(ign *gitignore.GitIgnore, rel string) bool {
	return ign != nil && rel != "" && ign.MatchesPath(rel)
}

// rel makes path relative to Root with forward slashes. Paths outside Root
// are matched as given.
func (r *Resolved) rel(path string) string {
	if r.Root == "" {
		return filepath.ToSlash(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(r.Root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
