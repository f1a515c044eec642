package cop

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrDuplicateCop is returned when two registrations share a name.
var ErrDuplicateCop = errors.New("cop already registered")

// ErrUnknownCop is returned for names nobody registered.
var ErrUnknownCop = errors.New("unknown cop")

// Registration describes a cop: its defaults and how to build it.
type Registration struct {
	Name        string
	Description string
	// Defaults are merged under the user's configuration.
	Defaults Config
	// Safe reports whether the autocorrection never changes behaviour.
	Safe bool
	// Autocorrects reports whether the cop implements Autocorrector.
	Autocorrects bool
	New          func(cfg Config) (Cop, error)
}

// Registry is the set of known cops. It is filled at start-up and read
// concurrently afterwards.
type Registry struct {
	mu   sync.RWMutex
	regs map[string]Registration
}

func NewRegistry() *Registry {
	return &Registry{regs: make(map[string]Registration)}
}

// Register adds reg.
func (r *Registry) Register(reg Registration) error {
	if reg.Name == "" || reg.New == nil {
		return fmt.Errorf("register cop %q: name and constructor are required", reg.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.regs[reg.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCop, reg.Name)
	}
	r.regs[reg.Name] = reg
	return nil
}

// MustRegister is Register that panics; for static registration lists.
func (r *Registry) MustRegister(regs ...Registration) {
	for _, reg := range regs {
		if err := r.Register(reg); err != nil {
			panic(err)
		}
	}
}

// Lookup finds a registration by cop name.
func (r *Registry) Lookup(name string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.regs[name]
	return reg, ok
}

// All returns registrations sorted by name.
func (r *Registry) All() []Registration {
	r.mu.RLock()
	out := make([]Registration, 0, len(r.regs))
	for _, reg := range r.regs {
		out = append(out, reg)
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b Registration) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// Names returns the registered cop names, sorted.
func (r *Registry) Names() []string {
	all := r.All()
	names := make([]string, len(all))
	for i, reg := range all {
		names[i] = reg.Name
	}
	return names
}

// Resolve merges overrides over each cop's defaults. Keys of overrides that
// name no registered cop are returned as unknown.
func (r *Registry) Resolve(overrides map[string]Config) (resolved map[string]Config, unknown []string) {
	resolved = make(map[string]Config)
	for _, reg := range r.All() {
		resolved[reg.Name] = reg.Defaults.Merge(overrides[reg.Name])
	}
	for name := range overrides {
		if _, ok := r.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	slices.Sort(unknown)
	return resolved, unknown
}

// BuildError reports a cop that could not be constructed.
type BuildError struct {
	Cop string
	Err error
}

func (e *BuildError) Error() string { return e.Cop + ": " + e.Err.Error() }

func (e *BuildError) Unwrap() error { return e.Err }

// Build constructs every enabled cop from its resolved configuration, in name
// order. A cop whose configuration is missing or invalid is left out and its
// error returned; the others are still built. Cops absent from resolved use
// their defaults.
func (r *Registry) Build(resolved map[string]Config) ([]Cop, []error) {
	var cops []Cop
	var errs []error
	for _, reg := range r.All() {
		cfg, ok := resolved[reg.Name]
		if !ok {
			cfg = reg.Defaults.Merge(nil)
		}
		if !cfg.Enabled() {
			continue
		}
		c, err := reg.New(cfg)
		if err != nil {
			errs = append(errs, &BuildError{Cop: reg.Name, Err: err})
			continue
		}
		cops = append(cops, c)
	}
	return cops, errs
}
