// Package all assembles the registry of every cop shipped with copper.
package all

import (
	"copper/internal/cop"
	"copper/internal/cop/lint"
	"copper/internal/cop/rails"
)

// Registry returns a fresh registry holding all built-in cops.
func Registry() *cop.Registry {
	r := cop.NewRegistry()
	for _, register := range []func(*cop.Registry) error{
		lint.Register,
		rails.Register,
	} {
		if err := register(r); err != nil {
			panic(err)
		}
	}
	return r
}
