package lint

import "copper/internal/cop"

// Register adds the Lint cops to r.
func Register(r *cop.Registry) error {
	return r.Register(EmptyEnsureRegistration)
}
