package rails

import "copper/internal/cop"

// Register adds the Rails cops to r.
func Register(r *cop.Registry) error {
	return r.Register(DateRegistration)
}
