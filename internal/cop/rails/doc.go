// Package rails holds cops of the Rails department.
package rails
