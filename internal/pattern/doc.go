// Package pattern matches syntax nodes against declarative shape descriptors.
//
// A descriptor names the node kind, an optional receiver sub-pattern, a
// method-name predicate and per-argument sub-patterns. Safe-navigation calls
// are normalised to plain sends before matching, and constant receivers are
// compared as whole namespace chains, never by suffix.
package pattern
