// Package lint holds cops of the Lint department: constructs that are
// almost certainly mistakes.
package lint
