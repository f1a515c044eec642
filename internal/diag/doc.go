// Package diag defines the offense model shared by the front end, the cops
// and the driver.
//
// # Data model
//
// Offense is the central record:
//
//   - Cop: qualified cop name ("Lint/EmptyEnsure"). Syntax errors produced by
//     the lexer and parser use SyntaxCop.
//   - Severity: RuboCop levels, info through fatal (severity.go).
//   - Span: the exact byte range the offense points at.
//   - Message: short, actionable text.
//   - Correctable / Corrected: whether the cop can fix it and whether a fix
//     was applied in this run.
//
// # Emitting offenses
//
// Producers talk to a Reporter and never to storage directly. Cops normally
// build offenses with NewReport, which stamps the cop name and default
// severity, and call Emit once.
//
// # Collecting
//
// Bag is the per-unit sink. It never merges or deduplicates: two offenses on
// the same range are two entries. Items returns them in document order
// (ascending start, ties broken by registration order).
//
// Package diag performs no IO and no rendering; see internal/diagfmt.
package diag
