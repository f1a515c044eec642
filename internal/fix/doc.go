// Package fix collects text replacements for one unit and applies them.
//
// Cops register replacements through a Corrector while autocorrecting. Apply
// sorts them, drops the ones that overlap an already accepted replacement
// (or fails, under PolicyRejectAll) and rebuilds the text. Bytes outside the
// accepted spans are copied verbatim.
package fix
