// Package cop defines the contract every cop implements, binds cops to their
// resolved configuration and runs them over one syntax tree.
//
// A Cop reads the tree and reports offenses; it never changes the tree. A cop
// that can fix its offenses also implements Autocorrector and registers
// replacements with the unit's fix.Corrector. Configuration is resolved once,
// before New is called, and is read-only afterwards.
package cop
