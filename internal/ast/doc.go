// Package ast defines the immutable syntax tree cops inspect.
//
// Node shapes follow the whitequark parser conventions RuboCop uses: a call is
// (send receiver :name args...), a safe-navigation call is csend, constants
// carry their scope as Receiver, and begin/rescue/ensure nest as
// (kwbegin (ensure (rescue body resbody... else) cleanup)).
//
// Nodes are built once by the parser and never mutated afterwards. Tree adds a
// parent index and validates structural invariants on construction: children
// lie inside their parent and do not overlap each other, and no node is
// reachable twice.
package ast
