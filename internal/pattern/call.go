package pattern

import (
	"slices"

	"copper/internal/ast"
)

// Call describes a method call. Plain and safe-navigation calls match the
// same descriptor. Variables, literals and ranges never match.
type Call struct {
	// Receiver constrains the receiver; nil accepts any receiver or none.
	Receiver Pattern
	// NoReceiver requires a receiverless call (`today`, `puts x`).
	NoReceiver bool
	// Method filters the selector; nil accepts any name.
	Method Names
	// Args are positional sub-patterns; a nil entry accepts any node.
	// Extra arguments beyond len(Args) are allowed within MinArgs/MaxArgs.
	Args []Pattern
	// MinArgs and MaxArgs bound the argument count. MaxArgs == 0 means no
	// upper bound unless NoArgs is set.
	MinArgs int
	MaxArgs int
	NoArgs  bool
}

// Match implements Pattern.
func (c Call) Match(n *ast.Node) bool {
	n = normalize(n)
	if n == nil || n.Kind != ast.Send {
		return false
	}
	switch {
	case c.NoReceiver && n.Receiver != nil:
		return false
	case c.Receiver != nil && !c.Receiver.Match(n.Receiver):
		return false
	}
	if c.Method != nil && !c.Method.MatchName(n.Name) {
		return false
	}
	argc := len(n.Args)
	if c.NoArgs && argc != 0 {
		return false
	}
	if argc < c.MinArgs || (c.MaxArgs > 0 && argc > c.MaxArgs) || argc < len(c.Args) {
		return false
	}
	for i, p := range c.Args {
		if p != nil && !p.Match(n.Args[i]) {
			return false
		}
	}
	return true
}

// normalize returns csend nodes as an equivalent send so descriptors need not
// spell both forms. The input node is never modified.
func normalize(n *ast.Node) *ast.Node {
	if n == nil || n.Kind != ast.CSend {
		return n
	}
	cp := *n
	cp.Kind = ast.Send
	return &cp
}

// ConstPath matches a constant whose namespace chain equals Segments exactly.
// `Date` and `::Date` both match ConstPath{Segments: {"Date"}}, `Some::Date`
// does not. Set RootedOnly to require the leading `::`.
type ConstPath struct {
	Segments   []string
	RootedOnly bool
}

// Match implements Pattern.
func (c ConstPath) Match(n *ast.Node) bool {
	segs, rooted, ok := ast.ConstPath(n)
	if !ok || (c.RootedOnly && !rooted) {
		return false
	}
	return slices.Equal(segs, c.Segments)
}

// Const builds a ConstPath: Const("A", "B")
// matches `A::B` and `::A::B`.
func Const(segments ...string) ConstPath {
	return ConstPath{Segments: segments}
}
