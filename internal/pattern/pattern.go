package pattern

import (
	"slices"

	"copper/internal/ast"
)

// Pattern is a predicate over one node. A nil node never matches unless the
// pattern says so explicitly.
type Pattern interface {
	Match(n *ast.Node) bool
}

// Match reports whether n has the shape p. A nil p matches any non-nil node.
func Match(n *ast.Node, p Pattern) bool {
	if p == nil {
		return n != nil
	}
	return p.Match(n)
}

// Func adapts an ordinary predicate.
type Func func(n *ast.Node) bool

func (f Func) Match(n *ast.Node) bool { return n != nil && f(n) }

type anyPattern struct{}

func (anyPattern) Match(n *ast.Node) bool { return n != nil }

// Any matches every present node.
var Any Pattern = anyPattern{}

type kindPattern []ast.Kind

func (k kindPattern) Match(n *ast.Node) bool {
	return n != nil && slices.Contains(k, n.Kind)
}

// Kind matches nodes of one of kinds.
func Kind(kinds ...ast.Kind) Pattern {
	return kindPattern(kinds)
}

type strPattern func(string) bool

func (p strPattern) Match(n *ast.Node) bool {
	if n == nil || n.Kind != ast.Str {
		return false
	}
	return p == nil || p(n.Literal)
}

// Str matches a string literal whose content satisfies pred (any when nil).
func Str(pred func(content string) bool) Pattern {
	return strPattern(pred)
}

type orPattern []Pattern

func (o orPattern) Match(n *ast.Node) bool {
	for _, p := range o {
		if Match(n, p) {
			return true
		}
	}
	return false
}

// Or matches when at least one of ps matches.
func Or(ps ...Pattern) Pattern {
	return orPattern(ps)
}

type notPattern struct{ p Pattern }

func (n notPattern) Match(node *ast.Node) bool { return node != nil && !Match(node, n.p) }

// Not matches present nodes that p rejects.
func Not(p Pattern) Pattern {
	return notPattern{p: p}
}
