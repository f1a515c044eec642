package ast

import (
	"slices"

	"copper/internal/source"
)

// Loc holds sub-spans of a node. A zero-length span means absent.
type Loc struct {
	Keyword  source.Span // def, begin, ensure, rescue, return
	End      source.Span // closing `end` or `)` / `]`
	Begin    source.Span // opening `(` or `[`
	Selector source.Span // method, variable or constant name; binary operator
	Dot      source.Span // `.`, `&.` or `::`
	Operator source.Span // `=`, `=>`, `..`, `&&`
	Else     source.Span // `else` of a rescue
}

// Node is one syntax construct. Which fields are used depends on Kind:
//
//	Begin            Stmts
//	KwBegin          Body
//	Def              Name, Args (parameters as lvar), Body
//	Ensure           Body (protected part), Cleanup
//	Rescue           Body, Clauses (resbody), Else
//	ResBody          Exceptions, Target, Body
//	Send, CSend      Receiver, Name, Args
//	Const, Casgn     Receiver (scope: const, cbase or nil), Name, Value (casgn)
//	Lvar, Ivar       Name
//	Lvasgn, Ivasgn   Name, Value
//	Str, Sym         Literal (unquoted source text)
//	Int, Float       Literal
//	Irange, Erange   Left, Right (Right may be nil)
//	Array, Return    Args
//	And, Or          Left, Right
type Node struct {
	Kind    Kind
	Span    source.Span
	Loc     Loc
	Name    string
	Literal string

	Receiver *Node
	Args     []*Node

	Body       *Node
	Stmts      []*Node
	Cleanup    *Node
	Clauses    []*Node
	Else       *Node
	Exceptions []*Node
	Target     *Node
	Value      *Node
	Left       *Node
	Right      *Node
}

// Children returns the present children in source order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	add := func(c ...*Node) {
		for _, x := range c {
			if x != nil {
				out = append(out, x)
			}
		}
	}
	switch n.Kind {
	case Begin:
		add(n.Stmts...)
	case KwBegin:
		add(n.Body)
	case Def:
		add(n.Args...)
		add(n.Body)
	case Ensure:
		add(n.Body, n.Cleanup)
	case Rescue:
		add(n.Body)
		add(n.Clauses...)
		add(n.Else)
	case ResBody:
		add(n.Exceptions...)
		add(n.Target, n.Body)
	case Send, CSend:
		add(n.Receiver)
		add(n.Args...)
	case Const:
		add(n.Receiver)
	case Casgn:
		add(n.Receiver, n.Value)
	case Lvasgn, Ivasgn:
		add(n.Value)
	case Irange, Erange, And, Or:
		add(n.Left, n.Right)
	case Array, Return:
		add(n.Args...)
	}
	return out
}

// Is reports whether n is non-nil and has one of kinds.
func (n *Node) Is(kinds ...Kind) bool {
	if n == nil {
		return false
	}
	for _, k := range kinds {
		if n.Kind == k {
			return true
		}
	}
	return false
}

// IsCall reports whether n is a send or csend.
func (n *Node) IsCall() bool { return n != nil && n.Kind.IsCall() }

// FirstArg returns the first argument or nil.
func (n *Node) FirstArg() *Node {
	if n == nil || len(n.Args) == 0 {
		return nil
	}
	return n.Args[0]
}

// Statements returns the statements of a body node: the list of a Begin,
// the node itself otherwise, nothing for nil.
func Statements(body *Node) []*Node {
	switch {
	case body == nil:
		return nil
	case body.Kind == Begin:
		return body.Stmts
	default:
		return []*Node{body}
	}
}

// ConstPath returns the segments of a constant path and whether it is
// rooted at ::. ok is false when some scope is not a constant (`foo::Bar`).
func ConstPath(n *Node) (segments []string, rooted, ok bool) {
	if n == nil || n.Kind != Const {
		return nil, false, false
	}
	for cur := n; ; {
		segments = append(segments, cur.Name)
		scope := cur.Receiver
		switch {
		case scope == nil:
			slices.Reverse(segments)
			return segments, false, true
		case scope.Kind == Cbase:
			slices.Reverse(segments)
			return segments, true, true
		case scope.Kind == Const:
			cur = scope
		default:
			return nil, false, false
		}
	}
}
