package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes n as an indented s-expression:
//
//	(send
//	  (const nil :Date) :today)
func Dump(w io.Writer, n *Node) error {
	var b strings.Builder
	dump(&b, n, 0)
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// String renders n as a single-line s-expression.
func (n *Node) String() string {
	var b strings.Builder
	dump(&b, n, -1)
	return b.String()
}

func dump(b *strings.Builder, n *Node, depth int) {
	if n == nil {
		b.WriteString("nil")
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Kind.String())

	child := func(c *Node) {
		if depth < 0 || c == nil || len(c.Children()) == 0 {
			b.WriteByte(' ')
			dump(b, c, depthNext(depth))
			return
		}
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("  ", depth+1))
		dump(b, c, depth+1)
	}
	list := func(ns []*Node) {
		for _, c := range ns {
			child(c)
		}
	}
	sym := func(s string) { fmt.Fprintf(b, " :%s", s) }

	switch n.Kind {
	case Begin:
		list(n.Stmts)
	case KwBegin:
		if n.Body != nil {
			child(n.Body)
		}
	case Def:
		sym(n.Name)
		b.WriteString(" (args")
		for _, a := range n.Args {
			fmt.Fprintf(b, " :%s", a.Name)
		}
		b.WriteByte(')')
		child(n.Body)
	case Ensure:
		child(n.Body)
		child(n.Cleanup)
	case Rescue:
		child(n.Body)
		list(n.Clauses)
		child(n.Else)
	case ResBody:
		if len(n.Exceptions) == 0 {
			b.WriteString(" nil")
		} else {
			b.WriteString(" (array")
			for _, e := range n.Exceptions {
				b.WriteByte(' ')
				dump(b, e, -1)
			}
			b.WriteByte(')')
		}
		child(n.Target)
		child(n.Body)
	case Send, CSend:
		child(n.Receiver)
		sym(n.Name)
		list(n.Args)
	case Const:
		child(n.Receiver)
		sym(n.Name)
	case Casgn:
		child(n.Receiver)
		sym(n.Name)
		child(n.Value)
	case Lvar, Ivar:
		sym(n.Name)
	case Lvasgn, Ivasgn:
		sym(n.Name)
		if n.Value != nil {
			child(n.Value)
		}
	case Str:
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(n.Literal))
	case Sym:
		sym(n.Literal)
	case Int, Float:
		b.WriteByte(' ')
		b.WriteString(n.Literal)
	case Irange, Erange, And, Or:
		child(n.Left)
		child(n.Right)
	case Array, Return:
		list(n.Args)
	}
	b.WriteByte(')')
}

func depthNext(depth int) int {
	if depth < 0 {
		return depth
	}
	return depth + 1
}
