package ast

import (
	"errors"
	"fmt"
	"slices"
)

// ErrMalformedTree is returned when a tree violates structural invariants.
var ErrMalformedTree = errors.New("malformed syntax tree")

// index walks the tree, checks invariants and fills the parent map.
func (t *Tree) index() error {
	if t.Root == nil {
		return nil
	}
	var limit uint32
	if t.File != nil {
		limit = t.File.Len()
	}
	if err := t.checkNode(t.Root, limit); err != nil {
		return err
	}
	seen := map[*Node]bool{t.Root: true}
	stack := []*Node{t.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := t.checkChildren(n, limit); err != nil {
			return err
		}
		for _, c := range n.Children() {
			if seen[c] {
				return fmt.Errorf("%w: %s at %s is reachable twice", ErrMalformedTree, c.Kind, c.Span)
			}
			seen[c] = true
			t.parents[c] = n
			stack = append(stack, c)
		}
	}
	return nil
}

func (t *Tree) checkNode(n *Node, limit uint32) error {
	if n.Kind == Invalid {
		return fmt.Errorf("%w: invalid node at %s", ErrMalformedTree, n.Span)
	}
	if n.Span.End < n.Span.Start {
		return fmt.Errorf("%w: %s has inverted span %s", ErrMalformedTree, n.Kind, n.Span)
	}
	if t.File != nil && (n.Span.File != t.File.ID || n.Span.End > limit) {
		return fmt.Errorf("%w: %s span %s lies outside %s", ErrMalformedTree, n.Kind, n.Span, t.File.Path)
	}
	return nil
}

func (t *Tree) checkChildren(n *Node, limit uint32) error {
	for _, list := range [][]*Node{n.Args, n.Stmts, n.Clauses, n.Exceptions} {
		if slices.Contains(list, nil) {
			return fmt.Errorf("%w: %s at %s has a dangling child", ErrMalformedTree, n.Kind, n.Span)
		}
	}
	children := n.Children()
	for i, c := range children {
		if err := t.checkNode(c, limit); err != nil {
			return err
		}
		if !n.Span.Contains(c.Span) {
			return fmt.Errorf("%w: %s %s escapes parent %s %s", ErrMalformedTree, c.Kind, c.Span, n.Kind, n.Span)
		}
		if i > 0 && children[i-1].Span.End > c.Span.Start {
			return fmt.Errorf("%w: %s %s overlaps sibling %s %s", ErrMalformedTree,
				c.Kind, c.Span, children[i-1].Kind, children[i-1].Span)
		}
	}
	return nil
}
