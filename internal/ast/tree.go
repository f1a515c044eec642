package ast

import (
	"iter"

	"copper/internal/source"
)

// Tree is one parsed unit: a root node (nil for an empty file) plus a parent
// index. A Tree is read-only and may be shared between goroutines.
type Tree struct {
	File    *source.File
	Root    *Node
	parents map[*Node]*Node
}

// NewTree validates root against file and builds the parent index.
// It returns an error wrapping ErrMalformedTree when the structure is broken.
func NewTree(file *source.File, root *Node) (*Tree, error) {
	t := &Tree{File: file, Root: root, parents: make(map[*Node]*Node)}
	if err := t.index(); err != nil {
		return nil, err
	}
	return t, nil
}

// Parent returns the parent of n, or nil for the root and unknown nodes.
func (t *Tree) Parent(n *Node) *Node {
	return t.parents[n]
}

// Ancestors yields the parents of n from the nearest outward.
func (t *Tree) Ancestors(n *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for p := t.parents[n]; p != nil; p = t.parents[p] {
			if !yield(p) {
				return
			}
		}
	}
}

// Nodes yields every node in preorder.
func (t *Tree) Nodes() iter.Seq[*Node] {
	return Preorder(t.Root)
}

// Walk visits nodes in preorder; returning false from fn skips the children.
func (t *Tree) Walk(fn func(*Node) bool) {
	Walk(t.Root, fn)
}

// Find returns the first node in preorder satisfying pred.
func (t *Tree) Find(pred func(*Node) bool) *Node {
	for n := range t.Nodes() {
		if pred(n) {
			return n
		}
	}
	return nil
}

// FindAll returns every node satisfying pred, in preorder.
func (t *Tree) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	for n := range t.Nodes() {
		if pred(n) {
			out = append(out, n)
		}
	}
	return out
}

// Source returns the text covered by span.
func (t *Tree) Source(span source.Span) string {
	if t.File == nil {
		return ""
	}
	return t.File.Text(span)
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	if t.Root == nil {
		return 0
	}
	return len(t.parents) + 1
}
