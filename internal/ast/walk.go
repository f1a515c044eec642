package ast

import "iter"

// Walk visits n and its descendants in preorder. When fn returns false the
// children of that node are skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// Preorder yields n and its descendants in preorder.
func Preorder(n *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		preorder(n, yield)
	}
}

func preorder(n *Node, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !yield(n) {
		return false
	}
	for _, c := range n.Children() {
		if !preorder(c, yield) {
			return false
		}
	}
	return true
}
