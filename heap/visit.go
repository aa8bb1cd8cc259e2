package heap

import (
	"iter"

	"github.com/kvbuf/polyval/format"
)

// AllFields returns an iterator over an object's key/value pairs in
// insertion order, for idiomatic range use alongside Fields. AllFields
// panics if the node is not an object.
func (n *Node) AllFields() iter.Seq2[string, *Node] {
	if n.kind != format.Object {
		panic("heap: AllFields called on non-object node")
	}

	return func(yield func(string, *Node) bool) {
		for _, f := range n.fields {
			if !yield(f.Key, f.Value) {
				return
			}
		}
	}
}

// AllElements returns an iterator over an array's elements in insertion
// order. AllElements panics if the node is not an array.
func (n *Node) AllElements() iter.Seq2[int, *Node] {
	if n.kind != format.Array {
		panic("heap: AllElements called on non-array node")
	}

	return func(yield func(int, *Node) bool) {
		for i, c := range n.children {
			if !yield(i, c) {
				return
			}
		}
	}
}
