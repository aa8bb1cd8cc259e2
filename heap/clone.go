package heap

import (
	"github.com/kvbuf/polyval/format"
	"github.com/kvbuf/polyval/internal/keyset"
)

// Clone returns a deep structural copy of n. Object and array children are
// recursively cloned so the result shares no node with n; this is what
// Set and Append use to snapshot a value that would otherwise introduce a
// cycle.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	clone := &Node{
		kind:     n.kind,
		str:      n.str,
		i64:      n.i64,
		f64:      n.f64,
		decWidth: n.decWidth,
		boolean:  n.boolean,
	}

	switch n.kind {
	case format.Object:
		clone.keys = keyset.NewWithCapacity(len(n.fields))
		clone.fields = make([]Field, len(n.fields))
		for i, f := range n.fields {
			clone.fields[i] = Field{Key: f.Key, Value: f.Value.Clone()}
			clone.keys.Add(f.Key)
		}
	case format.Array:
		clone.children = make([]*Node, len(n.children))
		for i, c := range n.children {
			clone.children[i] = c.Clone()
		}
	}

	return clone
}
