package heap

import "github.com/kvbuf/polyval/format"

// Equals reports whether n and other are structurally equal: same kind,
// same scalar payload, and for aggregates, the same children compared
// recursively. Object comparison is order-independent (two objects built
// by inserting the same key/value pairs in different orders compare
// equal, matching the canonical key-order property an object gets once
// lowered) — array comparison is order-dependent.
func (n *Node) Equals(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.kind != other.kind {
		return false
	}

	switch n.kind {
	case format.Object:
		return objectEquals(n, other)
	case format.Array:
		if len(n.children) != len(other.children) {
			return false
		}
		for i, c := range n.children {
			if !c.Equals(other.children[i]) {
				return false
			}
		}

		return true
	case format.String:
		return n.str == other.str
	case format.Integer:
		return n.i64 == other.i64
	case format.Decimal:
		// decWidth is part of the comparison, not just the payload: decimals
		// never auto-narrow (see DESIGN.md), so a Float32 and a Float64 node
		// holding the same value lower to different byte widths and must not
		// compare equal here either — otherwise two "structurally equal"
		// trees would produce different canonical bytes (spec Canonicality).
		return n.f64 == other.f64 && n.decWidth == other.decWidth
	case format.Boolean:
		return n.boolean == other.boolean
	case format.Null:
		return true
	default:
		return false
	}
}

func objectEquals(a, b *Node) bool {
	if len(a.fields) != len(b.fields) {
		return false
	}

	for _, f := range a.fields {
		v, ok := b.Get(f.Key)
		if !ok || !f.Value.Equals(v) {
			return false
		}
	}

	return true
}
