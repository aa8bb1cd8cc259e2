package heap

import (
	"fmt"

	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
	"github.com/kvbuf/polyval/internal/keyset"
)

// Field is one key/value entry of an object Node, in the order it was
// inserted via Set.
type Field struct {
	Key   string
	Value *Node
}

// Node is a tagged-union value: exactly one of its payload fields is
// meaningful, selected by Kind(). Object and array children are plain
// *Node pointers: nothing prevents the same child from being inserted
// under two parents, or twice under one. Set and Append only break
// cycles, by storing a Clone of a value whose subtree contains the
// receiver.
type Node struct {
	kind format.Kind

	str      string
	i64      int64
	f64      float64
	decWidth format.DecimalWidth
	boolean  bool

	fields []Field
	keys   *keyset.Set

	children []*Node
}

// NewObject returns an empty object Node.
func NewObject() *Node {
	return &Node{kind: format.Object, keys: keyset.New()}
}

// NewArray returns an empty array Node.
func NewArray() *Node {
	return &Node{kind: format.Array}
}

// NewString returns a string Node holding s.
func NewString(s string) *Node {
	return &Node{kind: format.String, str: s}
}

// NewInteger returns an integer Node holding v.
func NewInteger(v int64) *Node {
	return &Node{kind: format.Integer, i64: v}
}

// NewFloat32 returns a decimal Node holding v as a binary32. Unlike
// integers, decimals do not auto-narrow: the width a caller constructs
// with is the width that is stored.
func NewFloat32(v float32) *Node {
	return &Node{kind: format.Decimal, f64: float64(v), decWidth: format.Float32}
}

// NewFloat64 returns a decimal Node holding v as a binary64.
func NewFloat64(v float64) *Node {
	return &Node{kind: format.Decimal, f64: v, decWidth: format.Float64}
}

// NewBoolean returns a boolean Node holding v.
func NewBoolean(v bool) *Node {
	return &Node{kind: format.Boolean, boolean: v}
}

// NewNull returns a null Node.
func NewNull() *Node {
	return &Node{kind: format.Null}
}

// Kind reports the node's value kind.
func (n *Node) Kind() format.Kind { return n.kind }

func (n *Node) IsObject() bool  { return n.kind == format.Object }
func (n *Node) IsArray() bool   { return n.kind == format.Array }
func (n *Node) IsString() bool  { return n.kind == format.String }
func (n *Node) IsInteger() bool { return n.kind == format.Integer }
func (n *Node) IsDecimal() bool { return n.kind == format.Decimal }
func (n *Node) IsBoolean() bool { return n.kind == format.Boolean }
func (n *Node) IsNull() bool    { return n.kind == format.Null }

// AsString returns the node's string payload.
func (n *Node) AsString() (string, error) {
	if n.kind != format.String {
		return "", fmt.Errorf("%w: node is %s", errs.ErrNotString, n.kind)
	}

	return n.str, nil
}

// AsInteger returns the node's integer payload. Reading a decimal node
// this way fails with kind-mismatch — conversions are never implicit.
func (n *Node) AsInteger() (int64, error) {
	if n.kind != format.Integer {
		return 0, fmt.Errorf("%w: node is %s", errs.ErrNotInteger, n.kind)
	}

	return n.i64, nil
}

// AsDecimal returns the node's decimal payload widened to float64.
func (n *Node) AsDecimal() (float64, error) {
	if n.kind != format.Decimal {
		return 0, fmt.Errorf("%w: node is %s", errs.ErrNotDecimal, n.kind)
	}

	return n.f64, nil
}

// DecimalWidth reports which IEEE 754 width a decimal node was
// constructed with. Only meaningful when IsDecimal() is true.
func (n *Node) DecimalWidth() format.DecimalWidth { return n.decWidth }

// AsBoolean returns the node's boolean payload.
func (n *Node) AsBoolean() (bool, error) {
	if n.kind != format.Boolean {
		return false, fmt.Errorf("%w: node is %s", errs.ErrNotBoolean, n.kind)
	}

	return n.boolean, nil
}

// Len reports the number of children for an aggregate, or the byte length
// of a string. It is undefined (returns 0) for other scalar kinds.
func (n *Node) Len() int {
	switch n.kind {
	case format.Object:
		return len(n.fields)
	case format.Array:
		return len(n.children)
	case format.String:
		return len(n.str)
	default:
		return 0
	}
}

// Fields returns the object's key/value pairs in insertion order. Fields
// panics if the node is not an object.
func (n *Node) Fields() []Field {
	if n.kind != format.Object {
		panic("heap: Fields called on non-object node")
	}

	return n.fields
}

// Children returns the array's elements in insertion order. Children
// panics if the node is not an array.
func (n *Node) Children() []*Node {
	if n.kind != format.Array {
		panic("heap: Children called on non-array node")
	}

	return n.children
}

// Get returns the value stored under key in an object, or false if the
// object has no such key. Get panics if the node is not an object.
func (n *Node) Get(key string) (*Node, bool) {
	if n.kind != format.Object {
		panic("heap: Get called on non-object node")
	}

	for _, f := range n.fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return nil, false
}

// At returns the element at index in an array. At panics if the node is
// not an array.
func (n *Node) At(index int) (*Node, error) {
	if n.kind != format.Array {
		panic("heap: At called on non-array node")
	}

	if index < 0 || index >= len(n.children) {
		return nil, fmt.Errorf("%w: index %d, size %d", errs.ErrIndexOutOfRange, index, len(n.children))
	}

	return n.children[index], nil
}

// Set inserts or would overwrite key/value in an object. A duplicate key
// is rejected rather than silently overwritten. A value that would introduce a cycle — v is n itself, or v's
// subtree already contains n — is stored as a structural copy instead,
// breaking the cycle before it can form.
// Set panics if n is not an object.
func (n *Node) Set(key string, v *Node) error {
	if n.kind != format.Object {
		panic("heap: Set called on non-object node")
	}

	if n.keys.Contains(key) {
		return fmt.Errorf("%w: key %q", errs.ErrDuplicateKey, key)
	}

	if containsNode(v, n) {
		v = v.Clone()
	}

	n.fields = append(n.fields, Field{Key: key, Value: v})
	n.keys.Add(key)

	return nil
}

// Append adds v as the array's next element, in insertion order. A value
// that would introduce a cycle is stored as a structural copy, see Set.
// Append panics if n is not an array.
func (n *Node) Append(v *Node) error {
	if n.kind != format.Array {
		panic("heap: Append called on non-array node")
	}

	if containsNode(v, n) {
		v = v.Clone()
	}

	n.children = append(n.children, v)

	return nil
}

// containsNode reports whether target appears anywhere in root's subtree
// (including root itself), by pointer identity.
func containsNode(root, target *Node) bool {
	if root == nil {
		return false
	}
	if root == target {
		return true
	}

	switch root.kind {
	case format.Object:
		for _, f := range root.fields {
			if containsNode(f.Value, target) {
				return true
			}
		}
	case format.Array:
		for _, c := range root.children {
			if containsNode(c, target) {
				return true
			}
		}
	}

	return false
}
