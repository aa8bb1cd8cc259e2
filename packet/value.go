package packet

import (
	"fmt"
	"sort"

	"github.com/kvbuf/polyval/buffer"
	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
	"github.com/kvbuf/polyval/heap"
)

// Value is a tagged union over exactly one of a *heap.Node or a
// buffer.Cursor. The zero Value is not useful; construct one with
// FromHeap or FromBuffer.
type Value struct {
	node    *heap.Node
	cursor  buffer.Cursor
	buf     *buffer.Buffer
	lowered bool
}

// FromHeap wraps a mutable heap tree as a Value.
func FromHeap(n *heap.Node) Value {
	return Value{node: n}
}

// FromBuffer wraps a cursor into an already-lowered buffer as a Value.
func FromBuffer(buf *buffer.Buffer) Value {
	return Value{buf: buf, cursor: buf.Root(), lowered: true}
}

// FromCursor wraps an arbitrary cursor (e.g. a child obtained by walking
// a larger buffer) as a Value.
func FromCursor(c buffer.Cursor) Value {
	return Value{cursor: c, lowered: true}
}

// IsLowered reports whether v is backed by a buffer cursor rather than a
// live heap node.
func (v Value) IsLowered() bool { return v.lowered }

// Buffer returns the underlying *buffer.Buffer when v was constructed via
// FromBuffer (the root of a lowered tree), or nil otherwise — including
// when v is a buffer-backed child Value obtained from Get/At, which
// carries only a Cursor, not the owning Buffer.
func (v Value) Buffer() *buffer.Buffer { return v.buf }

// Kind reports v's value kind, regardless of which representation backs it.
func (v Value) Kind() format.Kind {
	if v.lowered {
		return v.cursor.Kind()
	}

	return v.node.Kind()
}

// Lower switches a heap-backed Value to its buffer form. It is a no-op,
// returning v unchanged, if v is already
// lowered. Only an object or array may be lowered; lowering a
// scalar-backed Value fails the same way buffer.Lower does.
func (v Value) Lower() (Value, error) {
	if v.lowered {
		return v, nil
	}

	buf, err := buffer.Lower(v.node)
	if err != nil {
		return Value{}, err
	}

	return FromBuffer(buf), nil
}

// AsString returns v's string payload.
func (v Value) AsString() (string, error) {
	if v.lowered {
		return v.cursor.AsString()
	}

	return v.node.AsString()
}

// AsInteger returns v's integer payload.
func (v Value) AsInteger() (int64, error) {
	if v.lowered {
		return v.cursor.AsInteger()
	}

	return v.node.AsInteger()
}

// AsDecimal returns v's decimal payload widened to float64.
func (v Value) AsDecimal() (float64, error) {
	if v.lowered {
		return v.cursor.AsDecimal()
	}

	return v.node.AsDecimal()
}

// AsBoolean returns v's boolean payload.
func (v Value) AsBoolean() (bool, error) {
	if v.lowered {
		return v.cursor.AsBoolean()
	}

	return v.node.AsBoolean()
}

// IsNull reports whether v holds a null.
func (v Value) IsNull() bool {
	return v.Kind() == format.Null
}

// Len reports the number of children for an aggregate, or the byte
// length of a string.
func (v Value) Len() (int, error) {
	if v.lowered {
		return v.cursor.Size()
	}

	switch v.node.Kind() {
	case format.Object, format.Array, format.String:
		return v.node.Len(), nil
	default:
		return 0, fmt.Errorf("%w: size undefined for %s", errs.ErrKindMismatch, v.node.Kind())
	}
}

// Get returns the value stored under key in an object Value.
func (v Value) Get(key string) (Value, bool, error) {
	if v.lowered {
		child, found, err := v.cursor.Get(key)
		if err != nil || !found {
			return Value{}, found, err
		}

		return FromCursor(child), true, nil
	}

	if v.node.Kind() != format.Object {
		return Value{}, false, fmt.Errorf("%w: Get on non-object", errs.ErrNotObject)
	}

	child, ok := v.node.Get(key)
	if !ok {
		return Value{}, false, nil
	}

	return FromHeap(child), true, nil
}

// At returns the element at index in an array Value.
func (v Value) At(index int) (Value, error) {
	if v.lowered {
		child, err := v.cursor.At(index)
		if err != nil {
			return Value{}, err
		}

		return FromCursor(child), nil
	}

	child, err := v.node.At(index)
	if err != nil {
		return Value{}, err
	}

	return FromHeap(child), nil
}

// Keys returns an object Value's keys in the canonical sorted order
// (length, then bytes) regardless of which representation backs v: a
// buffer-backed object is already stored that way, a heap-backed one is
// sorted here without mutating the underlying node.
func (v Value) Keys() ([]string, error) {
	if v.lowered {
		if v.cursor.Kind() != format.Object {
			return nil, fmt.Errorf("%w: Keys on non-object", errs.ErrNotObject)
		}

		var keys []string
		for k, err := range v.cursor.Keys() {
			if err != nil {
				return nil, err
			}

			keys = append(keys, k)
		}

		return keys, nil
	}

	if v.node.Kind() != format.Object {
		return nil, fmt.Errorf("%w: Keys on non-object", errs.ErrNotObject)
	}

	fields := v.node.Fields()
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}

	sort.Slice(keys, func(i, j int) bool { return buffer.CompareKeys(keys[i], keys[j]) < 0 })

	return keys, nil
}

// Equals reports whether v and other represent the same value, comparing
// correctly across any combination of heap- and buffer-backed
// representations: a
// heap-backed side is lowered virtually, by structural recursion, with
// no allocation and without mutating v or other.
func (v Value) Equals(other Value) bool {
	switch {
	case v.lowered && other.lowered:
		return v.cursor.Equals(other.cursor)
	case !v.lowered && !other.lowered:
		return v.node.Equals(other.node)
	case v.lowered && !other.lowered:
		return cursorEqualsHeap(v.cursor, other.node)
	default:
		return cursorEqualsHeap(other.cursor, v.node)
	}
}

// cursorEqualsHeap compares a buffer cursor against a heap node
// structurally, without lowering the heap side into an allocated
// buffer: it recurses over both representations in lockstep.
func cursorEqualsHeap(c buffer.Cursor, n *heap.Node) bool {
	if n == nil {
		return false
	}
	if c.Kind() != n.Kind() {
		return false
	}

	switch n.Kind() {
	case format.String:
		cs, err := c.AsString()
		if err != nil {
			return false
		}
		ns, _ := n.AsString()

		return cs == ns

	case format.Integer:
		cv, err := c.AsInteger()
		if err != nil {
			return false
		}
		nv, _ := n.AsInteger()

		return cv == nv

	case format.Decimal:
		cv, err := c.AsDecimal()
		if err != nil {
			return false
		}
		cw, err := c.DecimalWidth()
		if err != nil {
			return false
		}
		nv, _ := n.AsDecimal()

		// Width is part of identity here too — see heap.Node.Equals.
		return cv == nv && cw == n.DecimalWidth()

	case format.Boolean:
		cv, err := c.AsBoolean()
		if err != nil {
			return false
		}
		nv, _ := n.AsBoolean()

		return cv == nv

	case format.Null:
		return true

	case format.Array:
		children := n.Children()
		count, err := c.Size()
		if err != nil || count != len(children) {
			return false
		}

		for i, child := range children {
			ce, err := c.At(i)
			if err != nil || !cursorEqualsHeap(ce, child) {
				return false
			}
		}

		return true

	case format.Object:
		fields := n.Fields()
		count, err := c.Size()
		if err != nil || count != len(fields) {
			return false
		}

		for _, f := range fields {
			ce, found, err := c.Get(f.Key)
			if err != nil || !found || !cursorEqualsHeap(ce, f.Value) {
				return false
			}
		}

		return true

	default:
		return false
	}
}
