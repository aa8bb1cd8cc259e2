package buffer

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
)

// Cursor is a borrowed (byte slice, offset) pair into a validated buffer.
// It is a plain value — copying a Cursor is always cheap and never
// extends or shares ownership of the bytes it reads from. The zero
// Cursor is not useful; obtain one from a Buffer's Root method or from
// another Cursor's accessors.
type Cursor struct {
	data   []byte
	offset int
}

// Kind reports the node's value kind in O(1).
func (c Cursor) Kind() format.Kind {
	kind, _ := format.UnpackDiscriminant(c.data[c.offset])
	return kind
}

func (c Cursor) node() []byte { return c.data[c.offset:] }

// AsString returns the cursor's string payload as a zero-copy view into
// the underlying buffer.
func (c Cursor) AsString() (string, error) {
	s, _, err := ReadString(c.node())
	if err != nil {
		return "", err
	}

	return s, nil
}

// AsInteger returns the cursor's integer payload, sign-extended to 64 bits.
func (c Cursor) AsInteger() (int64, error) {
	v, _, err := ReadInteger(c.node())
	if err != nil {
		return 0, err
	}

	return v, nil
}

// AsDecimal returns the cursor's decimal payload widened to float64.
func (c Cursor) AsDecimal() (float64, error) {
	v, _, _, err := ReadDecimal(c.node())
	if err != nil {
		return 0, err
	}

	return v, nil
}

// DecimalWidth reports which IEEE 754 width a decimal node was stored
// with, mirroring heap.Node.DecimalWidth. Only meaningful when
// Kind() == format.Decimal.
func (c Cursor) DecimalWidth() (format.DecimalWidth, error) {
	_, width, _, err := ReadDecimal(c.node())
	return width, err
}

// AsBoolean returns the cursor's boolean payload.
func (c Cursor) AsBoolean() (bool, error) {
	v, _, err := ReadBoolean(c.node())
	if err != nil {
		return false, err
	}

	return v, nil
}

// AsNull reports whether the cursor points at a null node.
func (c Cursor) AsNull() error {
	_, err := ReadNull(c.node())
	return err
}

// Size reports the number of children for an aggregate cursor, or the
// byte length of a string cursor. It is undefined (returns 0, an error)
// for scalars of other kinds.
func (c Cursor) Size() (int, error) {
	switch c.Kind() {
	case format.Object:
		_, _, n, _, err := ReadObjectHeader(c.node())
		return n, err
	case format.Array:
		_, _, n, _, err := ReadArrayHeader(c.node())
		return n, err
	case format.String:
		s, err := c.AsString()
		return len(s), err
	default:
		return 0, fmt.Errorf("%w: size undefined for %s", errs.ErrKindMismatch, c.Kind())
	}
}

// Get returns the child cursor stored under key in an object cursor, or
// found=false if no such key exists. Get
// returns an error if c is not an object.
func (c Cursor) Get(key string) (child Cursor, found bool, err error) {
	if c.Kind() != format.Object {
		return Cursor{}, false, fmt.Errorf("%w: Get on non-object", errs.ErrNotObject)
	}

	valueOff, ok := FindObjectKey(c.node(), key)
	if !ok {
		return Cursor{}, false, nil
	}

	return Cursor{data: c.data, offset: c.offset + valueOff}, true, nil
}

// At returns the child cursor at index in an array cursor. At returns an
// error if c is not an array, or if index is out of range.
func (c Cursor) At(index int) (Cursor, error) {
	if c.Kind() != format.Array {
		return Cursor{}, fmt.Errorf("%w: At on non-array", errs.ErrNotArray)
	}

	off, err := ArrayElementOffset(c.node(), index)
	if err != nil {
		return Cursor{}, err
	}

	return Cursor{data: c.data, offset: c.offset + off}, nil
}

// iterState is the cursor's own iteration state machine:
// fresh, advanced to child k, or exhausted. It is not exposed directly —
// Values, Keys and Entries below adapt it to idiomatic range-over-func
// iterators, each returning an iter.Seq2.
type iterState struct {
	count     int
	k         int
	exhausted bool
}

func newIterState(count int) *iterState {
	return &iterState{count: count}
}

// next advances the state machine. From exhausted it is a no-op and
// returns false; there is no rewind — callers that need to iterate again
// re-derive a fresh iterator from the parent cursor.
func (s *iterState) next() (int, bool) {
	if s.exhausted {
		return 0, false
	}

	if s.k >= s.count {
		s.exhausted = true
		return 0, false
	}

	k := s.k
	s.k++

	return k, true
}

// Values returns an iterator over an array cursor's elements, in
// insertion order.
func (c Cursor) Values() iter.Seq2[Cursor, error] {
	return func(yield func(Cursor, error) bool) {
		count, err := c.Size()
		if err != nil {
			yield(Cursor{}, err)
			return
		}

		state := newIterState(count)
		for {
			k, ok := state.next()
			if !ok {
				return
			}

			child, err := c.At(k)
			if !yield(child, err) {
				return
			}
		}
	}
}

// Keys returns an iterator over an object cursor's keys, in the
// canonical sorted order they are stored in.
func (c Cursor) Keys() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		tier, _, count, _, err := ReadObjectHeader(c.node())
		if err != nil {
			yield("", err)
			return
		}

		vectorStart := objectVectorStart(tier)

		state := newIterState(count)
		for {
			k, ok := state.next()
			if !ok {
				return
			}

			keyOff := int(ObjectOffsetAt(c.node(), tier, vectorStart, k))
			key, _, err := ReadString(c.data[c.offset+keyOff:])
			if !yield(key, err) {
				return
			}
		}
	}
}

// Entries returns a paired key/value iterator over an object cursor, in
// sorted key order.
func (c Cursor) Entries() iter.Seq2[string, Cursor] {
	return func(yield func(string, Cursor) bool) {
		tier, _, count, _, err := ReadObjectHeader(c.node())
		if err != nil {
			return
		}

		vectorStart := objectVectorStart(tier)

		state := newIterState(count)
		for {
			k, ok := state.next()
			if !ok {
				return
			}

			keyOff := int(ObjectOffsetAt(c.node(), tier, vectorStart, k))
			key, keyExtent, err := ReadString(c.data[c.offset+keyOff:])
			if err != nil {
				return
			}

			valueOff := alignUp(keyOff + keyExtent)
			child := Cursor{data: c.data, offset: c.offset + valueOff}

			if !yield(key, child) {
				return
			}
		}
	}
}

// Equals reports whether c and other represent the same value, defined
// as byte-equal on their canonical representations. Mixed
// heap/buffer comparisons are not this method's job — packet.Value
// handles that by lowering the heap side virtually.
func (c Cursor) Equals(other Cursor) bool {
	cn, on := c.node(), other.node()

	ce, err := nodeExtent(cn)
	if err != nil {
		return false
	}
	oe, err := nodeExtent(on)
	if err != nil {
		return false
	}

	if ce != oe {
		return false
	}

	return bytes.Equal(cn[:ce], on[:oe])
}

// nodeExtent returns the total byte length of the node at the start of
// data, used by Equals to slice out exactly the bytes that belong to it.
func nodeExtent(data []byte) (int, error) {
	kind, code := format.UnpackDiscriminant(data[0])

	switch kind {
	case format.Object:
		_, extent, _, _, err := ReadObjectHeader(data)
		return int(extent), err
	case format.Array:
		_, extent, _, _, err := ReadArrayHeader(data)
		return int(extent), err
	case format.String:
		_, extent, err := ReadString(data)
		return extent, err
	case format.Integer:
		_, extent, err := ReadInteger(data)
		return extent, err
	case format.Decimal:
		_, _, extent, err := ReadDecimal(data)
		return extent, err
	case format.Boolean:
		_, extent, err := ReadBoolean(data)
		return extent, err
	case format.Null:
		return ReadNull(data)
	default:
		return 0, fmt.Errorf("%w: byte 0x%02x", errs.ErrInvalidDiscriminant, code)
	}
}
