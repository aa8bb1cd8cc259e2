package buffer

import (
	"fmt"
	"sort"

	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
	"github.com/kvbuf/polyval/heap"
)

// maxKeyLen is the largest object key length accepted by the lowering
// engine; a longer key is rejected rather than silently truncated.
const maxKeyLen = 64 * 1024

// layout is Pass 1's output for one node: everything Pass 2 needs to
// emit that node without re-walking the heap tree or re-deciding widths.
// Offsets recorded here are relative to the node's own start; Lower adds
// the node's absolute start as it descends in Pass 2.
type layout struct {
	node *heap.Node
	kind format.Kind

	extent int // total bytes this node occupies, alignment included

	strTier  format.WidthTier
	intWidth format.IntWidth
	decWidth format.DecimalWidth

	tier         format.WidthTier // aggregates only
	bodyStart    int              // aggregates only: offset of the first child, relative to node start
	order        []int            // objects only: indices into node.Fields(), sorted
	keyLayouts   []*layout        // objects only: parallel to order
	valueLayouts []*layout        // objects: parallel to order; arrays: parallel to node.Children()
	relOffsets   []uint64         // aggregates only: object key / array element offsets, relative to node start
}

// Lower turns a heap tree into an immutable, canonical Buffer. Only an
// object or array may be the root.
func Lower(root *heap.Node) (*Buffer, error) {
	if root == nil || !root.Kind().IsAggregate() {
		return nil, errs.ErrNakedScalarRoot
	}

	l, err := computeLayout(root)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, l.extent)
	emit(buf, 0, l)

	return newBuffer(buf), nil
}

// computeLayout is Pass 1: a depth-first postorder walk that computes
// each node's packed extent and, for aggregates, its width tier and
// child placement.
func computeLayout(n *heap.Node) (*layout, error) {
	switch n.Kind() {
	case format.String:
		s, _ := n.AsString()
		extent, tier, err := StringPackedSize(s)
		if err != nil {
			return nil, err
		}

		return &layout{node: n, kind: format.String, extent: extent, strTier: tier}, nil

	case format.Integer:
		v, _ := n.AsInteger()
		extent, width := IntegerPackedSize(v)

		return &layout{node: n, kind: format.Integer, extent: extent, intWidth: width}, nil

	case format.Decimal:
		width := n.DecimalWidth()
		extent := DecimalPackedSize(width)

		return &layout{node: n, kind: format.Decimal, extent: extent, decWidth: width}, nil

	case format.Boolean:
		return &layout{node: n, kind: format.Boolean, extent: BooleanPackedSize}, nil

	case format.Null:
		return &layout{node: n, kind: format.Null, extent: NullPackedSize}, nil

	case format.Object:
		return computeObjectLayout(n)

	case format.Array:
		return computeArrayLayout(n)

	default:
		return nil, fmt.Errorf("%w: unknown kind %s", errs.ErrKindMismatch, n.Kind())
	}
}

func computeObjectLayout(n *heap.Node) (*layout, error) {
	fields := n.Fields()

	order := make([]int, len(fields))
	for i := range order {
		order[i] = i
	}

	sort.Slice(order, func(i, j int) bool {
		return CompareKeys(fields[order[i]].Key, fields[order[j]].Key) < 0
	})

	keyLayouts := make([]*layout, len(order))
	valueLayouts := make([]*layout, len(order))
	relOffsets := make([]uint64, len(order))

	running := 0

	for i, idx := range order {
		key := fields[idx].Key
		if len(key) > maxKeyLen {
			return nil, fmt.Errorf("%w: key length %d", errs.ErrKeyTooLarge, len(key))
		}

		if i > 0 {
			prevKey := fields[order[i-1]].Key
			if CompareKeys(prevKey, key) == 0 {
				return nil, fmt.Errorf("%w: key %q", errs.ErrDuplicateKey, key)
			}
		}

		keyExtent, keyTier, err := StringPackedSize(key)
		if err != nil {
			return nil, err
		}
		keyLayouts[i] = &layout{kind: format.String, extent: keyExtent, strTier: keyTier}

		valueLayout, err := computeLayout(fields[idx].Value)
		if err != nil {
			return nil, err
		}
		valueLayouts[i] = valueLayout

		keyOffset := alignUp(running)
		relOffsets[i] = uint64(keyOffset)
		running = keyOffset + keyExtent

		valueOffset := alignUp(running)
		running = valueOffset + valueLayout.extent
	}

	bodySize := running

	tier, bodyStart, extent, ok := selectAggregateTier(bodySize, len(order))
	if !ok {
		return nil, fmt.Errorf("%w: object body size %d", errs.ErrAggregateTooLarge, bodySize)
	}

	// The wire offset vector records offsets from the node's own start,
	// but relOffsets above were computed relative to the body start,
	// which is only known once the tier — and so the header length — is
	// chosen. Shift them now.
	for i := range relOffsets {
		relOffsets[i] += uint64(bodyStart)
	}

	return &layout{
		node: n, kind: format.Object, extent: extent,
		tier: tier, bodyStart: bodyStart,
		order: order, keyLayouts: keyLayouts, valueLayouts: valueLayouts,
		relOffsets: relOffsets,
	}, nil
}

func computeArrayLayout(n *heap.Node) (*layout, error) {
	children := n.Children()

	valueLayouts := make([]*layout, len(children))
	relOffsets := make([]uint64, len(children))

	running := 0

	for i, c := range children {
		childLayout, err := computeLayout(c)
		if err != nil {
			return nil, err
		}
		valueLayouts[i] = childLayout

		offset := alignUp(running)
		relOffsets[i] = uint64(offset)
		running = offset + childLayout.extent
	}

	bodySize := running

	tier, bodyStart, extent, ok := selectAggregateTier(bodySize, len(children))
	if !ok {
		return nil, fmt.Errorf("%w: array body size %d", errs.ErrAggregateTooLarge, bodySize)
	}

	for i := range relOffsets {
		relOffsets[i] += uint64(bodyStart)
	}

	return &layout{
		node: n, kind: format.Array, extent: extent,
		tier: tier, bodyStart: bodyStart,
		valueLayouts: valueLayouts, relOffsets: relOffsets,
	}, nil
}

// emit is Pass 2: it writes l's packed form into dst starting at start,
// and recurses to emit each child at its previously-computed offset.
// The result is byte-identical for any two layouts built from
// structurally-equal trees: the canonical form.
func emit(dst []byte, start int, l *layout) {
	switch l.kind {
	case format.String:
		s, _ := l.node.AsString()
		WriteString(dst[start:], s, l.strTier)

	case format.Integer:
		v, _ := l.node.AsInteger()
		WriteInteger(dst[start:], v, l.intWidth)

	case format.Decimal:
		v, _ := l.node.AsDecimal()
		if l.decWidth == format.Float32 {
			WriteFloat32(dst[start:], float32(v))
		} else {
			WriteFloat64(dst[start:], v)
		}

	case format.Boolean:
		v, _ := l.node.AsBoolean()
		WriteBoolean(dst[start:], v)

	case format.Null:
		WriteNull(dst[start:])

	case format.Object:
		WriteObjectHeader(dst[start:], l.tier, uint64(l.extent), l.relOffsets)

		fields := l.node.Fields()
		for i, idx := range l.order {
			keyOff := start + int(l.relOffsets[i])
			WriteString(dst[keyOff:], fields[idx].Key, l.keyLayouts[i].strTier)

			valueOff := alignUp(int(l.relOffsets[i]) + l.keyLayouts[i].extent)
			emit(dst, start+valueOff, l.valueLayouts[i])
		}

	case format.Array:
		WriteArrayHeader(dst[start:], l.tier, uint64(l.extent), l.relOffsets)

		for i, vl := range l.valueLayouts {
			elemOff := start + int(l.relOffsets[i])
			emit(dst, elemOff, vl)
		}
	}
}
