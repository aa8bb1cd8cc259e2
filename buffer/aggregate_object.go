package buffer

import (
	"fmt"

	"github.com/kvbuf/polyval/endian"
	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
)

// CompareKeys implements the total order object keys are sorted and
// searched under: shorter keys sort first, and keys of equal length
// compare byte-wise. See format.CompareKeys, which this delegates to —
// the heap package needs the identical order and cannot import buffer.
func CompareKeys(a, b string) int {
	return format.CompareKeys(a, b)
}

// objectHeaderLen returns the byte offset, relative to the node's
// discriminant, at which the first (key_node, value_node) pair begins:
// discriminant + alignment padding + total_extent + child_count + the
// child_count-entry offset vector, each field sized per tier.
func objectHeaderLen(tier format.WidthTier, childCount int) int {
	size := tier.Size()
	return 1 + format.Pad(size) + 2*size + childCount*size
}

// ObjectHeaderSize returns the total header length (everything before the
// first key node) for an object with childCount entries at the given
// width tier.
func ObjectHeaderSize(tier format.WidthTier, childCount int) int {
	return objectHeaderLen(tier, childCount)
}

// WriteObjectHeader writes an object node's discriminant, padding,
// total_extent, child_count and offset vector into dst[0:]. offsets[i] is
// the byte offset from the node's start to the i-th key node, and must
// already reflect the canonical sorted-key order (Pass 1 sorts before
// Pass 2 emits). It returns objectHeaderLen(tier, len(offsets)),
// the offset at which the first key node must be written.
func WriteObjectHeader(dst []byte, tier format.WidthTier, totalExtent uint64, offsets []uint64) int {
	dst[0] = format.PackDiscriminant(format.Object, uint8(tier))
	size := tier.Size()
	off := 1 + format.Pad(size)

	format.PutUintTier(endian.Wire, dst[off:], totalExtent, tier)
	off += size

	format.PutUintTier(endian.Wire, dst[off:], uint64(len(offsets)), tier)
	off += size

	for _, o := range offsets {
		format.PutUintTier(endian.Wire, dst[off:], o, tier)
		off += size
	}

	return off
}

// ReadObjectHeader decodes an object node's header starting at src[0]. It
// returns the width tier, total extent, child count, and the raw header
// length (discriminant through the last offset-vector entry — not
// aligned up to a child's start, since the offset vector's own entries
// already carry node-start-relative offsets and no further computation
// is needed to reach a child). It does not validate that the advertised
// lengths actually fit in src — callers that accept untrusted input must
// run the buffer validator first.
func ReadObjectHeader(src []byte) (tier format.WidthTier, totalExtent uint64, childCount int, headerLen int, err error) {
	kind, code := format.UnpackDiscriminant(src[0])
	if kind != format.Object {
		return 0, 0, 0, 0, fmt.Errorf("%w: expected object, got %s", errs.ErrNotObject, kind)
	}

	tier = format.WidthTier(code)
	size := tier.Size()
	off := 1 + format.Pad(size)

	totalExtent = format.UintTier(endian.Wire, src[off:], tier)
	off += size

	childCount = int(format.UintTier(endian.Wire, src[off:], tier))
	off += size

	return tier, totalExtent, childCount, off + childCount*size, nil
}

// ObjectOffsetAt reads the i-th entry of an object's offset vector, which
// begins at vectorStart (the value objectHeaderLen would report for 0
// children, i.e. right after child_count).
func ObjectOffsetAt(src []byte, tier format.WidthTier, vectorStart, i int) uint64 {
	size := tier.Size()
	return format.UintTier(endian.Wire, src[vectorStart+i*size:], tier)
}

// objectVectorStart returns the offset at which an object's offset vector
// begins, given its tier: right after total_extent and child_count.
func objectVectorStart(tier format.WidthTier) int {
	size := tier.Size()
	return 1 + format.Pad(size) + 2*size
}

// FindObjectKey binary-searches an object node's offset vector for key,
// using CompareKeys. src must begin at the
// object's discriminant. It returns the byte offset (relative to src) of
// the matching value node, or found=false if no entry matches.
func FindObjectKey(src []byte, key string) (valueOffset int, found bool) {
	tier, _, childCount, _, err := ReadObjectHeader(src)
	if err != nil {
		return 0, false
	}

	vectorStart := objectVectorStart(tier)

	lo, hi := 0, childCount
	for lo < hi {
		mid := (lo + hi) / 2
		keyOff := int(ObjectOffsetAt(src, tier, vectorStart, mid))

		k, keyExtent, err := ReadString(src[keyOff:])
		if err != nil {
			return 0, false
		}

		switch c := CompareKeys(key, k); {
		case c == 0:
			return alignUp(keyOff + keyExtent), true
		case c < 0:
			hi = mid
		default:
			lo = mid + 1
		}
	}

	return 0, false
}
