package buffer

import (
	"fmt"

	"github.com/kvbuf/polyval/endian"
	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
)

// arrayHeaderLen mirrors objectHeaderLen but without key nodes: just the
// offset vector pointing straight at elements.
func arrayHeaderLen(tier format.WidthTier, childCount int) int {
	size := tier.Size()
	return 1 + format.Pad(size) + 2*size + childCount*size
}

// ArrayHeaderSize returns the total header length for an array with
// childCount elements at the given width tier.
func ArrayHeaderSize(tier format.WidthTier, childCount int) int {
	return arrayHeaderLen(tier, childCount)
}

// WriteArrayHeader writes an array node's discriminant, padding,
// total_extent, child_count and offset vector into dst[0:]. offsets[i] is
// the byte offset from the node's start to the i-th element, in
// insertion order. It returns the offset at which the first element must
// be written.
func WriteArrayHeader(dst []byte, tier format.WidthTier, totalExtent uint64, offsets []uint64) int {
	dst[0] = format.PackDiscriminant(format.Array, uint8(tier))
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

// ReadArrayHeader decodes an array node's header starting at src[0]. See
// ReadObjectHeader for the untrusted-input caveat.
func ReadArrayHeader(src []byte) (tier format.WidthTier, totalExtent uint64, childCount int, headerLen int, err error) {
	kind, code := format.UnpackDiscriminant(src[0])
	if kind != format.Array {
		return 0, 0, 0, 0, fmt.Errorf("%w: expected array, got %s", errs.ErrNotArray, kind)
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

func arrayVectorStart(tier format.WidthTier) int {
	size := tier.Size()
	return 1 + format.Pad(size) + 2*size
}

// ArrayElementOffset returns the byte offset (relative to src) of the
// element at index, or an error if index is out of range. src must begin
// at the array's discriminant.
func ArrayElementOffset(src []byte, index int) (offset int, err error) {
	tier, _, childCount, _, err := ReadArrayHeader(src)
	if err != nil {
		return 0, err
	}

	if index < 0 || index >= childCount {
		return 0, fmt.Errorf("%w: index %d, size %d", errs.ErrIndexOutOfRange, index, childCount)
	}

	vectorStart := arrayVectorStart(tier)

	return int(format.UintTier(endian.Wire, src[vectorStart+index*tier.Size():], tier)), nil
}
