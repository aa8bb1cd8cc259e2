package buffer

import (
	"fmt"
	"unsafe"

	"github.com/kvbuf/polyval/endian"
	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
)

// maxStringLen is the largest string payload length representable in the
// widest {1,2,4}-byte length tier.
const maxStringLen = int64(^uint32(0))

// StringPackedSize returns the total extent (discriminant through the
// trailing NUL, inclusive of alignment padding) a string node holding s
// would occupy, and the width tier its length field would use. It is pure
// and total for any s the caller may legally construct.
func StringPackedSize(s string) (extent int, tier format.WidthTier, err error) {
	n := int64(len(s))
	if n > maxStringLen {
		return 0, 0, fmt.Errorf("%w: string length %d exceeds 4 GiB", errs.ErrStringTooLarge, n)
	}

	tier, ok := format.TierForMax(uint64(n))
	if !ok {
		return 0, 0, fmt.Errorf("%w: string length %d exceeds 4 GiB", errs.ErrStringTooLarge, n)
	}

	pad := format.Pad(tier.Size())
	extent = 1 + pad + tier.Size() + int(n) + 1 // discriminant, pad, length field, bytes, NUL

	return extent, tier, nil
}

// WriteString writes s's packed string node into dst[0:], using tier for
// the length field. dst must be at least as long as StringPackedSize
// reports. It returns the number of bytes written.
func WriteString(dst []byte, s string, tier format.WidthTier) int {
	dst[0] = format.PackDiscriminant(format.String, uint8(tier))
	off := 1 + format.Pad(tier.Size())

	format.PutUintTier(endian.Wire, dst[off:], uint64(len(s)), tier)
	off += tier.Size()

	copy(dst[off:], s)
	off += len(s)

	dst[off] = 0 // trailing NUL, a convenience for C interop, never validated

	return off + 1
}

// ReadString reads a packed string node from the start of src. It returns
// the decoded string (a view into src, no copy), the node's extent, and an
// error if src's discriminant is not a string.
func ReadString(src []byte) (s string, extent int, err error) {
	kind, code := format.UnpackDiscriminant(src[0])
	if kind != format.String {
		return "", 0, fmt.Errorf("%w: expected string, got %s", errs.ErrNotString, kind)
	}

	tier := format.WidthTier(code)
	off := 1 + format.Pad(tier.Size())

	n := format.UintTier(endian.Wire, src[off:], tier)
	off += tier.Size()

	payload := src[off : off+int(n)]
	s = unsafe.String(unsafe.SliceData(payload), len(payload))
	off += int(n)

	return s, off + 1, nil // +1 skips the trailing NUL
}
