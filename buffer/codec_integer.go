package buffer

import (
	"fmt"

	"github.com/kvbuf/polyval/endian"
	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
)

// IntegerPackedSize returns the extent an integer node holding v would
// occupy and the width it would use: the narrowest of {1,2,4,8} bytes
// that round-trips v.
func IntegerPackedSize(v int64) (extent int, width format.IntWidth) {
	width = format.IntWidthForValue(v)
	size := width.Size()

	return 1 + format.Pad(size) + size, width
}

// WriteInteger writes v's packed integer node into dst[0:] using width.
// It returns the number of bytes written.
func WriteInteger(dst []byte, v int64, width format.IntWidth) int {
	dst[0] = format.PackDiscriminant(format.Integer, uint8(width))
	size := width.Size()
	off := 1 + format.Pad(size)

	switch width {
	case format.IntWidth1:
		dst[off] = byte(v)
	case format.IntWidth2:
		endian.Wire.PutUint16(dst[off:], uint16(v))
	case format.IntWidth4:
		endian.Wire.PutUint32(dst[off:], uint32(v))
	default:
		endian.Wire.PutUint64(dst[off:], uint64(v))
	}

	return off + size
}

// ReadInteger reads a packed integer node from the start of src, sign-
// extending the stored width to 64 bits.
func ReadInteger(src []byte) (v int64, extent int, err error) {
	kind, code := format.UnpackDiscriminant(src[0])
	if kind != format.Integer {
		return 0, 0, fmt.Errorf("%w: expected integer, got %s", errs.ErrNotInteger, kind)
	}

	width := format.IntWidth(code)
	size := width.Size()
	off := 1 + format.Pad(size)

	switch width {
	case format.IntWidth1:
		v = int64(int8(src[off]))
	case format.IntWidth2:
		v = int64(int16(endian.Wire.Uint16(src[off:])))
	case format.IntWidth4:
		v = int64(int32(endian.Wire.Uint32(src[off:])))
	default:
		v = int64(endian.Wire.Uint64(src[off:]))
	}

	return v, off + size, nil
}
