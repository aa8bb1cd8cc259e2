package buffer

import (
	"fmt"
	"math"

	"github.com/kvbuf/polyval/endian"
	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
)

// DecimalPackedSize returns the extent a decimal node of the given width
// would occupy.
func DecimalPackedSize(width format.DecimalWidth) int {
	size := width.Size()
	return 1 + format.Pad(size) + size
}

// WriteFloat32 writes a binary32 decimal node into dst[0:]. A decimal's
// payload is the one field stored in the host's native byte order rather
// than Wire order — it is documented as non-portable across endianness.
// A buffer containing decimals written on a big-endian host will read back
// wrong bit patterns on a little-endian host (and vice versa); every other
// field in this format byte-swaps through endian.Wire specifically so it
// doesn't share this limitation.
func WriteFloat32(dst []byte, v float32) int {
	dst[0] = format.PackDiscriminant(format.Decimal, uint8(format.Float32))
	off := 1 + format.Pad(format.Float32.Size())
	endian.Native.PutUint32(dst[off:], math.Float32bits(v))

	return off + format.Float32.Size()
}

// WriteFloat64 writes a binary64 decimal node into dst[0:], see WriteFloat32.
func WriteFloat64(dst []byte, v float64) int {
	dst[0] = format.PackDiscriminant(format.Decimal, uint8(format.Float64))
	off := 1 + format.Pad(format.Float64.Size())
	endian.Native.PutUint64(dst[off:], math.Float64bits(v))

	return off + format.Float64.Size()
}

// ReadDecimal reads a packed decimal node from the start of src, returning
// the value as a float64 (widened from binary32 if that was the stored
// width) along with the width actually stored and the node's extent.
func ReadDecimal(src []byte) (v float64, width format.DecimalWidth, extent int, err error) {
	kind, code := format.UnpackDiscriminant(src[0])
	if kind != format.Decimal {
		return 0, 0, 0, fmt.Errorf("%w: expected decimal, got %s", errs.ErrNotDecimal, kind)
	}

	width = format.DecimalWidth(code)
	size := width.Size()
	off := 1 + format.Pad(size)

	if width == format.Float32 {
		v = float64(math.Float32frombits(endian.Native.Uint32(src[off:])))
	} else {
		v = math.Float64frombits(endian.Native.Uint64(src[off:]))
	}

	return v, width, off + size, nil
}
