package format

import "math"

// WidthTier selects the physical byte width used for aggregate headers
// (extent, child count, offset vector) and for string length fields.
// Three tiers keep small values small rather than always paying for the
// largest possible header.
type WidthTier uint8

const (
	Width1 WidthTier = iota
	Width2
	Width4
)

// IntWidth selects the physical byte width used to store an integer's
// sign-extended payload.
type IntWidth uint8

const (
	IntWidth1 IntWidth = iota
	IntWidth2
	IntWidth4
	IntWidth8
)

// DecimalWidth selects between the two IEEE 754 physical encodings a
// decimal node may use.
type DecimalWidth uint8

const (
	Float32 DecimalWidth = iota
	Float64
)

const (
	kindShift    = 5
	widthMask    = 0x1F
	discMaxWidth = 0x1F
)

// PackDiscriminant combines a Kind and a kind-specific width code into the
// single leading byte of a packed node.
func PackDiscriminant(k Kind, code uint8) byte {
	return byte(k)<<kindShift | (code & widthMask)
}

// UnpackDiscriminant splits a discriminant byte back into its Kind and
// width code.
func UnpackDiscriminant(b byte) (Kind, uint8) {
	return Kind(b >> kindShift), b & widthMask
}

// Size returns the byte width a WidthTier occupies for extent/count/offset
// fields: 1, 2 or 4 bytes.
func (t WidthTier) Size() int {
	switch t {
	case Width1:
		return 1
	case Width2:
		return 2
	default:
		return 4
	}
}

// Max returns the largest unsigned value representable in this tier.
func (t WidthTier) Max() uint64 {
	switch t {
	case Width1:
		return math.MaxUint8
	case Width2:
		return math.MaxUint16
	default:
		return math.MaxUint32
	}
}

// Next returns the next wider tier. Calling Next on Width4 returns Width4;
// callers must check Max() before widening to detect structural overflow.
func (t WidthTier) Next() WidthTier {
	if t >= Width4 {
		return Width4
	}

	return t + 1
}

// TierForMax returns the narrowest tier that can represent maxValue.
// If maxValue exceeds the 32-bit tier's range, ok is false: the caller
// must reject the structure (aggregate/string too large).
func TierForMax(maxValue uint64) (tier WidthTier, ok bool) {
	switch {
	case maxValue <= Width1.Max():
		return Width1, true
	case maxValue <= Width2.Max():
		return Width2, true
	case maxValue <= Width4.Max():
		return Width4, true
	default:
		return Width4, false
	}
}

// Size returns the byte width an IntWidth occupies.
func (w IntWidth) Size() int {
	switch w {
	case IntWidth1:
		return 1
	case IntWidth2:
		return 2
	case IntWidth4:
		return 4
	default:
		return 8
	}
}

// IntWidthForValue returns the narrowest signed width that round-trips v.
func IntWidthForValue(v int64) IntWidth {
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return IntWidth1
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return IntWidth2
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return IntWidth4
	default:
		return IntWidth8
	}
}

// Size returns the byte width a DecimalWidth occupies: 4 or 8.
func (w DecimalWidth) Size() int {
	if w == Float32 {
		return 4
	}

	return 8
}

// Pad returns the number of zero-padding bytes needed so that a field of
// the given byte width starts at an offset that is a multiple of width,
// given that the field would otherwise start right after a 1-byte
// discriminant (offset 1 relative to an already width-aligned node start).
// Widths of 1 never need padding.
func Pad(width int) int {
	if width <= 1 {
		return 0
	}

	return (width - (1 % width)) % width
}
