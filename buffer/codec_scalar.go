package buffer

import (
	"fmt"

	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
)

// boolFalse and boolTrue pack a boolean's value into the discriminant's width-code bits
// rather than a payload byte: true/false need no storage of their own.
const (
	boolFalse uint8 = 0
	boolTrue  uint8 = 1
)

// BooleanPackedSize is always 1: a boolean node is the discriminant alone.
const BooleanPackedSize = 1

// NullPackedSize is always 1: a null node is the discriminant alone.
const NullPackedSize = 1

// WriteBoolean writes a packed boolean node into dst[0:]. It returns 1,
// the number of bytes written.
func WriteBoolean(dst []byte, v bool) int {
	code := boolFalse
	if v {
		code = boolTrue
	}

	dst[0] = format.PackDiscriminant(format.Boolean, code)

	return 1
}

// ReadBoolean reads a packed boolean node from the start of src.
func ReadBoolean(src []byte) (v bool, extent int, err error) {
	kind, code := format.UnpackDiscriminant(src[0])
	if kind != format.Boolean {
		return false, 0, fmt.Errorf("%w: expected boolean, got %s", errs.ErrNotBoolean, kind)
	}

	return code == boolTrue, 1, nil
}

// WriteNull writes a packed null node into dst[0:]. It returns 1, the
// number of bytes written.
func WriteNull(dst []byte) int {
	dst[0] = format.PackDiscriminant(format.Null, 0)
	return 1
}

// ReadNull reads a packed null node from the start of src, confirming its
// discriminant is Null.
func ReadNull(src []byte) (extent int, err error) {
	kind, _ := format.UnpackDiscriminant(src[0])
	if kind != format.Null {
		return 0, fmt.Errorf("%w: expected null, got %s", errs.ErrKindMismatch, kind)
	}

	return 1, nil
}
