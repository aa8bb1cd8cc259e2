package buffer

import (
	"fmt"

	"github.com/kvbuf/polyval/endian"
	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
)

// MaxValidationDepth bounds the validator's recursion so a pathological
// (or adversarial) buffer cannot exhaust the stack.
const MaxValidationDepth = 256

// Validate reports whether data is a well-formed packed buffer: every
// node reachable from the root lies within data, every offset is
// properly aligned, and object keys are in strict ascending order. It
// never dereferences outside data, and never panics on malformed input
// — the error return is the only signal.
//
// A valid buffer satisfies: the root's reported total_extent equals
// len(data), every byte in [0, total_extent) is reachable by at most one
// node, and every node starts at a properly aligned offset.
func Validate(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty buffer", errs.ErrTruncated)
	}

	end, err := validateNode(data, 0, 0)
	if err != nil {
		return err
	}

	if end != len(data) {
		return fmt.Errorf("%w: root extent %d, buffer length %d", errs.ErrSizeMismatch, end, len(data))
	}

	return nil
}

// validateNode validates the node starting at offset, returning the
// offset one past its last byte. depth counts aggregate nesting so
// MaxValidationDepth can be enforced.
func validateNode(data []byte, offset, depth int) (int, error) {
	if depth > MaxValidationDepth {
		return 0, errs.ErrMaxDepthExceeded
	}

	if offset%nodeAlign != 0 {
		return 0, fmt.Errorf("%w: node at %d is not %d-byte aligned", errs.ErrMisaligned, offset, nodeAlign)
	}

	if offset >= len(data) {
		return 0, fmt.Errorf("%w: node start %d beyond buffer", errs.ErrTruncated, offset)
	}

	kind, code := format.UnpackDiscriminant(data[offset])

	switch kind {
	case format.Object, format.Array:
		return validateAggregate(data, offset, depth, kind)
	case format.String:
		return validateString(data, offset, code)
	case format.Integer:
		return validateFixedField(data, offset, format.IntWidth(code).Size())
	case format.Decimal:
		return validateFixedField(data, offset, format.DecimalWidth(code).Size())
	case format.Boolean, format.Null:
		return offset + 1, nil
	default:
		return 0, fmt.Errorf("%w: byte 0x%02x at offset %d", errs.ErrInvalidDiscriminant, data[offset], offset)
	}
}

func validateFixedField(data []byte, offset, width int) (int, error) {
	pad := format.Pad(width)
	end := offset + 1 + pad + width

	if end > len(data) {
		return 0, fmt.Errorf("%w: field at %d needs %d bytes", errs.ErrTruncated, offset, width)
	}

	return end, nil
}

func validateString(data []byte, offset int, code uint8) (int, error) {
	tier := format.WidthTier(code)
	size := tier.Size()
	pad := format.Pad(size)
	lenOff := offset + 1 + pad

	if lenOff+size > len(data) {
		return 0, fmt.Errorf("%w: string length field at %d", errs.ErrTruncated, lenOff)
	}

	n := format.UintTier(endian.Wire, data[lenOff:], tier)
	end := lenOff + size + int(n) + 1 // +1 trailing NUL, not itself validated

	if end > len(data) {
		return 0, fmt.Errorf("%w: string payload at %d needs %d bytes", errs.ErrTruncated, offset, n+1)
	}

	return end, nil
}

func validateAggregate(data []byte, offset, depth int, kind format.Kind) (int, error) {
	if offset+1 > len(data) {
		return 0, fmt.Errorf("%w: aggregate discriminant at %d", errs.ErrTruncated, offset)
	}

	_, code := format.UnpackDiscriminant(data[offset])
	tier := format.WidthTier(code)
	size := tier.Size()
	pad := format.Pad(size)
	extentOff := offset + 1 + pad

	if extentOff+2*size > len(data) {
		return 0, fmt.Errorf("%w: aggregate header at %d", errs.ErrTruncated, offset)
	}

	engine := endian.Wire
	totalExtent := int(format.UintTier(engine, data[extentOff:], tier))
	childCount := int(format.UintTier(engine, data[extentOff+size:], tier))

	remaining := len(data) - offset
	if totalExtent > remaining {
		return 0, fmt.Errorf("%w: extent %d exceeds remaining %d", errs.ErrSizeMismatch, totalExtent, remaining)
	}

	vectorOff := extentOff + 2*size
	vectorLen := childCount * size
	if vectorLen > totalExtent {
		return 0, fmt.Errorf("%w: offset vector of %d bytes exceeds extent %d", errs.ErrSizeMismatch, vectorLen, totalExtent)
	}
	if vectorOff+vectorLen > len(data) {
		return 0, fmt.Errorf("%w: offset vector at %d", errs.ErrTruncated, vectorOff)
	}

	var prevKey string
	for i := 0; i < childCount; i++ {
		childOffset := int(format.UintTier(engine, data[vectorOff+i*size:], tier))
		if childOffset >= totalExtent {
			return 0, fmt.Errorf("%w: child offset %d, extent %d", errs.ErrOffsetOutOfRange, childOffset, totalExtent)
		}

		absChild := offset + childOffset
		if absChild%nodeAlign != 0 {
			return 0, fmt.Errorf("%w: child at %d is not %d-byte aligned", errs.ErrMisaligned, absChild, nodeAlign)
		}

		nodeEnd := offset + totalExtent

		if kind == format.Object {
			key, keyEnd, err := validateKey(data, absChild)
			if err != nil {
				return 0, err
			}
			if keyEnd > nodeEnd {
				return 0, fmt.Errorf("%w: key at %d ends at %d, past extent %d", errs.ErrOffsetOutOfRange, absChild, keyEnd, nodeEnd)
			}
			if i > 0 && CompareKeys(prevKey, key) >= 0 {
				return 0, fmt.Errorf("%w: key %q does not follow %q", errs.ErrKeyOrder, key, prevKey)
			}
			prevKey = key

			valueOffset := alignUp(keyEnd - offset)
			valueEnd, err := validateNode(data, offset+valueOffset, depth+1)
			if err != nil {
				return 0, err
			}
			if valueEnd > nodeEnd {
				return 0, fmt.Errorf("%w: value at %d ends at %d, past extent %d", errs.ErrOffsetOutOfRange, offset+valueOffset, valueEnd, nodeEnd)
			}
		} else {
			childEnd, err := validateNode(data, absChild, depth+1)
			if err != nil {
				return 0, err
			}
			if childEnd > nodeEnd {
				return 0, fmt.Errorf("%w: child at %d ends at %d, past extent %d", errs.ErrOffsetOutOfRange, absChild, childEnd, nodeEnd)
			}
		}
	}

	return offset + totalExtent, nil
}

// validateKey validates the string node at absOffset as an object key and
// returns its decoded value (for ordering checks) and its end offset.
func validateKey(data []byte, absOffset int) (key string, end int, err error) {
	kind, code := format.UnpackDiscriminant(data[absOffset])
	if kind != format.String {
		return "", 0, fmt.Errorf("%w: object key at %d is not a string", errs.ErrInvalidDiscriminant, absOffset)
	}

	end, err = validateString(data, absOffset, code)
	if err != nil {
		return "", 0, err
	}

	key, _, err = ReadString(data[absOffset:])
	if err != nil {
		return "", 0, err
	}

	return key, end, nil
}
