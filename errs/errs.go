// Package errs defines the sentinel errors used across the module and the
// abstract error-kind taxonomy from the design (kind-mismatch, out-of-range,
// structural, parse, validation, state). Call sites wrap these with
// fmt.Errorf("...: %w", ...) for position or value context; callers that
// only care about the category should use errors.Is against the sentinels
// below, or Classify for the coarser six-way split a binding layer would
// want (KindNone for an error that wraps none of them).
package errs

import "errors"

// Kind-mismatch errors: an accessor was called for a kind the node is not.
var (
	ErrKindMismatch  = errors.New("polyval: kind mismatch")
	ErrNotAggregate  = errors.New("polyval: not an aggregate (object or array)")
	ErrNotObject     = errors.New("polyval: not an object")
	ErrNotArray      = errors.New("polyval: not an array")
	ErrNotString     = errors.New("polyval: not a string")
	ErrNotInteger    = errors.New("polyval: not an integer")
	ErrNotDecimal    = errors.New("polyval: not a decimal")
	ErrNotBoolean    = errors.New("polyval: not a boolean")
	ErrNumericMixed  = errors.New("polyval: integer/decimal conversion is not implicit")
)

// Out-of-range errors: array index >= size, or object key absent.
var (
	ErrIndexOutOfRange = errors.New("polyval: array index out of range")
	ErrKeyNotFound     = errors.New("polyval: object key not found")
)

// Structural errors: a rule that makes a tree un-lowerable.
var (
	ErrDuplicateKey      = errors.New("polyval: duplicate object key")
	ErrKeyTooLarge       = errors.New("polyval: object key exceeds 64 KiB")
	ErrStringTooLarge    = errors.New("polyval: string payload exceeds 4 GiB")
	ErrAggregateTooLarge = errors.New("polyval: aggregate exceeds 4 GiB")
	ErrCyclicInsert      = errors.New("polyval: cannot insert a subtree into itself")
)

// Parse errors: incoming text is syntactically invalid. The core buffer
// package never raises these; only its JSON/YAML collaborators do.
var ErrParse = errors.New("polyval: parse error")

// Validation errors: an untrusted buffer failed the validator's checks.
var (
	ErrTruncated        = errors.New("polyval: buffer truncated")
	ErrMisaligned       = errors.New("polyval: node not aligned to its width")
	ErrOffsetOutOfRange = errors.New("polyval: child offset out of range")
	ErrSizeMismatch     = errors.New("polyval: declared extent does not match buffer length")
	ErrKeyOrder         = errors.New("polyval: object keys are not in strict ascending order")
	ErrMaxDepthExceeded = errors.New("polyval: maximum nesting depth exceeded")
	ErrInvalidDiscriminant = errors.New("polyval: invalid discriminant byte")
	ErrBadFrame            = errors.New("polyval: malformed transport frame")
)

// State errors: an operation incompatible with the value's current
// representation.
var (
	ErrAlreadyLowered  = errors.New("polyval: value is already a lowered buffer")
	ErrNotLowered      = errors.New("polyval: value has not been lowered")
	ErrReleased        = errors.New("polyval: handle has already been released")
	ErrNakedScalarRoot = errors.New("polyval: root value must be an object or array")
)

// ErrorKind is the abstract classification from the design's error-handling
// section. A binding layer maps each Kind to a stable small integer code.
type ErrorKind uint8

const (
	KindNone ErrorKind = iota
	KindMismatch
	KindOutOfRange
	KindStructural
	KindParse
	KindValidation
	KindState
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindMismatch:
		return "kind-mismatch"
	case KindOutOfRange:
		return "out-of-range"
	case KindStructural:
		return "structural"
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	case KindState:
		return "state"
	default:
		return "none"
	}
}

var classification = map[error]ErrorKind{
	ErrKindMismatch:  KindMismatch,
	ErrNotAggregate:  KindMismatch,
	ErrNotObject:     KindMismatch,
	ErrNotArray:      KindMismatch,
	ErrNotString:     KindMismatch,
	ErrNotInteger:    KindMismatch,
	ErrNotDecimal:    KindMismatch,
	ErrNotBoolean:    KindMismatch,
	ErrNumericMixed:  KindMismatch,

	ErrIndexOutOfRange: KindOutOfRange,
	ErrKeyNotFound:     KindOutOfRange,

	ErrDuplicateKey:      KindStructural,
	ErrKeyTooLarge:       KindStructural,
	ErrStringTooLarge:    KindStructural,
	ErrAggregateTooLarge: KindStructural,
	ErrCyclicInsert:      KindStructural,

	ErrParse: KindParse,

	ErrTruncated:           KindValidation,
	ErrMisaligned:          KindValidation,
	ErrOffsetOutOfRange:    KindValidation,
	ErrSizeMismatch:        KindValidation,
	ErrKeyOrder:            KindValidation,
	ErrMaxDepthExceeded:    KindValidation,
	ErrInvalidDiscriminant: KindValidation,
	ErrBadFrame:            KindValidation,

	ErrAlreadyLowered:  KindState,
	ErrNotLowered:      KindState,
	ErrReleased:        KindState,
	ErrNakedScalarRoot: KindState,
}

// Classify maps err to its abstract ErrorKind by walking errors.Is against
// every sentinel declared in this package. It returns KindNone if err does
// not wrap any of them.
func Classify(err error) ErrorKind {
	for sentinel, kind := range classification {
		if errors.Is(err, sentinel) {
			return kind
		}
	}

	return KindNone
}
