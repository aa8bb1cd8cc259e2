package json

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kvbuf/polyval/buffer"
	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/heap"
	"github.com/kvbuf/polyval/internal/options"
)

// config holds Decode's tunables, set via Option values applied with
// internal/options.Apply — the same functional-options machinery the
// rest of the module's configuration surfaces use.
type config struct {
	maxDepth int
}

// Option configures Decode or Unmarshal.
type Option = options.Option[*config]

// defaultMaxDepth mirrors buffer.MaxValidationDepth: untrusted JSON text
// can nest arbitrarily deep just as an untrusted packed buffer can, so
// the same recursion-depth defense applies to the parser, not only to
// the validator.
const defaultMaxDepth = buffer.MaxValidationDepth

// WithMaxDepth overrides the nesting depth Decode will follow before
// rejecting the input with a parse error (errs.ErrParse). The default is
// buffer.MaxValidationDepth.
func WithMaxDepth(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: max depth must be positive, got %d", errs.ErrParse, n)
		}

		c.maxDepth = n

		return nil
	})
}

// Decode reads one JSON value from r and returns its heap.Node tree.
// Decode does not require the root to be an object or array — a naked
// scalar decodes successfully; it is buffer.Lower, not this package,
// that rejects a naked scalar root.
func Decode(r io.Reader, opts ...Option) (*heap.Node, error) {
	cfg := &config{maxDepth: defaultMaxDepth}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()

	n, err := decodeValue(dec, cfg, 0)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after JSON value", errs.ErrParse)
	}

	return n, nil
}

// Unmarshal is the byte-slice convenience form of Decode.
func Unmarshal(data []byte, opts ...Option) (*heap.Node, error) {
	return Decode(strings.NewReader(string(data)), opts...)
}

func decodeValue(dec *json.Decoder, cfg *config, depth int) (*heap.Node, error) {
	if depth > cfg.maxDepth {
		return nil, fmt.Errorf("%w: nesting exceeds max depth %d", errs.ErrParse, cfg.maxDepth)
	}

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
	}

	return decodeToken(dec, tok, cfg, depth)
}

func decodeToken(dec *json.Decoder, tok json.Token, cfg *config, depth int) (*heap.Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec, cfg, depth)
		case '[':
			return decodeArray(dec, cfg, depth)
		default:
			return nil, fmt.Errorf("%w: unexpected delimiter %q", errs.ErrParse, v)
		}
	case string:
		return heap.NewString(v), nil
	case json.Number:
		return decodeNumber(v)
	case bool:
		return heap.NewBoolean(v), nil
	case nil:
		return heap.NewNull(), nil
	default:
		return nil, fmt.Errorf("%w: unexpected token %T", errs.ErrParse, tok)
	}
}

// decodeNumber splits a JSON number between the integer and decimal
// kinds: a literal with no '.', 'e' or 'E' that round-trips
// through a signed 64-bit integer becomes integer; everything else,
// including an integer literal too large for int64, becomes decimal.
func decodeNumber(n json.Number) (*heap.Node, error) {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return heap.NewInteger(i), nil
		}
	}

	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed number %q: %v", errs.ErrParse, s, err)
	}

	return heap.NewFloat64(f), nil
}

func decodeObject(dec *json.Decoder, cfg *config, depth int) (*heap.Node, error) {
	var fields []heap.Field
	sorted := true

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
		}

		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key is not a string (%T)", errs.ErrParse, keyTok)
		}

		value, err := decodeValue(dec, cfg, depth+1)
		if err != nil {
			return nil, err
		}

		if sorted && len(fields) > 0 && buffer.CompareKeys(fields[len(fields)-1].Key, key) >= 0 {
			sorted = false
		}

		fields = append(fields, heap.Field{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
	}

	if sorted {
		obj, err := heap.NewObjectFromSortedFields(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
		}

		return obj, nil
	}

	obj := heap.NewObject()
	for _, f := range fields {
		if err := obj.Set(f.Key, f.Value); err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
		}
	}

	return obj, nil
}

func decodeArray(dec *json.Decoder, cfg *config, depth int) (*heap.Node, error) {
	arr := heap.NewArray()

	for dec.More() {
		elem, err := decodeValue(dec, cfg, depth+1)
		if err != nil {
			return nil, err
		}

		if err := arr.Append(elem); err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
		}
	}

	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
	}

	return arr, nil
}
