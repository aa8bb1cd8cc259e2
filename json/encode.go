package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
	"github.com/kvbuf/polyval/packet"
)

// Encode writes v to w as JSON text. v may be heap- or buffer-backed —
// packet.Value forwards either way, so Encode never needs to know which.
func Encode(w io.Writer, v packet.Value) error {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return err
	}

	_, err := w.Write(buf.Bytes())

	return err
}

// Marshal is the byte-slice convenience form of Encode.
func Marshal(v packet.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v packet.Value) error {
	switch v.Kind() {
	case format.Object:
		return encodeObject(buf, v)
	case format.Array:
		return encodeArray(buf, v)
	case format.String:
		s, err := v.AsString()
		if err != nil {
			return err
		}

		return encodeString(buf, s)
	case format.Integer:
		i, err := v.AsInteger()
		if err != nil {
			return err
		}

		buf.WriteString(strconv.FormatInt(i, 10))

		return nil
	case format.Decimal:
		f, err := v.AsDecimal()
		if err != nil {
			return err
		}

		return encodeFloat(buf, f)
	case format.Boolean:
		b, err := v.AsBoolean()
		if err != nil {
			return err
		}

		if b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}

		return nil
	case format.Null:
		buf.WriteString("null")
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %s", errs.ErrKindMismatch, v.Kind())
	}
}

// encodeString reuses encoding/json's string escaping rather than
// hand-rolling it: json.Marshal on a Go string always produces a quoted,
// correctly escaped JSON string literal.
func encodeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrParse, err)
	}

	buf.Write(b)

	return nil
}

// encodeFloat reuses encoding/json's float formatting for the same
// shortest-round-trip behavior json.Marshal gives float64. A non-finite
// decimal is rejected rather than silently emitting invalid JSON.
func encodeFloat(buf *bytes.Buffer, f float64) error {
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("%w: decimal %v is not representable in JSON: %v", errs.ErrParse, f, err)
	}

	buf.Write(b)

	return nil
}

func encodeObject(buf *bytes.Buffer, v packet.Value) error {
	keys, err := v.Keys()
	if err != nil {
		return err
	}

	buf.WriteByte('{')

	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		child, found, err := v.Get(key)
		if err != nil || !found {
			return fmt.Errorf("%w: key %q", errs.ErrKeyNotFound, key)
		}

		if err := encodeString(buf, key); err != nil {
			return err
		}
		buf.WriteByte(':')

		if err := encodeValue(buf, child); err != nil {
			return err
		}
	}

	buf.WriteByte('}')

	return nil
}

func encodeArray(buf *bytes.Buffer, v packet.Value) error {
	n, err := v.Len()
	if err != nil {
		return err
	}

	buf.WriteByte('[')

	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}

		child, err := v.At(i)
		if err != nil {
			return err
		}

		if err := encodeValue(buf, child); err != nil {
			return err
		}
	}

	buf.WriteByte(']')

	return nil
}
