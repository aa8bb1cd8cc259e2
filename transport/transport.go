package transport

import (
	"fmt"

	"github.com/kvbuf/polyval/buffer"
	"github.com/kvbuf/polyval/compress"
	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
)

// Pack compresses buf's canonical bytes with codec and returns a
// self-contained frame: magic, version, codec id, uncompressed length,
// then the compressed payload. The frame is what a caller sends over a
// socket or writes to cold storage; Unpack is its exact inverse.
func Pack(buf *buffer.Buffer, codec format.CompressionType) ([]byte, error) {
	c, err := compress.GetCodec(codec)
	if err != nil {
		return nil, err
	}

	compressed, err := c.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: compressing %s payload: %v", errs.ErrBadFrame, codec, err)
	}

	out := make([]byte, headerLen+len(compressed))
	writeHeader(out, codec, buf.Len())
	copy(out[headerLen:], compressed)

	return out, nil
}

// Unpack reverses Pack: it parses the frame header, decompresses the
// payload with the codec the frame names, and re-validates the result
// with buffer.Validate before wrapping it as a Buffer — decompression
// does not make a foreign buffer trusted.
//
// single selects a non-atomic reference-count Handle for the returned
// Buffer (see buffer.NewFromValidated); pass false for a buffer that may
// cross goroutine boundaries.
func Unpack(data []byte, single bool) (*buffer.Buffer, error) {
	codec, uncompressedLen, err := readHeader(data)
	if err != nil {
		return nil, err
	}

	c, err := compress.GetCodec(codec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrBadFrame, err)
	}

	payload := data[headerLen:]

	decompressed, err := c.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: decompressing %s payload: %v", errs.ErrBadFrame, codec, err)
	}

	if len(decompressed) != uncompressedLen {
		return nil, fmt.Errorf("%w: frame claims %d uncompressed bytes, got %d", errs.ErrBadFrame, uncompressedLen, len(decompressed))
	}

	if err := buffer.Validate(decompressed); err != nil {
		return nil, err
	}

	return buffer.NewFromValidated(decompressed, single), nil
}
