package transport

import (
	"fmt"

	"github.com/kvbuf/polyval/endian"
	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
)

// frameMagic identifies a transport frame at the start of Unpack, before
// any codec-specific decompression is attempted.
var frameMagic = [4]byte{'P', 'V', 'A', 'L'}

// frameVersion is bumped if the header layout below ever changes shape;
// Unpack rejects any other version rather than guessing at a newer one.
const frameVersion = 1

// headerLen is magic(4) + version(1) + codec(1) + uncompressedLen(4).
const headerLen = 4 + 1 + 1 + 4

func writeHeader(dst []byte, codec format.CompressionType, uncompressedLen int) {
	copy(dst[0:4], frameMagic[:])
	dst[4] = frameVersion
	dst[5] = byte(codec)
	endian.Wire.PutUint32(dst[6:10], uint32(uncompressedLen))
}

// readHeader parses and validates the frame header at the start of data,
// returning the codec it names and the uncompressed length it claims.
func readHeader(data []byte) (format.CompressionType, int, error) {
	if len(data) < headerLen {
		return 0, 0, fmt.Errorf("%w: frame shorter than header", errs.ErrTruncated)
	}

	if [4]byte(data[0:4]) != frameMagic {
		return 0, 0, fmt.Errorf("%w: bad frame magic", errs.ErrBadFrame)
	}

	if data[4] != frameVersion {
		return 0, 0, fmt.Errorf("%w: unsupported frame version %d", errs.ErrBadFrame, data[4])
	}

	codec := format.CompressionType(data[5])
	uncompressedLen := int(endian.Wire.Uint32(data[6:10]))

	return codec, uncompressedLen, nil
}
