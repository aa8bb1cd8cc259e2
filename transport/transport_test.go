package transport

import (
	"testing"

	"github.com/kvbuf/polyval/buffer"
	"github.com/kvbuf/polyval/format"
	"github.com/kvbuf/polyval/heap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *buffer.Buffer {
	t.Helper()

	root := heap.NewObject()
	require.NoError(t, root.Set("hello", heap.NewString("world")))
	require.NoError(t, root.Set("count", heap.NewInteger(42)))

	buf, err := buffer.Lower(root)
	require.NoError(t, err)

	return buf
}

func TestPackUnpack_RoundTrip(t *testing.T) {
	for _, codec := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(codec.String(), func(t *testing.T) {
			buf := sample(t)

			framed, err := Pack(buf, codec)
			require.NoError(t, err)

			out, err := Unpack(framed, true)
			require.NoError(t, err)

			assert.Equal(t, buf.Bytes(), out.Bytes())
		})
	}
}

func TestUnpack_RejectsBadMagic(t *testing.T) {
	buf := sample(t)

	framed, err := Pack(buf, format.CompressionNone)
	require.NoError(t, err)

	framed[0] ^= 0xFF

	_, err = Unpack(framed, true)
	assert.Error(t, err)
}

func TestUnpack_RejectsTruncatedFrame(t *testing.T) {
	buf := sample(t)

	framed, err := Pack(buf, format.CompressionZstd)
	require.NoError(t, err)

	_, err = Unpack(framed[:headerLen-1], true)
	assert.Error(t, err)
}

func TestUnpack_RejectsTamperedCompressedPayload(t *testing.T) {
	buf := sample(t)

	framed, err := Pack(buf, format.CompressionS2)
	require.NoError(t, err)

	framed[len(framed)-1] ^= 0xFF

	_, err = Unpack(framed, true)
	assert.Error(t, err)
}
