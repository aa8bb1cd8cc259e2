package buffer

import "github.com/kvbuf/polyval/internal/hash"

// Buffer is the façade over a validated, immutable packed byte slice.
// Once constructed, Bytes never changes; any number of
// Cursors derived from Root may read it concurrently without
// synchronization. A Buffer's lifetime is extended by its Handle — the
// bytes are only eligible for release once every retained Handle has
// called Release.
type Buffer struct {
	bytes  []byte
	handle Handle
}

// newBuffer wraps data — already produced by Lower, so known-canonical —
// as a Buffer with a fresh atomic Handle.
func newBuffer(data []byte) *Buffer {
	return &Buffer{bytes: data, handle: newAtomicHandle()}
}

// NewFromValidated wraps data as a Buffer without re-lowering it,
// assuming the caller already validated it (e.g. via Validate, after
// receiving it from transport.Unpack). single selects a non-atomic
// Handle for callers that can guarantee the Buffer never crosses a
// goroutine boundary; shared callers should pass false.
func NewFromValidated(data []byte, single bool) *Buffer {
	var h Handle
	if single {
		h = newPlainHandle()
	} else {
		h = newAtomicHandle()
	}

	return &Buffer{bytes: data, handle: h}
}

// Bytes returns the buffer's canonical packed representation. The
// returned slice must not be mutated: buffers are immutable by contract
// once lowered.
func (b *Buffer) Bytes() []byte { return b.bytes }

// Len returns the buffer's total byte length.
func (b *Buffer) Len() int { return len(b.bytes) }

// Root returns a cursor positioned at the buffer's root node.
func (b *Buffer) Root() Cursor {
	return Cursor{data: b.bytes, offset: 0}
}

// Digest returns the content-addressing digest of the buffer's bytes.
func (b *Buffer) Digest() uint64 {
	return hash.Digest(b.bytes)
}

// Handle returns the buffer's shared-ownership handle.
func (b *Buffer) Handle() Handle { return b.handle }

// Retain increments the buffer's reference count and returns b, for
// chaining at a call site that stores a retained copy.
func (b *Buffer) Retain() *Buffer {
	b.handle.Retain()
	return b
}

// Release decrements the buffer's reference count. Callers must not use
// b after a Release call that returns true.
func (b *Buffer) Release() bool {
	return b.handle.Release()
}
