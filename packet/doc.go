// Package packet provides Value, a tagged-union façade that wraps either
// a mutable heap.Node or a read-only buffer.Cursor and forwards every
// read operation to whichever representation is live. Calling Lower on a
// heap-backed Value returns a new, buffer-backed Value and leaves the
// original unchanged; a
// buffer-backed Value is already lowered and Lower is a no-op.
//
// Value exists so calling code can accept "some JSON-shaped value"
// without committing upfront to whether it was just built in memory or
// received as validated bytes off the wire — the two representations
// compare equal to each other through the same Equals method.
package packet
