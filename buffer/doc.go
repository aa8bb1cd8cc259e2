// Package buffer implements the immutable, zero-copy, self-describing
// packed representation: the primitive scalar codec (string, integer,
// decimal, boolean, null), the object/array aggregate codec with its
// sorted-key header layout, the two-pass lowering engine that turns a
// heap.Node tree into a canonical byte slice, the bounded-recursion
// validator for buffers of unknown origin, the read-only cursor, and the
// shared-ownership handle over the backing bytes.
//
// Everything downstream of lowering is read-only: a Buffer's bytes never
// change once produced, so any number of cursors may read them
// concurrently without synchronization. The primitive codec functions in
// this file's siblings are pure and allocation-free; they operate on a
// node's packed form starting at its discriminant byte and know nothing
// of trees or ownership — that lives in lower.go, cursor.go and handle.go.
package buffer
