// Package transport gives a concrete Go surface to the observation that
// a packed buffer's bytes may be sent over a socket or memory-mapped:
// Pack prefixes a small self-describing frame (magic, version, codec id,
// uncompressed length) onto a compressed copy of a Buffer's canonical
// bytes, and Unpack reverses it.
//
// Compression here is strictly a transport concern. It never touches the
// canonical in-memory byte form — Pack compresses bytes that are already
// a finished, validated Buffer, and Unpack re-validates the decompressed
// bytes with buffer.Validate before handing back a Buffer, because a
// buffer that arrived compressed off a socket is still an untrusted
// buffer once decompressed.
package transport
