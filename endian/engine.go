// Package endian provides the byte-order utilities used to read and write
// the packed wire format.
//
// The format is little-endian by decree on every platform: a big-endian
// host must byte-swap on ingress and egress so the bytes it produces and
// consumes are portable. This package extends Go's standard
// encoding/binary by combining ByteOrder and AppendByteOrder into a
// single Engine interface, and adds host-endianness detection so callers
// on big-endian hardware know when a swap is required.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// Engine combines binary.ByteOrder and binary.AppendByteOrder into a single
// interface for convenient byte-order operations. binary.LittleEndian and
// binary.BigEndian both satisfy it without modification.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Wire is the canonical on-disk byte order for every packed buffer field
// except a decimal node's payload. It is always little-endian, regardless of the host's
// native order.
var Wire Engine = binary.LittleEndian

// checkNative uses a fixed bit pattern to determine the host's native byte
// order at runtime.
func checkNative() binary.ByteOrder {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// Native is the host's own byte order, used only for a decimal node's IEEE
// 754 payload. Every other field in the wire format uses Wire.
var Native Engine = checkNative().(Engine)

// HostIsLittleEndian reports whether the current process is running on a
// little-endian host, i.e. whether Wire already matches native order and
// no byte-swap is needed when a buffer is memory-mapped directly.
func HostIsLittleEndian() bool {
	return checkNative() == binary.LittleEndian
}
