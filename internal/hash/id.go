// Package hash computes the content-addressing digest exposed on a
// lowered buffer. Callers use it to key a
// cache, detect a repeated payload before re-sending it over transport,
// or as a cheap pre-filter ahead of a full bytes.Equal.
package hash

import "github.com/cespare/xxhash/v2"

// Digest returns the xxHash64 of data.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// DigestString is Digest for a string, avoiding a []byte conversion.
func DigestString(s string) uint64 {
	return xxhash.Sum64String(s)
}
