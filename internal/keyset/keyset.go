// Package keyset provides the duplicate-key defense used when a heap
// object is built or mutated: an object must never hold two entries with
// the same key, and rejecting the insert outright (rather than silently
// overwriting) is cheaper to check with a set than by re-scanning the
// existing entries on every Set call past a small size.
package keyset

import (
	set3 "github.com/TomTonic/Set3"
)

// Set tracks the key strings currently present in a heap object. It is not
// safe for concurrent use; callers serialize access the same way they do
// for the object node it defends.
type Set struct {
	s *set3.Set3[string]
}

// New returns an empty Set.
func New() *Set {
	return &Set{s: set3.Empty[string]()}
}

// NewWithCapacity returns an empty Set pre-sized for n keys.
func NewWithCapacity(n int) *Set {
	return &Set{s: set3.EmptyWithCapacity[string](uint32(n))}
}

// Contains reports whether key is already tracked.
func (ks *Set) Contains(key string) bool {
	return ks.s.Contains(key)
}

// Add starts tracking key. It is a no-op if key is already tracked.
func (ks *Set) Add(key string) {
	ks.s.Add(key)
}

// Remove stops tracking key.
func (ks *Set) Remove(key string) {
	ks.s.Remove(key)
}

// Len returns the number of tracked keys.
func (ks *Set) Len() int {
	return int(ks.s.Len())
}
