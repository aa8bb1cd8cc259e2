// Package heap implements the mutable, reference-style tree representation
// of a value: a tagged-union Node built
// with one constructor per kind, objects and arrays holding their children
// as *Node pointers with no back-pointers.
//
// A Node is the collaborator the lowering engine visits: report
// a kind and, for aggregates, iterate children in build order. Object
// children additionally carry a key, and duplicate keys are rejected at
// Set time by internal/keyset rather than left for the lowering engine to
// discover — the lowering engine's own adjacent-key check after sorting
// remains the authoritative structural guarantee, this is defense in
// depth against a caller who bypasses Set.
package heap
