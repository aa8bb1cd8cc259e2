// Package json is the JSON collaborator the core describes but never
// implements: it decodes JSON text into
// a heap.Node tree and encodes a packet.Value — heap- or buffer-backed —
// back to JSON text.
//
// Decoding is built on encoding/json's streaming Decoder/token API rather
// than Unmarshal into interface{}, so that a JSON number without a
// fractional or exponent part becomes an integer node and everything
// else becomes a decimal node, matching the core's kind split. Object
// fields already enumerated in ascending key order take the core's
// "build object from pre-sorted pairs" fast path
// (heap.NewObjectFromSortedFields); anything else falls back to Set,
// which re-sorts at lowering time regardless.
//
// Every error Decode and Unmarshal return wraps errs.ErrParse — the core
// itself never raises a parse error, only its collaborators do. Encode and
// Marshal can also return errs.ErrKindMismatch or errs.ErrKeyNotFound
// from walking the value.
package json
