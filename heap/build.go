package heap

import (
	"fmt"

	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
	"github.com/kvbuf/polyval/internal/keyset"
)

// NewObjectFromSortedFields builds an object Node directly from fields
// that the caller asserts are already in the total key order the buffer
// layer requires (shorter keys first, then byte-wise), as produced by a
// JSON or YAML document whose source object happened to enumerate its
// keys that way. Unlike building the same object field-by-field with Set,
// it copies the fields in one pass and runs no cycle check on the values;
// order is checked by comparing each key against its immediate
// predecessor only.
//
// The order is verified, not trusted: a duplicate key fails with
// errs.ErrDuplicateKey exactly as Set would, and a field out of order
// fails with errs.ErrKeyOrder, leaving no partially-built Node behind.
func NewObjectFromSortedFields(fields []Field) (*Node, error) {
	keys := keyset.NewWithCapacity(len(fields))

	for i, f := range fields {
		if keys.Contains(f.Key) {
			return nil, fmt.Errorf("%w: key %q", errs.ErrDuplicateKey, f.Key)
		}
		if i > 0 && format.CompareKeys(fields[i-1].Key, f.Key) >= 0 {
			return nil, fmt.Errorf("%w: key %q does not follow %q in sorted order", errs.ErrKeyOrder, f.Key, fields[i-1].Key)
		}

		keys.Add(f.Key)
	}

	out := make([]Field, len(fields))
	copy(out, fields)

	return &Node{kind: format.Object, fields: out, keys: keys}, nil
}
