package format

import "bytes"

// CompareKeys implements the total order object keys are sorted and
// searched under: a shorter key sorts before a longer one, and keys of
// equal length compare byte-wise. This is not lexicographic order on its
// own — two keys of different length never fall back to a byte
// comparison past the shorter one's end.
//
// Both the heap and buffer packages need this same order (heap to verify
// a pre-sorted field slice or to compare two objects for structural
// equality regardless of insertion order, buffer to lay out and binary-
// search an object's offset vector), and neither may import the other,
// so it lives here instead.
func CompareKeys(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}

		return 1
	}

	return bytes.Compare([]byte(a), []byte(b))
}
