package mtree

import "bytes"

// LocateLeaf hashes the raw leaf input in
// and returns the index of the first leaf with an equal hash.
// The second result is false if no leaf matches.
//
// This is a linear scan over the leaves, and its comparison is not constant-time.
func (t *Tree) LocateLeaf(in []byte) (int, bool) {
	h := t.c.HashLeaf(in, make([]byte, 0, t.c.HashWidth))

	for i := range t.nLeaves {
		if bytes.Equal(t.nodes[i].Hash, h) {
			return i, true
		}
	}
	return 0, false
}
