package mtree

import (
	"bytes"
	"crypto/subtle"
)

// Path is an inclusion proof:
// the sibling hashes from a leaf's layer up to, but excluding, the root.
// Its length is the depth of the tree.
type Path [][]byte

// FindPath returns the inclusion proof for the leaf at leafIdx.
//
// The returned hashes reference the tree's backing memory
// and must not be modified.
// If leafIdx is not a leaf index, FindPath returns a [*BoundsError].
func (t *Tree) FindPath(leafIdx int) (Path, error) {
	if leafIdx < 0 || leafIdx >= t.nLeaves {
		return nil, &BoundsError{Index: leafIdx, LeafCount: t.nLeaves}
	}

	path := make(Path, 0, t.Depth())

	// Parity is decided by position within the layer,
	// so track where the current layer starts.
	layerStart := 0
	layerWidth := t.nLeaves

	n := t.nodes[leafIdx]
	for !n.IsRoot() {
		sibling := n.Next
		if (n.Index-layerStart)&1 == 1 {
			sibling = n.Prev
		}
		path = append(path, t.nodes[sibling].Hash)

		layerStart += layerWidth
		layerWidth >>= 1
		n = t.nodes[n.Parent]
	}

	return path, nil
}

// ReconstructRoot folds path into leafHash with c,
// combining each path element (first) with the running hash (second),
// and returns the resulting root hash.
//
// It needs no Tree; c must match the combiner the tree was built with.
// An empty path returns a copy of leafHash.
func ReconstructRoot(c Combiner, path Path, leafHash []byte) []byte {
	acc := bytes.Clone(leafHash)
	if len(path) == 0 {
		return acc
	}

	// Alternate between two buffers so each step reads one and writes the other.
	next := make([]byte, 0, c.HashWidth)
	for _, s := range path {
		next = c.Combine(s, acc, next[:0])
		acc, next = next, acc
	}
	return acc
}

// VerifyRoot reports whether leafHash and path reconstruct root.
// A mismatch is an ordinary false result,
// as is any hash in the input whose width differs from c.HashWidth.
//
// Because the combination hashes the exclusive-or of its two inputs,
// a first path element can be chosen to fit any leaf hash.
// A true result therefore catches accidental corruption,
// but does not show that leafHash was committed to by root
// when path comes from an untrusted party.
func VerifyRoot(c Combiner, path Path, leafHash, root []byte) bool {
	if len(leafHash) != c.HashWidth || len(root) != c.HashWidth {
		return false
	}
	for _, s := range path {
		if len(s) != c.HashWidth {
			return false
		}
	}

	got := ReconstructRoot(c, path, leafHash)
	return subtle.ConstantTimeCompare(got, root) == 1
}

// Verify reports whether leafHash and path reconstruct the root of t.
func (t *Tree) Verify(path Path, leafHash []byte) bool {
	return VerifyRoot(t.c, path, leafHash, t.Root())
}
