// Package mtree contains a fixed-shape binary Merkle authentication tree.
//
// A [Tree] is built once, with [Build], over a power-of-two number of
// opaque data blocks. Every node lives in one flat slice:
// leaves first, then each internal layer in turn, with the root last.
// Nodes record only their parent and their neighbors within their own layer;
// children are implied by construction order.
//
// Parent hashes come from a [Combiner],
// which hashes the exclusive-or of the two child hashes' bit sequences.
// Because exclusive-or is symmetric, so is the combination,
// which is why [ReconstructRoot] can fold a [Path] into a root
// without knowing which side of each pair the proven leaf was on.
// The same symmetry means a path, checked alone, detects corruption
// but is not a proof against a party that chooses the path;
// see [VerifyRoot].
//
// After construction a Tree is read-only and is safe for concurrent readers.
package mtree
