// Package mtshard turns a payload into the power-of-two list of blocks
// that an [mtree.Tree] authenticates, and back again.
//
// [Prepare] splits the payload into data shards, adds Reed-Solomon parity
// shards until the total is a power of two, and builds the tree.
// A receiver feeds individual shards and their paths to a [Collector],
// which discards shards whose path does not reach the root,
// and reconstructs the payload once enough shards have arrived.
//
// A single path does not bind a shard to the root:
// the first path element can be fitted to any leaf hash.
// So before returning the payload, the Collector re-encodes every shard,
// rebuilds the tree, and requires the rebuilt root to match.
//
// Every leaf input is the shard's index, as a big-endian uint16,
// followed by the shard bytes; see [LeafInput].
// The prefix ties each rebuilt leaf to its position,
// so reordered shards produce a different root.
package mtshard
