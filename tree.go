package mtree

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/bits"
)

// NoNode marks an absent link in a [Node].
const NoNode = -1

// Node is a single entry in a [Tree].
//
// Prev and Next refer to the neighboring nodes within the same layer,
// not to children. Parent refers to the node one layer up
// whose hash this node contributes to.
// Any absent link is [NoNode].
type Node struct {
	Index int

	// Hash references the tree's backing memory
	// and must not be modified.
	Hash []byte

	Prev, Next, Parent int
}

// IsRoot reports whether n has no parent.
func (n Node) IsRoot() bool {
	return n.Parent == NoNode
}

func (n Node) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("index", n.Index),
		slog.String("hash", hex.EncodeToString(n.Hash)),
		slog.Int("prev", n.Prev),
		slog.Int("next", n.Next),
		slog.Int("parent", n.Parent),
	)
}

// Tree is a complete binary Merkle tree over a power-of-two number of leaves.
//
// Create one with [Build].
// A Tree has no mutating methods,
// so it may be shared freely between goroutines.
type Tree struct {
	nodes []Node

	nLeaves int

	c Combiner
}

// Build hashes each of the leafCount leaves
// and fills in every internal node through the root.
//
// If leafCount is not a positive power of two,
// or len(leaves) differs from leafCount,
// Build returns a [*ConfigurationError] and a nil Tree.
// Invalid settings in cfg are programming errors and cause a panic.
func Build(log *slog.Logger, leafCount int, leaves [][]byte, cfg BuildConfig) (*Tree, error) {
	cfg.validate(log)

	if err := checkShape(leafCount, len(leaves)); err != nil {
		return nil, err
	}

	c := cfg.Combiner()

	nNodes := 2*leafCount - 1

	// The whole tree shape is known up front,
	// so every hash is written into one backing slice.
	mem := make([]byte, nNodes*c.HashWidth)

	nodes := make([]Node, nNodes)
	for i := range nodes {
		start := i * c.HashWidth
		nodes[i] = Node{
			Index:  i,
			Hash:   mem[start : start+c.HashWidth : start+c.HashWidth],
			Prev:   NoNode,
			Next:   NoNode,
			Parent: NoNode,
		}
	}

	for i, leaf := range leaves {
		c.HashLeaf(leaf, nodes[i].Hash[:0])
	}
	linkLayer(nodes, 0, leafCount)

	// Merge the child layer pairwise, left to right,
	// writing each parent to the next free slot after the child layer.
	readStart := 0
	writeIdx := leafCount
	for width := leafCount; width > 1; width >>= 1 {
		for i := 0; i < width; i += 2 {
			left := readStart + i
			right := left + 1

			nodes[left].Parent = writeIdx
			nodes[right].Parent = writeIdx

			c.Combine(nodes[left].Hash, nodes[right].Hash, nodes[writeIdx].Hash[:0])

			writeIdx++
		}

		readStart += width
		linkLayer(nodes, readStart, width/2)
	}

	t := &Tree{
		nodes:   nodes,
		nLeaves: leafCount,
		c:       c,
	}

	log.Debug(
		"Built authentication tree",
		"leaf_count", leafCount,
		"node_count", nNodes,
		"encoding", c.Encoding,
		"root", hex.EncodeToString(t.Root()),
	)

	return t, nil
}

// checkShape returns a *ConfigurationError
// if the requested tree shape cannot be built.
func checkShape(leafCount, nLeaves int) error {
	var errs error

	if leafCount < 1 {
		errs = errors.Join(errs, fmt.Errorf(
			"leaf count must be at least 1 (got %d)", leafCount,
		))
	} else if leafCount&(leafCount-1) != 0 {
		errs = errors.Join(errs, fmt.Errorf(
			"leaf count must be a power of two (got %d)", leafCount,
		))
	}

	if nLeaves != leafCount {
		errs = errors.Join(errs, fmt.Errorf(
			"expected %d leaf inputs, got %d", leafCount, nLeaves,
		))
	}

	if errs == nil {
		return nil
	}

	return &ConfigurationError{
		LeafCount: leafCount,
		NumLeaves: nLeaves,
		Err:       errs,
	}
}

// linkLayer sets the Prev and Next links
// for the width nodes starting at index start.
// The first and last nodes of the layer keep NoNode on their outer side.
func linkLayer(nodes []Node, start, width int) {
	for i := start; i < start+width; i++ {
		if i > start {
			nodes[i].Prev = i - 1
		}
		if i < start+width-1 {
			nodes[i].Next = i + 1
		}
	}
}

// LeafCount returns the number of leaves in t.
func (t *Tree) LeafCount() int {
	return t.nLeaves
}

// NodeCount returns the total number of nodes in t,
// which is always 2*LeafCount - 1.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// Depth returns the number of layers below the root,
// which is also the length of every leaf's [Path].
func (t *Tree) Depth() int {
	return bits.Len(uint(t.nLeaves)) - 1
}

// Combiner returns the combiner used to build t.
// Pass it to [ReconstructRoot] or [VerifyRoot]
// to check paths without holding the tree.
func (t *Tree) Combiner() Combiner {
	return t.c
}

// Node returns the node at index idx.
// The returned Hash must not be modified.
func (t *Tree) Node(idx int) Node {
	if idx < 0 || idx >= len(t.nodes) {
		panic(fmt.Errorf(
			"BUG: attempted to get node at index %d; must be in range [0, %d)",
			idx, len(t.nodes),
		))
	}
	return t.nodes[idx]
}

// Leaf returns the stored hash of the leaf at index idx.
// The caller must not modify the returned slice.
func (t *Tree) Leaf(idx int) []byte {
	if idx < 0 || idx >= t.nLeaves {
		panic(fmt.Errorf(
			"BUG: attempted to get leaf at index %d; must be in range [0, %d)",
			idx, t.nLeaves,
		))
	}
	return t.nodes[idx].Hash
}

// Root returns the root hash of t.
// The caller must not modify the returned slice.
func (t *Tree) Root() []byte {
	return t.nodes[len(t.nodes)-1].Hash
}

func (t *Tree) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("leaf_count", t.nLeaves),
		slog.Int("node_count", len(t.nodes)),
		slog.String("root", hex.EncodeToString(t.Root())),
	)
}
