package mtshard

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math/bits"

	"github.com/gordian-engine/mtree"
	"github.com/klauspost/reedsolomon"
)

// MaxShards is the largest total shard count [Prepare] will produce.
// It keeps encoding within the 8-bit Reed-Solomon field.
const MaxShards = 256

// PrepareConfig is the config for [Prepare].
type PrepareConfig struct {
	// Desired maximum size of each shard, in bytes.
	// Shards are all the same size;
	// the final data shard is zero-padded as needed.
	MaxShardSize int

	// ParityRatio indicates the desired ratio of
	// parity shards to data shards.
	// The parity count is rounded down,
	// raised to at least one,
	// and then raised further until the total shard count is a power of two.
	ParityRatio float32

	// How to build the tree over the shards.
	Tree mtree.BuildConfig
}

// Prepared is the value returned by [Prepare].
type Prepared struct {
	// The number of data and parity shards.
	// NumData+NumParity is always a power of two.
	NumData, NumParity int

	// DataSize is the length of the original payload,
	// needed to strip padding when reconstructing.
	DataSize int

	// Shards holds the data shards followed by the parity shards.
	Shards [][]byte

	// Proofs[i] is the inclusion path for Shards[i].
	// The hashes reference the tree's memory and must not be modified.
	Proofs []mtree.Path

	Tree *mtree.Tree
}

// LeafInput returns the tree leaf input for the shard at index idx.
func LeafInput(idx int, shard []byte) []byte {
	in := make([]byte, 2+len(shard))
	binary.BigEndian.PutUint16(in, uint16(idx))
	copy(in[2:], shard)
	return in
}

// Prepare erasure-codes data and builds the authentication tree over the shards.
//
// The data shards may share memory with data,
// so data must not be modified after calling Prepare.
func Prepare(log *slog.Logger, data []byte, cfg PrepareConfig) (Prepared, error) {
	if cfg.MaxShardSize <= 0 {
		panic(fmt.Errorf(
			"BUG: MaxShardSize must be positive (got %d)", cfg.MaxShardSize,
		))
	}
	if cfg.ParityRatio < 0 {
		panic(fmt.Errorf(
			"BUG: ParityRatio must be non-negative (got %g)", cfg.ParityRatio,
		))
	}

	if len(data) == 0 {
		return Prepared{}, errors.New("cannot prepare empty data")
	}

	nData := len(data) / cfg.MaxShardSize
	if len(data)%cfg.MaxShardSize > 0 {
		nData++
	}

	nParity := max(1, int(cfg.ParityRatio*float32(nData)))
	total := nextPowerOfTwo(nData + nParity)
	if total > MaxShards {
		return Prepared{}, fmt.Errorf(
			"data too large: %d data shards need %d total shards, but limit is %d",
			nData, total, MaxShards,
		)
	}
	nParity = total - nData

	shardSize := len(data) / nData
	if len(data)%nData > 0 {
		shardSize++
	}

	enc, err := reedsolomon.New(
		nData, nParity,
		reedsolomon.WithAutoGoroutines(shardSize),
	)
	if err != nil {
		return Prepared{}, fmt.Errorf(
			"failed to build Reed-Solomon encoder: %w", err,
		)
	}

	shards, err := enc.Split(data)
	if err != nil {
		return Prepared{}, fmt.Errorf(
			"failed to split data into shards: %w", err,
		)
	}

	if err := enc.Encode(shards); err != nil {
		return Prepared{}, fmt.Errorf(
			"failed to erasure-code data: %w", err,
		)
	}

	leaves := make([][]byte, total)
	for i, s := range shards {
		leaves[i] = LeafInput(i, s)
	}

	tree, err := mtree.Build(log, total, leaves, cfg.Tree)
	if err != nil {
		// The shard count is a power of two by construction.
		panic(fmt.Errorf("BUG: failed to build tree over shards: %w", err))
	}

	proofs := make([]mtree.Path, total)
	for i := range proofs {
		// Every index is a leaf index, so FindPath cannot fail.
		proofs[i], _ = tree.FindPath(i)
	}

	log.Debug(
		"Prepared shards",
		"num_data", nData,
		"num_parity", nParity,
		"shard_size", shardSize,
		"data_size", len(data),
	)

	return Prepared{
		NumData:   nData,
		NumParity: nParity,
		DataSize:  len(data),

		Shards: shards,
		Proofs: proofs,

		Tree: tree,
	}, nil
}

// nextPowerOfTwo returns the smallest power of two that is at least n.
// n must be positive.
func nextPowerOfTwo(n int) int {
	return 1 << bits.Len(uint(n-1))
}
