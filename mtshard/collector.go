package mtshard

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/bits"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/gordian-engine/mtree"
	"github.com/klauspost/reedsolomon"
)

var (
	ErrShardOutOfRange = errors.New("shard index out of range")
	ErrDuplicateShard  = errors.New("shard already collected")
	ErrShardMismatch   = errors.New("shard does not match root")
	ErrNotReady        = errors.New("not enough shards collected")
)

// CollectorConfig is the config for [NewCollector].
// Every field normally comes from the [Prepared] value on the sending side.
type CollectorConfig struct {
	NumData, NumParity int

	DataSize int

	// Root is the tree root that every shard must verify against.
	Root []byte

	// Combiner must match the one the sender's tree was built with.
	Combiner mtree.Combiner
}

// Collector accumulates verified shards
// until it can reconstruct the original payload.
//
// A Collector is not safe for concurrent use.
type Collector struct {
	log *slog.Logger

	cfg CollectorConfig

	enc reedsolomon.Encoder

	// Shards indexed by position; nil until collected.
	shards [][]byte

	// Which shards are present, so that we don't need to
	// inspect the shards slice for nil entries.
	have *bitset.BitSet

	depth int
}

// NewCollector returns a Collector for the shard layout in cfg.
func NewCollector(log *slog.Logger, cfg CollectorConfig) (*Collector, error) {
	var errs error

	if cfg.NumData < 1 {
		errs = errors.Join(errs, fmt.Errorf(
			"NumData must be positive (got %d)", cfg.NumData,
		))
	}
	if cfg.NumParity < 1 {
		errs = errors.Join(errs, fmt.Errorf(
			"NumParity must be positive (got %d)", cfg.NumParity,
		))
	}

	total := cfg.NumData + cfg.NumParity
	if total < 1 || total&(total-1) != 0 || total > MaxShards {
		errs = errors.Join(errs, fmt.Errorf(
			"total shard count must be a power of two no greater than %d (got %d)",
			MaxShards, total,
		))
	}
	if cfg.DataSize < 1 {
		errs = errors.Join(errs, fmt.Errorf(
			"DataSize must be positive (got %d)", cfg.DataSize,
		))
	}
	if cfg.Combiner.Engine == nil {
		errs = errors.Join(errs, errors.New("Combiner.Engine must not be nil"))
	}
	if cfg.Combiner.HashWidth <= 0 {
		errs = errors.Join(errs, fmt.Errorf(
			"Combiner.HashWidth must be positive (got %d)", cfg.Combiner.HashWidth,
		))
	}
	if len(cfg.Root) != cfg.Combiner.HashWidth {
		errs = errors.Join(errs, fmt.Errorf(
			"root must be %d bytes (got %d)", cfg.Combiner.HashWidth, len(cfg.Root),
		))
	}

	if errs != nil {
		return nil, fmt.Errorf("invalid collector config: %w", errs)
	}

	enc, err := reedsolomon.New(cfg.NumData, cfg.NumParity)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to build Reed-Solomon encoder: %w", err,
		)
	}

	return &Collector{
		log: log,

		cfg: cfg,

		enc: enc,

		shards: make([][]byte, total),
		have:   bitset.MustNew(uint(total)),

		depth: bits.Len(uint(total)) - 1,
	}, nil
}

// AddShard checks shard against the root using path,
// and retains a copy of it if it passes.
// The path check rejects corrupted shards early;
// it cannot reject a shard sent with a deliberately fitted path,
// which is left to the root check in [*Collector.Data].
//
// It returns an error wrapping [ErrShardOutOfRange], [ErrDuplicateShard],
// or [ErrShardMismatch] when the shard is rejected.
func (c *Collector) AddShard(idx int, shard []byte, path mtree.Path) error {
	if idx < 0 || idx >= len(c.shards) {
		return fmt.Errorf(
			"%w: index %d, shard count %d", ErrShardOutOfRange, idx, len(c.shards),
		)
	}

	if c.have.Test(uint(idx)) {
		return fmt.Errorf("%w: index %d", ErrDuplicateShard, idx)
	}

	if len(path) != c.depth {
		return fmt.Errorf(
			"%w: path for index %d has %d elements, expected %d",
			ErrShardMismatch, idx, len(path), c.depth,
		)
	}

	leafHash := c.cfg.Combiner.HashLeaf(LeafInput(idx, shard), nil)
	if !mtree.VerifyRoot(c.cfg.Combiner, path, leafHash, c.cfg.Root) {
		c.log.Info(
			"Rejected shard that failed verification",
			"index", idx,
			"shard_size", len(shard),
		)
		return fmt.Errorf("%w: index %d", ErrShardMismatch, idx)
	}

	c.shards[idx] = bytes.Clone(shard)
	c.have.Set(uint(idx))

	return nil
}

// Have reports whether the shard at idx has been collected.
func (c *Collector) Have(idx int) bool {
	return idx >= 0 && idx < len(c.shards) && c.have.Test(uint(idx))
}

// Ready reports whether enough shards have been collected
// to reconstruct the payload.
func (c *Collector) Ready() bool {
	return c.have.Count() >= uint(c.cfg.NumData)
}

// Data reconstructs and returns the original payload.
// If fewer than NumData shards have been collected,
// it returns an error wrapping [ErrNotReady].
//
// Before returning, Data recomputes every parity shard from the data shards,
// rebuilds the tree over all of them, and compares its root to the configured root.
// If they differ it returns an error wrapping [ErrShardMismatch];
// the collector cannot tell which shard was bad.
func (c *Collector) Data() ([]byte, error) {
	if !c.Ready() {
		return nil, fmt.Errorf(
			"%w: have %d of %d required",
			ErrNotReady, c.have.Count(), c.cfg.NumData,
		)
	}

	first, _ := c.have.NextSet(0)
	shardSize := len(c.shards[first])
	if capacity := c.cfg.NumData * shardSize; c.cfg.DataSize > capacity {
		return nil, fmt.Errorf(
			"data size %d exceeds capacity of %d data shards of %d bytes",
			c.cfg.DataSize, c.cfg.NumData, shardSize,
		)
	}

	// Reconstruct into a copy of the shard list,
	// so the collected shards are left as they were if the root check fails.
	shards := slices.Clone(c.shards)
	if err := c.enc.ReconstructData(shards); err != nil {
		return nil, fmt.Errorf("failed to reconstruct data shards: %w", err)
	}

	if err := c.checkRoot(shards); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(c.cfg.DataSize)
	if err := c.enc.Join(&buf, shards, c.cfg.DataSize); err != nil {
		return nil, fmt.Errorf("failed to join data shards: %w", err)
	}

	return buf.Bytes(), nil
}

// checkRoot re-encodes the parity shards from the reconstructed data shards,
// builds the tree over every shard, and compares its root to the configured root.
//
// The per-shard path check in AddShard is not enough on its own:
// the combination hashes the exclusive-or of its inputs,
// so a first path element can be chosen to fit any leaf hash.
func (c *Collector) checkRoot(shards [][]byte) error {
	total := len(shards)
	shardSize := len(shards[0])

	full := make([][]byte, total)
	copy(full, shards[:c.cfg.NumData])

	parityMem := make([]byte, c.cfg.NumParity*shardSize)
	for i := c.cfg.NumData; i < total; i++ {
		start := (i - c.cfg.NumData) * shardSize
		full[i] = parityMem[start : start+shardSize : start+shardSize]
	}

	if err := c.enc.Encode(full); err != nil {
		return fmt.Errorf("failed to re-encode parity shards: %w", err)
	}

	leaves := make([][]byte, total)
	for i, s := range full {
		leaves[i] = LeafInput(i, s)
	}

	tree, err := mtree.Build(c.log, total, leaves, mtree.BuildConfig{
		Engine:    c.cfg.Combiner.Engine,
		HashWidth: c.cfg.Combiner.HashWidth,
		Encoding:  c.cfg.Combiner.Encoding,
	})
	if err != nil {
		// NewCollector only accepts power-of-two shard counts.
		panic(fmt.Errorf("BUG: failed to rebuild tree over shards: %w", err))
	}

	if subtle.ConstantTimeCompare(tree.Root(), c.cfg.Root) != 1 {
		c.log.Info(
			"Rejected shard set whose rebuilt root does not match",
			"num_collected", c.have.Count(),
		)
		return fmt.Errorf("%w: rebuilt root differs from expected root", ErrShardMismatch)
	}

	return nil
}
