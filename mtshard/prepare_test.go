package mtshard_test

import (
	"testing"

	"github.com/gordian-engine/mtree"
	"github.com/gordian-engine/mtree/internal/mttest"
	"github.com/gordian-engine/mtree/mtshard"
	"github.com/stretchr/testify/require"
)

func TestPrepare_shape(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name         string
		dataSize     int
		maxShardSize int
		parityRatio  float32
		wantData     int
		wantParity   int
	}{
		{name: "single shard", dataSize: 10, maxShardSize: 100, parityRatio: 0, wantData: 1, wantParity: 1},
		{name: "exact fit", dataSize: 400, maxShardSize: 100, parityRatio: 1, wantData: 4, wantParity: 4},
		{name: "rounded up to power of two", dataSize: 1000, maxShardSize: 100, parityRatio: 0.5, wantData: 10, wantParity: 6},
		{name: "partial final shard", dataSize: 301, maxShardSize: 100, parityRatio: 0.25, wantData: 4, wantParity: 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			data := mttest.RandomDataForTest(t, tc.dataSize)
			p, err := mtshard.Prepare(mttest.NewLogger(t), data, mtshard.PrepareConfig{
				MaxShardSize: tc.maxShardSize,
				ParityRatio:  tc.parityRatio,
				Tree:         mtree.DefaultBuildConfig(),
			})
			require.NoError(t, err)

			require.Equal(t, tc.wantData, p.NumData)
			require.Equal(t, tc.wantParity, p.NumParity)
			require.Equal(t, tc.dataSize, p.DataSize)

			total := p.NumData + p.NumParity
			require.Len(t, p.Shards, total)
			require.Len(t, p.Proofs, total)
			require.Equal(t, total, p.Tree.LeafCount())

			for i, s := range p.Shards {
				require.LessOrEqual(t, len(s), tc.maxShardSize)
				require.Len(t, s, len(p.Shards[0]))

				leafHash := p.Tree.Combiner().HashLeaf(mtshard.LeafInput(i, s), nil)
				require.Equal(t, leafHash, p.Tree.Leaf(i))
				require.True(t, p.Tree.Verify(p.Proofs[i], leafHash))
			}
		})
	}
}

func TestPrepare_emptyData(t *testing.T) {
	t.Parallel()

	_, err := mtshard.Prepare(mttest.NewLogger(t), nil, mtshard.PrepareConfig{
		MaxShardSize: 16,
		Tree:         mtree.DefaultBuildConfig(),
	})
	require.Error(t, err)
}

func TestPrepare_tooManyShards(t *testing.T) {
	t.Parallel()

	data := mttest.RandomDataForTest(t, 300)
	_, err := mtshard.Prepare(mttest.NewLogger(t), data, mtshard.PrepareConfig{
		MaxShardSize: 1,
		ParityRatio:  0.1,
		Tree:         mtree.DefaultBuildConfig(),
	})
	require.ErrorContains(t, err, "data too large")
}

func TestPrepare_invalidConfigPanics(t *testing.T) {
	t.Parallel()

	data := []byte("data")

	require.Panics(t, func() {
		_, _ = mtshard.Prepare(mttest.NewLogger(t), data, mtshard.PrepareConfig{
			MaxShardSize: 0,
			Tree:         mtree.DefaultBuildConfig(),
		})
	})

	require.Panics(t, func() {
		_, _ = mtshard.Prepare(mttest.NewLogger(t), data, mtshard.PrepareConfig{
			MaxShardSize: 2,
			ParityRatio:  -1,
			Tree:         mtree.DefaultBuildConfig(),
		})
	})
}

func TestLeafInput(t *testing.T) {
	t.Parallel()

	require.Equal(t, []byte{0x01, 0x02, 'a', 'b'}, mtshard.LeafInput(0x0102, []byte("ab")))
	require.Equal(t, []byte{0, 0}, mtshard.LeafInput(0, nil))
}
