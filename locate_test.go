package mtree_test

import (
	"testing"

	"github.com/gordian-engine/mtree"
	"github.com/gordian-engine/mtree/internal/mttest"
	"github.com/stretchr/testify/require"
)

func TestTree_LocateLeaf(t *testing.T) {
	t.Parallel()

	leaves := mttest.RandomLeaves(t, 32, 256)
	tree, err := mtree.Build(mttest.NewLogger(t), 32, leaves, mtree.DefaultBuildConfig())
	require.NoError(t, err)

	for i, leaf := range leaves {
		idx, ok := tree.LocateLeaf(leaf)
		require.True(t, ok)
		require.Equal(t, i, idx)
	}

	_, ok := tree.LocateLeaf([]byte("never inserted"))
	require.False(t, ok)
}

func TestTree_LocateLeaf_duplicatesReturnFirst(t *testing.T) {
	t.Parallel()

	leaves := [][]byte{
		[]byte("a"),
		[]byte("dup"),
		[]byte("b"),
		[]byte("dup"),
	}
	tree, err := mtree.Build(mttest.NewLogger(t), 4, leaves, mtree.DefaultBuildConfig())
	require.NoError(t, err)

	idx, ok := tree.LocateLeaf([]byte("dup"))
	require.True(t, ok)
	require.Equal(t, 1, idx)
}

func TestTree_LocateLeaf_thenVerify(t *testing.T) {
	t.Parallel()

	leaves := mttest.RandomLeaves(t, 8, 256)
	tree, err := mtree.Build(mttest.NewLogger(t), 8, leaves, mtree.DefaultBuildConfig())
	require.NoError(t, err)

	idx, ok := tree.LocateLeaf(leaves[6])
	require.True(t, ok)

	path, err := tree.FindPath(idx)
	require.NoError(t, err)

	leafHash := tree.Combiner().HashLeaf(leaves[6], nil)
	require.True(t, tree.Verify(path, leafHash))
}
