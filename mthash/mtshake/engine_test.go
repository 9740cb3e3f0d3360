package mtshake_test

import (
	"encoding/hex"
	"testing"

	"github.com/gordian-engine/mtree/mthash"
	"github.com/gordian-engine/mtree/mthash/mthashtest"
	"github.com/gordian-engine/mtree/mthash/mtshake"
	"github.com/stretchr/testify/require"
)

func TestCompliance256(t *testing.T) {
	t.Parallel()

	mthashtest.TestEngineCompliance(t, func() mthash.Engine {
		return mtshake.Engine256{}
	})
}

func TestCompliance128(t *testing.T) {
	t.Parallel()

	mthashtest.TestEngineCompliance(t, func() mthash.Engine {
		return mtshake.Engine128{}
	})
}

func TestEngine256_knownAnswer(t *testing.T) {
	t.Parallel()

	// SHAKE256 of the empty string, first 32 bytes.
	got := mtshake.Engine256{}.Hash(nil, 32, nil)
	require.Equal(
		t,
		"46b9dd2b0ba88d13233b3feb743eeb243fcd52ea62b81b82b50c27646ed5762f",
		hex.EncodeToString(got),
	)
}

func TestEngine128_knownAnswer(t *testing.T) {
	t.Parallel()

	// SHAKE128 of the empty string, first 32 bytes.
	got := mtshake.Engine128{}.Hash(nil, 32, nil)
	require.Equal(
		t,
		"7f9c2ba4e88f827d616045507605853ed73b8093f6efbc88eb1a6eacfa66ef26",
		hex.EncodeToString(got),
	)
}

func TestEngine256_differsFrom128(t *testing.T) {
	t.Parallel()

	in := []byte("same input")
	require.NotEqual(
		t,
		mtshake.Engine256{}.Hash(in, mtshake.DefaultOutputSize, nil),
		mtshake.Engine128{}.Hash(in, mtshake.DefaultOutputSize, nil),
	)
}
