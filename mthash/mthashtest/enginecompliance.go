// Package mthashtest contains a compliance suite
// for implementations of [mthash.Engine].
package mthashtest

import (
	"testing"

	"github.com/gordian-engine/mtree/mthash"
	"github.com/stretchr/testify/require"
)

type EngineFactory func() mthash.Engine

func TestEngineCompliance(t *testing.T, f EngineFactory) {
	t.Run("output is deterministic", func(t *testing.T) {
		t.Parallel()

		e := f()

		a := e.Hash([]byte("deterministic_data"), 16, nil)
		b := e.Hash([]byte("deterministic_data"), 16, nil)

		require.Equal(t, a, b)
	})

	t.Run("output has requested length", func(t *testing.T) {
		t.Parallel()

		e := f()

		for _, n := range []int{0, 1, 16, 32, 100, 300} {
			require.Len(t, e.Hash([]byte("length"), n, nil), n)
		}
	})

	t.Run("output depends on input", func(t *testing.T) {
		t.Parallel()

		e := f()

		a := e.Hash([]byte("input_1"), 16, nil)
		b := e.Hash([]byte("input_2"), 16, nil)

		require.NotEqual(t, a, b)
	})

	t.Run("shorter output is a prefix of longer output", func(t *testing.T) {
		t.Parallel()

		e := f()

		short := e.Hash([]byte("xof"), 16, nil)
		long := e.Hash([]byte("xof"), 64, nil)

		require.Equal(t, short, long[:16])
	})

	t.Run("appends to dst", func(t *testing.T) {
		t.Parallel()

		e := f()

		prefix := []byte("prefix")
		got := e.Hash([]byte("data"), 16, append([]byte(nil), prefix...))

		require.Len(t, got, len(prefix)+16)
		require.Equal(t, prefix, got[:len(prefix)])
		require.Equal(t, e.Hash([]byte("data"), 16, nil), got[len(prefix):])
	})

	t.Run("writes in place with spare capacity", func(t *testing.T) {
		t.Parallel()

		e := f()

		mem := make([]byte, 32)
		out := e.Hash([]byte("in place"), 16, mem[16:16])

		require.Equal(t, out, mem[16:])
		require.Equal(t, make([]byte, 16), mem[:16])
	})
}
