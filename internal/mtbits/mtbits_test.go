package mtbits_test

import (
	"testing"

	"github.com/gordian-engine/mtree/internal/mtbits"
	"github.com/stretchr/testify/require"
)

func TestExpand_bitOrder(t *testing.T) {
	t.Parallel()

	bs := mtbits.Expand([]byte{0x80, 0x01})
	require.Equal(t, uint(16), bs.Len())

	// 0x80 is the most significant bit of the first byte.
	require.True(t, bs.Test(0))
	// 0x01 is the least significant bit of the second byte.
	require.True(t, bs.Test(15))
	require.Equal(t, uint(2), bs.Count())
}

func TestAppendUnpacked(t *testing.T) {
	t.Parallel()

	bs := mtbits.Expand([]byte{0xA5})
	got := mtbits.AppendUnpacked([]byte("x"), bs, 8)

	require.Equal(t, []byte{'x', 1, 0, 1, 0, 0, 1, 0, 1}, got)
}

func TestAppendPacked_roundTrip(t *testing.T) {
	t.Parallel()

	in := []byte{0x00, 0xFF, 0x5A, 0xC3}
	got := mtbits.AppendPacked(nil, mtbits.Expand(in), 32)

	require.Equal(t, in, got)
}

func TestXor(t *testing.T) {
	t.Parallel()

	a := []byte{0xF0, 0x0F}
	b := []byte{0xFF, 0x0F}

	x := mtbits.Xor(a, b)
	require.Equal(t, []byte{0x0F, 0x00}, mtbits.AppendPacked(nil, x, 16))

	// Order of operands does not matter.
	require.True(t, x.Equal(mtbits.Xor(b, a)))

	// Equal inputs cancel out.
	require.Zero(t, mtbits.Xor(a, a).Count())
}

func TestXor_lengthMismatch(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_ = mtbits.Xor([]byte{1}, []byte{1, 2})
	})
}
