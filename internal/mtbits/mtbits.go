// Package mtbits converts fixed-width hash values
// to and from their bit-level representation.
//
// Bit position 8*i + (7-j) holds bit j (least significant is 0)
// of stored byte i; that is, bytes in storage order,
// each byte most significant bit first.
package mtbits

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Expand returns a bitset of length 8*len(h) holding the bits of h.
func Expand(h []byte) *bitset.BitSet {
	bs := bitset.MustNew(8 * uint(len(h)))
	for i, b := range h {
		for j := range 8 {
			if (b>>j)&1 == 1 {
				bs.Set(uint(8*i + 7 - j))
			}
		}
	}
	return bs
}

// Xor expands a and b and returns their elementwise exclusive-or.
// It panics if a and b have different lengths.
func Xor(a, b []byte) *bitset.BitSet {
	if len(a) != len(b) {
		panic(fmt.Errorf(
			"BUG: cannot xor bit sequences of different lengths (%d and %d bytes)",
			len(a), len(b),
		))
	}

	x := Expand(a)
	x.InPlaceSymmetricDifference(Expand(b))
	return x
}

// AppendUnpacked appends the first n bits of bs to dst,
// one byte per bit, each byte either 0 or 1.
func AppendUnpacked(dst []byte, bs *bitset.BitSet, n uint) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, n)...)

	for i, ok := bs.NextSet(0); ok && i < n; i, ok = bs.NextSet(i + 1) {
		dst[start+int(i)] = 1
	}
	return dst
}

// AppendPacked appends the first n bits of bs to dst,
// eight bits per byte, most significant bit first.
// n must be a multiple of 8.
func AppendPacked(dst []byte, bs *bitset.BitSet, n uint) []byte {
	if n%8 != 0 {
		panic(fmt.Errorf(
			"BUG: packed bit count must be a multiple of 8 (got %d)", n,
		))
	}

	start := len(dst)
	dst = append(dst, make([]byte, n/8)...)

	for i, ok := bs.NextSet(0); ok && i < n; i, ok = bs.NextSet(i + 1) {
		dst[start+int(i/8)] |= 0x80 >> (i % 8)
	}
	return dst
}
