package mtree

import (
	"fmt"

	"github.com/gordian-engine/mtree/internal/mtbits"
	"github.com/gordian-engine/mtree/mthash"
)

// BitEncoding selects how the exclusive-or bit sequence in [Combiner.Combine]
// is serialized before it is passed to the hash engine.
//
// A tree and every root reconstructed against it
// must use the same encoding; proofs never verify across encodings.
type BitEncoding uint8

const (
	// UnpackedBits serializes every bit as its own byte, 0x00 or 0x01.
	// The engine input is 8*HashWidth bytes.
	UnpackedBits BitEncoding = iota

	// PackedBits serializes eight bits per byte, most significant bit first.
	// The engine input is HashWidth bytes.
	PackedBits
)

func (e BitEncoding) String() string {
	switch e {
	case UnpackedBits:
		return "unpacked"
	case PackedBits:
		return "packed"
	default:
		return fmt.Sprintf("BitEncoding(%d)", uint8(e))
	}
}

// Combiner hashes leaf inputs and merges pairs of hashes into parent hashes.
//
// The zero value is not usable; see [DefaultBuildConfig].
type Combiner struct {
	Engine    mthash.Engine
	HashWidth int
	Encoding  BitEncoding
}

// HashLeaf appends the hash of the raw leaf input in to dst.
func (c Combiner) HashLeaf(in, dst []byte) []byte {
	return c.Engine.Hash(in, c.HashWidth, dst)
}

// Combine appends the parent hash of left and right to dst.
//
// Both inputs are expanded to 8*HashWidth single bits,
// the two bit sequences are combined with exclusive-or,
// and the result, serialized per c.Encoding, is hashed to HashWidth bytes.
//
// Combine(a, b) always equals Combine(b, a).
func (c Combiner) Combine(left, right, dst []byte) []byte {
	if len(left) != c.HashWidth || len(right) != c.HashWidth {
		panic(fmt.Errorf(
			"BUG: combine requires two %d-byte hashes (got %d and %d bytes)",
			c.HashWidth, len(left), len(right),
		))
	}

	x := mtbits.Xor(left, right)
	nBits := 8 * uint(c.HashWidth)

	var in []byte
	switch c.Encoding {
	case UnpackedBits:
		in = mtbits.AppendUnpacked(make([]byte, 0, nBits), x, nBits)
	case PackedBits:
		in = mtbits.AppendPacked(make([]byte, 0, c.HashWidth), x, nBits)
	default:
		panic(fmt.Errorf("BUG: unknown bit encoding %s", c.Encoding))
	}

	return c.Engine.Hash(in, c.HashWidth, dst)
}
