// Package mtshake provides [mthash.Engine] implementations
// backed by the SHAKE extendable-output functions of FIPS 202.
package mtshake

import (
	"fmt"
	"slices"

	"github.com/gordian-engine/mtree/mthash"
	"golang.org/x/crypto/sha3"
)

// DefaultOutputSize is the hash width used when no other width is configured:
// 128 bits of SHAKE256 output.
const DefaultOutputSize = 16

// Engine256 is an [mthash.Engine] backed by SHAKE256.
type Engine256 struct{}

var _ mthash.Engine = Engine256{}

func (Engine256) Hash(in []byte, outLen int, dst []byte) []byte {
	return squeeze(sha3.NewShake256(), in, outLen, dst)
}

// Engine128 is an [mthash.Engine] backed by SHAKE128.
// It is faster than [Engine256] at the cost of a lower security level.
type Engine128 struct{}

var _ mthash.Engine = Engine128{}

func (Engine128) Hash(in []byte, outLen int, dst []byte) []byte {
	return squeeze(sha3.NewShake128(), in, outLen, dst)
}

func squeeze(h sha3.ShakeHash, in []byte, outLen int, dst []byte) []byte {
	if outLen < 0 {
		panic(fmt.Errorf(
			"BUG: output length must be non-negative (got %d)", outLen,
		))
	}

	_, _ = h.Write(in)

	start := len(dst)
	dst = slices.Grow(dst, outLen)[:start+outLen]

	// Reading from a ShakeHash never fails.
	_, _ = h.Read(dst[start:])
	return dst
}
