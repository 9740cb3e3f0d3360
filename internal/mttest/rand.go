// Package mttest contains helpers shared by tests across the module.
package mttest

import (
	"crypto/sha256"
	"math/rand/v2"
	"testing"
)

// RandomDataForTest returns a byte slice of size sz
// containing pseudorandom data, derived from a seed based on the test name.
func RandomDataForTest(t *testing.T, sz int) []byte {
	// Sha256 happens to be the right size for the chacha8 seed,
	// and this fits well anyway since that means
	// we are not limited by the length of any particular test name.
	seed := sha256.Sum256([]byte(t.Name()))
	chacha := rand.NewChaCha8(seed)

	out := make([]byte, sz)

	if _, err := chacha.Read(out); err != nil {
		panic(err)
	}

	return out
}

// RandomLeaves returns n leaf inputs of sz bytes each,
// all carved from one [RandomDataForTest] allocation.
func RandomLeaves(t *testing.T, n, sz int) [][]byte {
	mem := RandomDataForTest(t, n*sz)

	leaves := make([][]byte, n)
	for i := range leaves {
		leaves[i] = mem[i*sz : (i+1)*sz : (i+1)*sz]
	}
	return leaves
}
