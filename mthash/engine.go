// Package mthash declares the hash primitive used by the authentication tree.
//
// The tree never hashes anything directly.
// Both leaf hashing and node combination go through an [Engine],
// so that the concrete primitive and its output width
// are decided by the caller at construction time.
package mthash

// Engine is an extendable-output hash function.
//
// Hash must append exactly outLen bytes of output to dst
// and return the extended slice, in the manner of append.
// If dst has enough spare capacity, the output must be written in place
// so that callers can hash directly into preallocated memory.
// Engine must not retain references to in or dst.
//
// The output must be a deterministic function of in and outLen only,
// and Engine methods must be safe to call concurrently.
type Engine interface {
	Hash(in []byte, outLen int, dst []byte) []byte
}
