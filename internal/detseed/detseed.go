// Package detseed derives deterministic pseudo-random seeds from a label
// and an integer index, for use in property-based tests that need
// reproducible-but-varied inputs across many sub-cases without a shared
// package-level PRNG.
package detseed

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// Seed returns a deterministic uint64 derived from label and index by
// hashing their concatenation with blake3 and taking the first 8 bytes of
// the digest.
func Seed(label string, index uint64) uint64 {
	hasher := blake3.New()
	if _, err := hasher.Write([]byte(label)); err != nil {
		panic(err) // hash.Hash.Write never fails
	}
	var idxBuf [8]byte
	binary.BigEndian.PutUint64(idxBuf[:], index)
	if _, err := hasher.Write(idxBuf[:]); err != nil {
		panic(err)
	}
	digest := hasher.Sum(nil)
	return binary.LittleEndian.Uint64(digest[:8])
}

// Stream returns the first n deterministic seeds derived from label, one
// per index from 0 to n-1.
func Stream(label string, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = Seed(label, uint64(i))
	}
	return out
}
