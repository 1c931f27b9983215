//go:build !linux

// Package randsrc provides the entropy source backing randomized factoring
// heuristics (Pollard rho's polynomial seed, Lenstra ECF's curve parameter).
package randsrc

import "crypto/rand"

// Read fills buf with cryptographically secure random bytes.
func Read(buf []byte) error {
	_, err := rand.Read(buf)
	return err
}
