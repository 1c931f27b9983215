//go:build linux

// Package randsrc provides the entropy source backing randomized factoring
// heuristics (Pollard rho's polynomial seed, Lenstra ECF's curve parameter).
// On Linux it reads directly from the kernel CSPRNG via getrandom(2),
// falling back to /dev/urandom; other platforms use crypto/rand.
package randsrc

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Read fills buf with cryptographically secure random bytes from the
// kernel, retrying on EINTR as getrandom(2) may return early. If
// getrandom(2) fails otherwise, the rest of buf is read from /dev/urandom.
func Read(buf []byte) error {
	for len(buf) > 0 {
		n, err := unix.Getrandom(buf, 0)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			f, ferr := os.Open("/dev/urandom")
			if ferr != nil {
				return err
			}
			defer f.Close()
			_, err = io.ReadFull(f, buf)
			return err
		}
		buf = buf[n:]
	}
	return nil
}
