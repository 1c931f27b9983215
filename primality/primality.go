// Package primality implements the primality-testing and single-factor-
// extraction kernels used to build complete factorizations: a deterministic
// Miller-Rabin test valid for the full uint64 range, Pollard's rho with
// Brent's cycle detection and batched gcd evaluation, and Lenstra's
// elliptic-curve factorization method in Montgomery form.
package primality

import (
	"math/bits"

	"github.com/hacatu/nut/internal/randsrc"
	"github.com/hacatu/nut/modular"
)

// mrWitnesses is a fixed witness set sufficient to make Miller-Rabin
// deterministic for every n < 2^64.
var mrWitnesses = [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// IsPrimeMR reports whether n is prime using deterministic Miller-Rabin
// with a fixed witness set valid across the entire uint64 range.
func IsPrimeMR(n uint64) bool {
	if n < 2 {
		return false
	}
	for _, p := range [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37} {
		if n == p {
			return true
		}
		if n%p == 0 {
			return false
		}
	}
	d := n - 1
	s := bits.TrailingZeros64(d)
	d >>= uint(s)
	for _, a := range mrWitnesses {
		if a >= n {
			break
		}
		x := modular.PowMod(a, d, n)
		if x == 1 || x == n-1 {
			continue
		}
		witness := true
		for i := 0; i < s-1; i++ {
			x = modular.MulMod(x, x, n)
			if x == n-1 {
				witness = false
				break
			}
		}
		if witness {
			return false
		}
	}
	return true
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

// PollardSimple runs the plain (non-Brent) Pollard rho iteration x -> x^2+1
// mod n from the seed x, using Floyd's tortoise-and-hare cycle detection.
// It returns a nontrivial factor of n, or n itself if the search failed to
// separate (the caller should retry with a different seed).
func PollardSimple(n, x uint64) uint64 {
	y := x
	d := uint64(1)
	for d == 1 {
		x = modular.MulMod(x, x, n) + 1
		if x >= n {
			x -= n
		}
		y = modular.MulMod(y, y, n) + 1
		if y >= n {
			y -= n
		}
		y = modular.MulMod(y, y, n) + 1
		if y >= n {
			y -= n
		}
		g, _, _ := modular.EGCD(int64(absDiff(x, y)), int64(n))
		d = uint64(g)
	}
	return d
}

// PollardBrentSeeded runs Pollard's rho with Brent's cycle detection and a
// batched ("coalesced") gcd computed over m differences at a time, which
// trades a small chance of overshooting into n itself for far fewer gcd
// calls than the plain tortoise-and-hare version. seed is the starting
// point x0 and stride is the batch size m.
func PollardBrentSeeded(n, seed, stride uint64) uint64 {
	x, y, ys := seed, seed, seed
	d := uint64(1)
	r := uint64(1)
	q := uint64(1)
	for d == 1 {
		x = y
		for i := uint64(0); i < r; i++ {
			y = modular.MulMod(y, y, n) + 1
			if y >= n {
				y -= n
			}
		}
		for k := uint64(0); k < r && d == 1; k += stride {
			ys = y
			limit := stride
			if r-k < limit {
				limit = r - k
			}
			for i := uint64(0); i < limit; i++ {
				y = modular.MulMod(y, y, n) + 1
				if y >= n {
					y -= n
				}
				q = modular.MulMod(q, absDiff(x, y), n)
			}
			g, _, _ := modular.EGCD(int64(q), int64(n))
			d = uint64(g)
		}
		r *= 2
	}
	if d == n {
		for d == 1 || d == 0 {
			ys = modular.MulMod(ys, ys, n) + 1
			if ys >= n {
				ys -= n
			}
			g, _, _ := modular.EGCD(int64(absDiff(x, ys)), int64(n))
			d = uint64(g)
			if d == 1 && ys == x {
				return n
			}
		}
	}
	return d
}

// PollardBrent draws a random starting point in [0, n), uniformly and
// without modulo bias, and runs PollardBrentSeeded from it.
func PollardBrent(n, stride uint64) (uint64, error) {
	seed, err := randsrc.UniformUint64(n)
	if err != nil {
		return 0, err
	}
	return PollardBrentSeeded(n, seed, stride), nil
}

// montgomeryMod reduces a value already known to lie in (-n, 2n) into
// [0, n), mirroring the C source's habit of computing differences that may
// be negative before the final reduction.
func montgomeryMod(v int64, n uint64) uint64 {
	m := v % int64(n)
	if m < 0 {
		m += int64(n)
	}
	return uint64(m)
}

// LenstraECF attempts to split n using Lenstra's elliptic curve
// factorization method with the curve By^2 = X^3 + aX^2 + X in Montgomery
// projective form, starting from the point (x:1) and the curve parameter a,
// trying successive scalars k = 2..B. It returns a nontrivial factor of n on
// success, or n itself if no factor was found within the bound B (the
// caller should retry with fresh random x, a).
//
// This follows the Montgomery-ladder formulation rather than the affine
// Weierstrass one: only X and Z projective coordinates are tracked, which
// avoids ever computing a modular inverse during the scalar ladder and
// halves the number of field multiplications per bit compared to the
// general double-and-add used for Weierstrass curves.
func LenstraECF(n uint64, x, a uint64) uint64 {
	if g, _, _ := modular.EGCD(int64(n), 6); g != 1 {
		return uint64(g)
	}
	x %= n
	fourInv, err := modular.ModInv(4, int64(n))
	if err != nil {
		return n
	}
	a %= n
	C := modular.MulMod((a+2)%n, uint64(fourInv), n)
	cuspCheck := montgomeryMod(int64(modular.MulMod(a, a, n))-4, n)
	if g, _, _ := modular.EGCD(int64(cuspCheck), int64(n)); g != 1 {
		return uint64(g)
	}

	const B = 1000
	Zh, Xh := uint64(1), x
	Z1, X1 := uint64(1), x
	for k := uint64(2); k <= B; k++ {
		Zl, Xl := uint64(0), uint64(1)
		for t := uint64(1) << uint(63-bits.LeadingZeros64(k)); t != 0; t >>= 1 {
			dh := montgomeryMod(int64(Xh)-int64(Zh), n)
			sl := (Xl + Zl) % n
			sh := (Xh + Zh) % n
			dl := montgomeryMod(int64(Xl)-int64(Zl), n)
			dhsl := modular.MulMod(dh, sl, n)
			shdl := modular.MulMod(sh, dl, n)
			if k&t != 0 {
				// L = L+H (scaled by the running difference Z1:X1), H = 2H
				Xl = modular.MulMod(Z1, modular.MulMod((dhsl+shdl)%n, (dhsl+shdl)%n, n), n)
				Zl = modular.MulMod(X1, modular.MulMod(montgomeryMod(int64(dhsl)-int64(shdl), n), montgomeryMod(int64(dhsl)-int64(shdl), n), n), n)
				sh2 := modular.MulMod(sh, sh, n)
				dh2 := modular.MulMod(dh, dh, n)
				ch := montgomeryMod(int64(sh2)-int64(dh2), n)
				Xh = modular.MulMod(sh2, dh2, n)
				Zh = modular.MulMod(ch, (dh2+modular.MulMod(C, ch, n))%n, n)
			} else {
				// H = L+H (scaled by the base point x:1), L = 2L
				Xh = modular.MulMod((dhsl+shdl)%n, (dhsl+shdl)%n, n)
				Zh = modular.MulMod(x, modular.MulMod(montgomeryMod(int64(dhsl)-int64(shdl), n), montgomeryMod(int64(dhsl)-int64(shdl), n), n), n)
				sl2 := modular.MulMod(sl, sl, n)
				dl2 := modular.MulMod(dl, dl, n)
				cl := montgomeryMod(int64(sl2)-int64(dl2), n)
				Xl = modular.MulMod(sl2, dl2, n)
				Zl = modular.MulMod(cl, (dl2+modular.MulMod(C, cl, n))%n, n)
			}
		}
		if Zl == 0 {
			return n
		}
		g, _, _ := modular.EGCD(int64(Zl), int64(n))
		if g != 1 {
			return uint64(g)
		}
		Z1, X1 = Zl, Xl
	}
	return n
}
