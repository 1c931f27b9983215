// Package sieve implements fixed-range sieving over the mod-30 wheel: a
// bit-packed composite sieve, prime enumeration, a smallest-prime-factor
// sieve (from which divisor-function sieves and factorizations are built),
// a Mobius/Mertens sieve, a pi(n) count of the wheel's clear bits, and a
// segmented variant of the composite sieve for ranges that don't fit in
// memory all at once.
package sieve

// wheelResidues are the eight residues mod 30 coprime to 30, in increasing
// order; bit i of a wheel word refers to the number 30*q + wheelResidues[i].
var wheelResidues = [8]uint64{1, 7, 11, 13, 17, 19, 23, 29}

// residueBit maps a residue mod 30 to its bit index in wheelResidues, or -1
// if the residue is not coprime to 30.
var residueBit = func() [30]int8 {
	var tbl [30]int8
	for i := range tbl {
		tbl[i] = -1
	}
	for i, r := range wheelResidues {
		tbl[r] = int8(i)
	}
	return tbl
}()

// wheel holds one bit per (q, residue) pair for q in [0, limbs), marking
// composite numbers of the form 30*q + r for r in wheelResidues. A set bit
// means composite.
type wheel struct {
	bits  []uint8 // one byte per q, bit i = wheelResidues[i]
	limbs uint64  // number of q values covered
}

// newWheel allocates a wheel sieve covering every number up to and
// including n.
func newWheel(n uint64) *wheel {
	limbs := n/30 + 1
	return &wheel{bits: make([]uint8, limbs), limbs: limbs}
}

func (w *wheel) isComposite(n uint64) bool {
	r := n % 30
	bi := residueBit[r]
	if bi < 0 {
		return true // not coprime to 30: 2,3,5 and their multiples
	}
	q := n / 30
	return w.bits[q]&(1<<uint(bi)) != 0
}

func (w *wheel) markComposite(n uint64) {
	r := n % 30
	bi := residueBit[r]
	if bi < 0 {
		return
	}
	q := n / 30
	w.bits[q] |= 1 << uint(bi)
}

// sieveWheel marks every composite number up to and including n that is
// coprime to 30 (2, 3, and 5 are handled as special cases by callers). For
// each prime p = 30*pq + pr already found, and for each of the eight wheel
// residues r, it marks multiples of p starting at the smallest m >= p*p
// with m % 30 == r; the cofactor is then stepped by 30, which adds exactly
// 30*p to the product and keeps it on residue r, so every marked m lands on
// a wheel-tracked bit (markComposite computes that bit's position).
func sieveWheel(n uint64) *wheel {
	w := newWheel(n)
	for pq := uint64(0); 30*pq*pq <= n; pq++ {
		for _, pr := range wheelResidues {
			p := 30*pq + pr
			if p < 2 || w.isComposite(p) {
				continue
			}
			if p*p > n {
				continue
			}
			for _, r := range wheelResidues {
				// Find the smallest cofactor c with c's residue making
				// p*c have residue r mod 30, c >= p (so p*c >= p*p).
				c := smallestCofactor(p, r, pr)
				m := p * c
				for m <= n {
					w.markComposite(m)
					c += 30
					m = p * c
				}
			}
		}
	}
	return w
}

// smallestCofactor finds the smallest c >= p such that p*c ≡ wantR
// (mod 30), where pr is p's own residue mod 30. Since gcd(pr,30)=1, pr has
// an inverse mod 30, and c ≡ wantR*pr^-1 (mod 30).
func smallestCofactor(p, wantR, pr uint64) uint64 {
	inv := modInv30[pr]
	c0 := (wantR * inv) % 30
	// c must be >= p (to start marking at p*p at the smallest) and
	// congruent to c0 mod 30; also c must itself be coprime to 30 for
	// p*c to land on a wheel-tracked residue, which c0 already guarantees
	// since wantR is coprime to 30 and inv is a unit.
	c := c0
	for c < p {
		c += 30
	}
	return c
}

// modInv30 maps each unit of Z/30Z to its inverse.
var modInv30 = func() [30]uint64 {
	var tbl [30]uint64
	for _, r := range wheelResidues {
		for x := uint64(1); x < 30; x++ {
			if r*x%30 == 1 {
				tbl[r] = x
				break
			}
		}
	}
	return tbl
}()

// PrimesUpTo returns every prime <= n in increasing order.
func PrimesUpTo(n uint64) []uint64 {
	if n < 2 {
		return nil
	}
	primes := []uint64{}
	for _, p := range [...]uint64{2, 3, 5} {
		if p <= n {
			primes = append(primes, p)
		}
	}
	if n < 7 {
		return primes
	}
	w := sieveWheel(n)
	for q := uint64(0); 30*q <= n; q++ {
		for i, r := range wheelResidues {
			p := 30*q + r
			if p < 7 || p > n {
				continue
			}
			if w.bits[q]&(1<<uint(i)) == 0 {
				primes = append(primes, p)
			}
		}
	}
	return primes
}

// CountPrimesUpTo returns pi(n), the number of primes <= n, by popcounting
// the cleared bits of the wheel sieve rather than materializing the list.
func CountPrimesUpTo(n uint64) uint64 {
	if n < 2 {
		return 0
	}
	count := uint64(0)
	for _, p := range [...]uint64{2, 3, 5} {
		if p <= n {
			count++
		}
	}
	if n < 7 {
		return count
	}
	w := sieveWheel(n)
	for q := uint64(0); 30*q <= n; q++ {
		b := w.bits[q]
		for i, r := range wheelResidues {
			p := 30*q + r
			if p < 7 || p > n {
				continue
			}
			if b&(1<<uint(i)) == 0 {
				count++
			}
		}
	}
	return count
}
