package primality

import (
	"testing"

	"github.com/hacatu/nut/internal/detseed"
)

func TestIsPrimeMR(t *testing.T) {
	primes := []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 97, 1000003, 18446744073709551557}
	for _, p := range primes {
		if !IsPrimeMR(p) {
			t.Errorf("IsPrimeMR(%d) = false, want true", p)
		}
	}
	// Known Carmichael numbers: composite but pass Fermat's test for every
	// base coprime to them. Each of these has a prime factor <= 37, so
	// IsPrimeMR rejects them in its small-prime trial division.
	carmichaels := []uint64{561, 1105, 1729, 2465, 2821, 6601, 8911, 41041, 825265}
	for _, n := range carmichaels {
		if IsPrimeMR(n) {
			t.Errorf("IsPrimeMR(%d) = true, want false (Carmichael number)", n)
		}
	}
	composites := []uint64{0, 1, 4, 6, 8, 9, 15, 100, 1000000}
	for _, n := range composites {
		if IsPrimeMR(n) {
			t.Errorf("IsPrimeMR(%d) = true, want false", n)
		}
	}
}

func TestPollardBrentSeededFindsFactor(t *testing.T) {
	n := uint64(1000003 * 999983) // product of two distinct large primes
	seeds := detseed.Stream("pollard-brent-seeded-test", 64)
	found := uint64(0)
	for _, seed := range seeds {
		m := PollardBrentSeeded(n, seed%n, 10)
		if m != n && m != 1 {
			found = m
			break
		}
	}
	if found == 0 {
		t.Fatalf("PollardBrentSeeded never split n=%d over 64 deterministic seeds", n)
	}
	if n%found != 0 {
		t.Errorf("PollardBrentSeeded(%d) returned %d, which does not divide n", n, found)
	}
}

func TestPollardSimpleFindsFactor(t *testing.T) {
	n := uint64(8051) // 83 * 97
	m := PollardSimple(n, 2)
	if m == n || m == 1 {
		t.Fatalf("PollardSimple(%d, 2) failed to split n, got %d", n, m)
	}
	if n%m != 0 {
		t.Errorf("PollardSimple(%d) returned %d, which does not divide n", n, m)
	}
}

func TestLenstraECFFindsFactor(t *testing.T) {
	n := uint64(8051) // 83 * 97, the textbook Lenstra example
	seeds := detseed.Stream("lenstra-ecf-test", 64)
	found := uint64(0)
	for i := 0; i+1 < len(seeds); i += 2 {
		x := seeds[i]%n + 1
		a := seeds[i+1] % n
		m := LenstraECF(n, x, a)
		if m != n && m != 1 {
			found = m
			break
		}
	}
	if found == 0 {
		t.Fatalf("LenstraECF never split n=%d over 32 deterministic (x,a) pairs", n)
	}
	if n%found != 0 {
		t.Errorf("LenstraECF(%d) returned %d, which does not divide n", n, found)
	}
}

// TestLenstraECFRejectsSingularCurve exercises the curve-discriminant
// check: a == 2 makes a^2-4 == 0, so the curve By^2 = x^3 + 2x^2 + x is
// singular (a cusp at the origin) for every modulus, and LenstraECF must
// reject it by returning n rather than attempting the scalar ladder on a
// degenerate curve.
func TestLenstraECFRejectsSingularCurve(t *testing.T) {
	n := uint64(35) // 5 * 7, coprime to 6 as LenstraECF requires
	if got := LenstraECF(n, 3, 2); got != n {
		t.Errorf("LenstraECF(%d, 3, 2) = %d, want %d (singular curve rejected)", n, got, n)
	}
}

// TestLenstraECFFactorsOutSmallPrimeDirectly exercises the other early-exit
// path: n sharing a factor with 6 is resolved by the initial gcd(n,6)
// check before any curve arithmetic runs.
func TestLenstraECFFactorsOutSmallPrimeDirectly(t *testing.T) {
	n := uint64(15) // 3 * 5, gcd(15,6) = 3
	got := LenstraECF(n, 1, 1)
	if got == 1 || got == n || n%got != 0 {
		t.Errorf("LenstraECF(%d, 1, 1) = %d, want a nontrivial divisor of %d", n, got, n)
	}
}
