package factor

import (
	"testing"
)

// primesUpTo is a small trial-division sieve, kept local to this test file
// so the factor package's tests don't need to depend on the sieve package.
func primesUpTo(max uint64) []uint64 {
	var out []uint64
	for n := uint64(2); n <= max; n++ {
		isPrime := true
		for _, p := range out {
			if p*p > n {
				break
			}
			if n%p == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			out = append(out, n)
		}
	}
	return out
}

func mkFactors(pps ...PrimePower) *Factors {
	return &Factors{Factors: pps}
}

func TestProdAndDivCount(t *testing.T) {
	// 360 = 2^3 * 3^2 * 5
	f := mkFactors(PrimePower{2, 3}, PrimePower{3, 2}, PrimePower{5, 1})
	if got := f.Prod(); got != 360 {
		t.Errorf("Prod() = %d, want 360", got)
	}
	if got := f.DivCount(); got != 24 {
		t.Errorf("DivCount() = %d, want 24", got)
	}
	if got := f.DivSum(); got != 1170 {
		t.Errorf("DivSum() = %d, want 1170", got)
	}
}

func TestPhiAndCarmichael(t *testing.T) {
	// 12 = 2^2*3
	f := mkFactors(PrimePower{2, 2}, PrimePower{3, 1})
	if got := f.Phi(); got != 4 {
		t.Errorf("Phi() = %d, want 4", got)
	}
	if got := f.Carmichael(); got != 2 {
		t.Errorf("Carmichael() = %d, want 2", got)
	}
}

func TestAppendAndCombine(t *testing.T) {
	f := mkFactors()
	f.Append(5, 1)
	f.Append(2, 3)
	f.Append(5, 1)
	if len(f.Factors) != 2 {
		t.Fatalf("expected 2 distinct primes, got %d", len(f.Factors))
	}
	if f.Factors[0].Prime != 2 || f.Factors[1].Prime != 5 || f.Factors[1].Power != 2 {
		t.Errorf("unexpected factorization after Append: %+v", f.Factors)
	}

	other := mkFactors(PrimePower{3, 1}, PrimePower{5, 1})
	f.Combine(other, 2)
	want := map[uint64]uint64{2: 3, 3: 2, 5: 4}
	if len(f.Factors) != len(want) {
		t.Fatalf("Combine produced %d primes, want %d", len(f.Factors), len(want))
	}
	for _, pp := range f.Factors {
		if want[pp.Prime] != pp.Power {
			t.Errorf("Combine: prime %d has power %d, want %d", pp.Prime, pp.Power, want[pp.Prime])
		}
	}
}

func TestForAllDivs(t *testing.T) {
	f := mkFactors(PrimePower{2, 2}, PrimePower{3, 1}) // 12: divisors 1,2,3,4,6,12
	seen := map[uint64]bool{}
	f.ForAllDivs(func(d uint64) bool {
		seen[d] = true
		return true
	})
	want := []uint64{1, 2, 3, 4, 6, 12}
	if len(seen) != len(want) {
		t.Fatalf("ForAllDivs found %d divisors, want %d", len(seen), len(want))
	}
	for _, d := range want {
		if !seen[d] {
			t.Errorf("ForAllDivs missed divisor %d", d)
		}
	}
}

func TestPerfectPower(t *testing.T) {
	base, exp, ok := PerfectPower(2*2*2*2*2*2, 9) // 64 = 2^6 = 4^3 = 8^2
	if !ok {
		t.Fatal("PerfectPower(64,9) should report true")
	}
	if modPow(base, exp) != 64 {
		t.Errorf("PerfectPower(64,9) = %d^%d = %d, want 64", base, exp, modPow(base, exp))
	}
	if _, _, ok := PerfectPower(30, 9); ok {
		t.Error("PerfectPower(30,9) should report false")
	}
}

func modPow(b, e uint64) uint64 {
	r := uint64(1)
	for ; e > 0; e-- {
		r *= b
	}
	return r
}

func TestHeuristicFactorsKnownComposites(t *testing.T) {
	primes := primesUpTo(200)
	conf := DefaultConfig()
	cases := []uint64{
		2 * 3 * 5 * 7 * 11 * 13,
		1000000007 * 3,
		999999937,               // prime
		1000000007 * 1000000009, // product of two 10-digit primes
	}
	for _, n := range cases {
		f := &Factors{}
		rem := Heuristic(n, primes, conf, f)
		if rem != 1 {
			t.Errorf("Heuristic(%d) could not fully factor, remainder %d", n, rem)
			continue
		}
		if got := f.Prod(); got != n {
			t.Errorf("Heuristic(%d) factorization multiplies to %d", n, got)
		}
	}
}
