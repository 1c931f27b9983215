package dirichlet

import (
	"testing"

	"github.com/hacatu/nut/matrix"
	"github.com/hacatu/nut/sieve"
)

func TestComputeU(t *testing.T) {
	tbl := Init(100, 10)
	tbl.ComputeU()
	for v := int64(1); v <= 100; v++ {
		if got := tbl.At(v); got != v {
			t.Errorf("ComputeU: U(%d) = %d, want %d", v, got, v)
		}
	}
}

func TestComputeN(t *testing.T) {
	tbl := Init(100, 10)
	tbl.ComputeN()
	for v := int64(1); v <= 100; v++ {
		want := v * (v + 1) / 2
		if got := tbl.At(v); got != want {
			t.Errorf("ComputeN: N(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestComputePi(t *testing.T) {
	x := int64(200)
	tbl := Init(x, isqrt(x))
	tbl.ComputePi()
	primes := sieve.PrimesUpTo(uint64(x))
	want := make([]int64, x+1)
	idx, count := 0, int64(0)
	for v := int64(0); v <= x; v++ {
		for idx < len(primes) && int64(primes[idx]) == v {
			count++
			idx++
		}
		want[v] = count
	}
	for v := int64(1); v <= x; v++ {
		if got := tbl.At(v); got != want[v] {
			t.Errorf("ComputePi(%d) = %d, want %d", v, got, want[v])
		}
	}
}

func TestComputeMertens(t *testing.T) {
	x := int64(100)
	tbl := Init(x, isqrt(x))
	mu := sieve.MobiusSieve(uint64(tbl.Y))
	mu8 := make([]int8, len(mu))
	copy(mu8, mu)
	tbl.ComputeMertens(mu8)
	want := int64(0)
	muFull := sieve.MobiusSieve(uint64(x))
	for v := int64(1); v <= x; v++ {
		want += int64(muFull[v])
		if got := tbl.At(v); got != want {
			t.Errorf("ComputeMertens(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestComputeNk(t *testing.T) {
	x := int64(50)
	faulhaber, denom := matrix.FaulhaberCoeffs(3)
	tbl := Init(x, isqrt(x))
	tbl.ComputeNk(2, faulhaber, denom)
	want := int64(0)
	for v := int64(1); v <= x; v++ {
		want += v * v
		if got := tbl.At(v); got != want {
			t.Errorf("ComputeNk(2) at %d = %d, want %d", v, got, want)
		}
	}
}

func TestConvolveUIsDivCount(t *testing.T) {
	x := int64(60)
	uTbl := Init(x, isqrt(x))
	uTbl.ComputeU()
	f := make([]int64, uTbl.Y+1)
	for i := range f {
		f[i] = 1
	}
	dTbl := ConvolveU(uTbl, f)
	dsieve := sieve.DivCountSieve(uint64(x))
	want := int64(0)
	for v := int64(1); v <= x; v++ {
		want += int64(dsieve[v])
		if got := dTbl.At(v); got != want {
			t.Errorf("ConvolveU(u,u) at %d = %d, want %d (divisor-count summatory)", v, got, want)
		}
	}
}

func TestConvolveUAtOneThousand(t *testing.T) {
	x := int64(1000)
	uTbl := Init(x, isqrt(x))
	uTbl.ComputeU()
	f := make([]int64, uTbl.Y+1)
	for i := range f {
		f[i] = 1
	}
	dTbl := ConvolveU(uTbl, f)
	dsieve := sieve.DivCountSieve(uint64(x))
	want := int64(0)
	for v := int64(1); v <= x; v++ {
		want += int64(dsieve[v])
	}
	if got := dTbl.At(x); got != want {
		t.Errorf("D(1000) = %d, want %d (direct divisor-count sieve sum)", got, want)
	}
	if want != 7069 {
		t.Errorf("direct divisor-count sieve sum to 1000 = %d, want 7069", want)
	}
}

func TestDkAtOneThousandKFive(t *testing.T) {
	x := int64(1000)
	k := uint64(5)
	tbl := Dk(x, isqrt(x), k, 0)
	fs := sieve.FactorizeUpTo(uint64(x))
	prefix := make([]int64, x+1)
	for v := int64(1); v <= x; v++ {
		prefix[v] = prefix[v-1] + int64(fs[v].DivTupCount(k))
	}
	for v := int64(0); v <= tbl.Y; v++ {
		if got, want := tbl.Dense(v), prefix[v]; got != want {
			t.Errorf("Dk(5) dense at %d = %d, want %d", v, got, want)
		}
	}
	for i := int64(1); i < tbl.YInv; i++ {
		v := tbl.X / i
		if got, want := tbl.Sparse(i), prefix[v]; got != want {
			t.Errorf("Dk(5) sparse at X/%d=%d = %d, want %d", i, v, got, want)
		}
	}
}

func TestDivideRecoversU(t *testing.T) {
	x := int64(60)
	uTbl := Init(x, isqrt(x))
	uTbl.ComputeU()
	uDense := make([]int64, uTbl.Y+1)
	for i := int64(1); i <= uTbl.Y; i++ {
		uDense[i] = 1
	}
	dTbl := ConvolveU(uTbl, uDense)
	dDense := make([]int64, dTbl.Y+1)
	for i := int64(1); i <= dTbl.Y; i++ {
		dDense[i] = dTbl.Dense(i) - dTbl.Dense(i-1)
	}
	hTbl := Divide(dTbl, uTbl, dDense, uDense)
	for v := int64(1); v <= uTbl.Y; v++ {
		if got := hTbl.At(v); got != v {
			t.Errorf("Divide(d,u) at %d = %d, want %d (should recover U's summatory)", v, got, v)
		}
	}
}

func TestDkMatchesDivCount(t *testing.T) {
	tbl := Dk(60, isqrt(60), 2, 0)
	dsieve := sieve.DivCountSieve(60)
	want := int64(0)
	for v := int64(1); v <= 60; v++ {
		want += int64(dsieve[v])
		if got := tbl.At(v); got != want {
			t.Errorf("Dk(2) at %d = %d, want %d", v, got, want)
		}
	}
}
