package powerful

import (
	"testing"

	"github.com/hacatu/nut/dirichlet"
)

func TestSumTrivialHRecoversG(t *testing.T) {
	x := int64(500)
	gTbl := dirichlet.Init(x, 0)
	gTbl.ComputeU()
	hVals := make([]int64, 16)
	got := Sum(gTbl, hVals, 0)
	want := gTbl.At(x)
	if got != want {
		t.Errorf("Sum with h==0 for e>=2 = %d, want G(x) = %d", got, want)
	}
}

func TestSumSquaresOnly(t *testing.T) {
	x := int64(1000)
	gTbl := dirichlet.Init(x, 0)
	gTbl.ComputeU()
	// h(p^2) = 1, h(p^e) = 0 otherwise: this sums G(x/n) over n that are
	// squares of squarefree numbers (n = product of p^2 for distinct p).
	h := func(p, pe, e uint64, m int64) int64 {
		if e == 2 {
			return 1
		}
		return 0
	}
	got := SumFn(gTbl, h, 0)

	// Cross-check by direct enumeration: sum over squarefree-kernel m with
	// m^2 <= x of G(x/m^2).
	want := int64(0)
	for m := int64(1); m*m <= x; m++ {
		if !isSquarefree(m) {
			continue
		}
		want += gTbl.At(x / (m * m))
	}
	if got != want {
		t.Errorf("Sum over squares of squarefree numbers = %d, want %d", got, want)
	}
}

func TestSumSquaresOnlyAtTenThousand(t *testing.T) {
	x := int64(10000)
	gTbl := dirichlet.Init(x, 0)
	gTbl.ComputeU()
	h := func(p, pe, e uint64, m int64) int64 {
		if e == 2 {
			return 1
		}
		return 0
	}
	got := SumFn(gTbl, h, 0)
	want := int64(0)
	for m := int64(1); m*m <= x; m++ {
		if !isSquarefree(m) {
			continue
		}
		want += gTbl.At(x / (m * m))
	}
	if got != want {
		t.Errorf("Sum over squares of squarefree numbers to 10000 = %d, want %d", got, want)
	}
}

func isSquarefree(n int64) bool {
	for p := int64(2); p*p <= n; p++ {
		if n%p == 0 {
			n /= p
			if n%p == 0 {
				return false
			}
		}
	}
	return true
}

func TestSeriesDivRecoversAllOnes(t *testing.T) {
	n := 10
	f := make([]int64, n)
	f[0] = 1
	g := make([]int64, n)
	g[0] = 1
	g[1] = -1
	h := SeriesDiv(0, f, g)
	for e := 0; e < n; e++ {
		if h[e] != 1 {
			t.Errorf("SeriesDiv((1-x)^-1) coefficient %d = %d, want 1", e, h[e])
		}
	}
}

func TestMulOverflows(t *testing.T) {
	if _, overflow := mulOverflows(2, 3); overflow {
		t.Errorf("mulOverflows(2,3) reported overflow")
	}
	maxU := ^uint64(0)
	if _, overflow := mulOverflows(maxU, 2); !overflow {
		t.Errorf("mulOverflows(maxU,2) did not report overflow")
	}
}
