// Package powerful sums multiplicative functions f = g*h over powerful
// numbers (numbers all of whose prime factors appear to at least the
// second power) by depth-first enumeration of prime-power generators,
// for the case where h is supported only on powerful numbers so the full
// Dirichlet hyperbola method would waste time on the (much larger) set of
// non-powerful n.
package powerful

import (
	"github.com/hacatu/nut/dirichlet"
	"github.com/hacatu/nut/sieve"
)

type stackEntry struct {
	n  uint64
	hn int64
	i  int
}

// HFunc computes h(p^e) for prime p, p^e, and exponent e, reduced modulo m
// (m == 0 meaning unreduced).
type HFunc func(p, pe uint64, e uint64, m int64) int64

// Sum computes F(x) = sum_{n powerful, n<=x} h(n)*G(x/n), given the
// summatory table gTbl of g (already initialized over [1, x]), the dense
// point-values hVals indexed by exponent (hVals[e] = h(p^e) for every
// prime p, used when h depends only on the exponent), and a modulus m (0
// meaning unreduced arithmetic).
func Sum(gTbl *dirichlet.Table, hVals []int64, m int64) int64 {
	return sum(gTbl, m, func(p, pe, e uint64, _ int64) int64 {
		return hVals[e]
	})
}

// SumFn is the general form of Sum, taking an arbitrary per-prime-power h
// function instead of an exponent-only table.
func SumFn(gTbl *dirichlet.Table, h HFunc, m int64) int64 {
	return sum(gTbl, m, h)
}

func sum(gTbl *dirichlet.Table, m int64, h HFunc) int64 {
	xr := isqrt(gTbl.X)
	primes := sieve.PrimesUpTo(xr)

	stack := []stackEntry{{n: 1, hn: 1, i: 0}}
	res := int64(0)
	for len(stack) > 0 {
		ent := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if ent.i == len(primes) || primes[ent.i]*primes[ent.i] > uint64(gTbl.X)/ent.n {
			var term int64
			if ent.n >= uint64(gTbl.YInv) {
				term = ent.hn * gTbl.Dense(int64(uint64(gTbl.X)/ent.n))
			} else {
				term = ent.hn * gTbl.Sparse(int64(ent.n))
			}
			if m != 0 {
				res = reduceI64(res+term, m)
			} else {
				res += term
			}
			continue
		}
		p := primes[ent.i]
		stack = append(stack, stackEntry{n: ent.n, hn: ent.hn, i: ent.i + 1})
		pp := p
		for e := uint64(2); ; e++ {
			next, overflow := mulOverflows(pp, p)
			if overflow || next > uint64(gTbl.X)/ent.n {
				break
			}
			pp = next
			mEnt := stackEntry{n: ent.n * pp, i: ent.i + 1}
			mEnt.hn = ent.hn * h(p, pp, e, m)
			if m != 0 {
				mEnt.hn = reduceI64(mEnt.hn, m)
			}
			stack = append(stack, mEnt)
		}
	}
	return res
}

func mulOverflows(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	r := a * b
	return r, r/a != b
}

func reduceI64(v, m int64) int64 {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

func isqrt(n int64) uint64 {
	if n <= 0 {
		return 0
	}
	x := uint64(n)
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + uint64(n)/x) / 2
	}
	return x
}

// SeriesDiv computes the ordinary power series quotient h = f/g (indexed
// coefficient by coefficient, h[0] implicitly determined by f[0]/g[0] =
// f[0] since g[0] is taken to be 1), reduced modulo m if m != 0.
func SeriesDiv(m int64, f, g []int64) []int64 {
	n := len(f)
	h := make([]int64, n)
	for e := 0; e < n; e++ {
		term := f[e]
		for k := 1; k <= e; k++ {
			term -= g[k] * h[e-k]
			if m != 0 {
				term = reduceI64(term, m)
			}
		}
		if m != 0 && term < 0 {
			term += m
		}
		h[e] = term
	}
	return h
}
