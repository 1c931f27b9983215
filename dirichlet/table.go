// Package dirichlet implements the hybrid dense/sparse table used to
// evaluate summatory functions F(v) = sum_{n<=v} f(n) at the O(sqrt(x))
// distinct values v = x/i via the hyperbola method, along with Dirichlet
// convolution and division over such tables.
package dirichlet

import "github.com/hacatu/nut/modular"

// Table stores F(v) for v = 1..y densely, and for v = x/i, i = 1..yinv-1,
// sparsely (these are the only values the hyperbola method ever needs). A
// modulus of 0 means compute over plain (unreduced) int64 arithmetic;
// otherwise every stored value is kept reduced mod Modulus.
type Table struct {
	X, Y, YInv int64
	Modulus    int64
	buf        []int64
}

// Init allocates a table for summing over [1, x], using y as the
// dense/sparse split point (bumped up to floor(sqrt(x)) if given smaller,
// since the hyperbola method needs at least that much dense coverage).
func Init(x, y int64) *Table {
	ymin := isqrt(x)
	if y < ymin {
		y = ymin
	}
	yinv := x/y + 1
	return &Table{X: x, Y: y, YInv: yinv, buf: make([]int64, y+yinv)}
}

func isqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	buf := make([]int64, len(t.buf))
	copy(buf, t.buf)
	return &Table{X: t.X, Y: t.Y, YInv: t.YInv, Modulus: t.Modulus, buf: buf}
}

// Dense returns the stored value F(i) for 0 <= i <= Y.
func (t *Table) Dense(i int64) int64 {
	return t.buf[i]
}

// SetDense stores v as F(i) for 0 <= i <= Y.
func (t *Table) SetDense(i, v int64) {
	t.buf[i] = v
}

// Sparse returns the stored value F(X/i) for 1 <= i < YInv.
func (t *Table) Sparse(i int64) int64 {
	return t.buf[t.Y+i]
}

// SetSparse stores v as F(X/i) for 1 <= i < YInv.
func (t *Table) SetSparse(i, v int64) {
	t.buf[t.Y+i] = v
}

// At returns F(v) for any v = X/i that the table covers, choosing the
// dense or sparse half automatically.
func (t *Table) At(v int64) int64 {
	if v <= t.Y {
		return t.Dense(v)
	}
	return t.Sparse(t.X / v)
}

func (t *Table) reduce(v int64) int64 {
	if t.Modulus == 0 {
		return v
	}
	v %= t.Modulus
	if v < 0 {
		v += t.Modulus
	}
	return v
}

// ComputeI fills the table with the summatory function of the Dirichlet
// identity element I(n) = [n==1]: F(v) = 1 for every v >= 1, F(0) = 0.
func (t *Table) ComputeI() {
	t.buf[0] = 0
	for i := int64(1); i <= t.Y; i++ {
		t.buf[i] = 1
	}
	for i := int64(1); i < t.YInv; i++ {
		t.SetSparse(i, 1)
	}
}

// ComputeU fills the table with the summatory function of the constant
// function u(n) = 1, i.e. F(v) = v (the divisor-counting building block).
func (t *Table) ComputeU() {
	for i := int64(0); i <= t.Y; i++ {
		t.buf[i] = t.reduce(i)
	}
	for i := int64(1); i < t.YInv; i++ {
		t.SetSparse(i, t.reduce(t.X/i))
	}
}

// ComputeN fills the table with the summatory function of the identity
// function N(n) = n, i.e. F(v) = v(v+1)/2.
func (t *Table) ComputeN() {
	tri := func(v int64) int64 {
		if v&1 != 0 {
			return v * ((v + 1) >> 1)
		}
		return (v + 1) * (v >> 1)
	}
	for i := int64(0); i <= t.Y; i++ {
		t.buf[i] = t.reduce(tri(i))
	}
	for i := int64(1); i < t.YInv; i++ {
		t.SetSparse(i, t.reduce(tri(t.X/i)))
	}
}

// ComputePi fills the table with pi(v), the prime-counting function, via
// Legendre/Meissel-style sieving of the hyperbola break points: it starts
// from pi(v) = v-1 (as if every number past 1 were prime) and removes
// composites contributed by each prime p <= Y in turn.
func (t *Table) ComputePi() {
	t.buf[0] = 0
	for i := int64(1); i <= t.Y; i++ {
		t.buf[i] = i - 1
	}
	for i := int64(1); i < t.YInv; i++ {
		t.SetSparse(i, t.X/i-1)
	}
	for p := int64(2); p <= t.Y; p++ {
		c := t.buf[p-1]
		if t.buf[p] == c {
			continue
		}
		for i := int64(1); i < t.YInv; i++ {
			v := t.X / i
			if v < p*p {
				break
			}
			j := v / p
			var m int64
			if j <= t.Y {
				m = t.buf[j]
			} else {
				m = t.Sparse(t.X / j)
			}
			t.SetSparse(i, t.Sparse(i)-(m-c))
		}
		for v := t.Y; v >= p*p; v-- {
			t.buf[v] -= t.buf[v/p] - c
		}
	}
}

// ComputeMertens fills the table with M(v) = sum_{n<=v} mu(n), given a
// precomputed Mobius sieve over [0, Y] (packed one int8 per index, values
// in {-1, 0, 1}).
func (t *Table) ComputeMertens(mu []int8) {
	t.SetDense(0, 0)
	t.SetDense(1, 1)
	acc := int64(1)
	for i := int64(2); i <= t.Y; i++ {
		acc += int64(mu[i])
		t.SetDense(i, t.reduce(acc))
	}
	for i := t.YInv - 1; i >= 1; i-- {
		v := t.X / i
		M := int64(1)
		vr := isqrt(v)
		for j := int64(1); j <= vr; j++ {
			term := (t.Dense(j) - t.Dense(j-1)) * (v / j)
			M = t.reduce(M - term)
		}
		for j := int64(2); j <= vr; j++ {
			var term int64
			if i*j >= t.YInv {
				term = t.Dense(v / j)
			} else {
				term = t.Sparse(i * j)
			}
			M = t.reduce(M - term)
		}
		var term int64
		if vr <= t.Y {
			term = t.Dense(vr) * vr
		} else {
			term = t.Sparse(t.X/vr) * vr
		}
		M = t.reduce(M + term)
		t.SetSparse(i, M)
	}
	// The dense half already holds the running sum M(i) from the loop above,
	// consistent with every other Compute* method's Dense(i) == F(i)
	// invariant, so no restore pass is needed here.
}

// ComputeNk fills the table with the summatory function of N^k(n) = n^k,
// using Faulhaber's formula (a Vandermonde vector of powers of v+1 against
// the inverse of the matrix of binomial coefficients C(k+1,j), derived
// from the telescoping identity (v+1)^{k+1} = sum_j C(k+1,j)*S_j(v)) to
// evaluate the sparse-range power sums in closed form; the dense range is
// filled by direct summation. faulhaber comes from matrix.FaulhaberCoeffs(k) (or
// FaulhaberCoeffsMod under a modulus); denom is ignored when
// t.Modulus != 0.
func (t *Table) ComputeNk(k uint64, faulhaber [][]int64, denom int64) {
	acc := int64(0)
	for i := int64(0); i <= t.Y; i++ {
		if i > 0 {
			var ik int64
			if t.Modulus != 0 {
				ik = int64(modular.PowMod(uint64(i), k, uint64(t.Modulus)))
			} else {
				ik = int64(modular.Pow(uint64(i), k))
			}
			acc = t.reduce(acc + ik)
		}
		t.buf[i] = acc
	}
	for i := int64(1); i < t.YInv; i++ {
		v := t.X / i
		vand := vandermonde(v+1, k+1, t.Modulus)
		tot := int64(0)
		if t.Modulus == 0 {
			for j := uint64(0); j <= k; j++ {
				tot += faulhaber[k][j] * vand[j]
			}
			tot /= denom
		} else {
			for j := uint64(0); j <= k; j++ {
				term := modular.MulMod(uint64(faulhaber[k][j]), uint64(vand[j]), uint64(t.Modulus))
				tot = t.reduce(tot + int64(term))
			}
		}
		if k == 0 {
			// S_0(v) counts the v'=0 term too; drop it so F(v) = v.
			tot = t.reduce(tot - 1)
		}
		t.SetSparse(i, tot)
	}
}

// vandermonde returns [x^1, x^2, ..., x^k] mod m (or unreduced if m == 0).
func vandermonde(x int64, k uint64, m int64) []int64 {
	out := make([]int64, k)
	if m != 0 {
		x %= m
	}
	xe := x
	for e := uint64(1); e <= k; e++ {
		out[e-1] = xe
		if m != 0 {
			xe = xe * x % m
		} else {
			xe = xe * x
		}
	}
	return out
}
