package dirichlet

import "github.com/hacatu/nut/modular"

// ConvolveU computes the summatory function of f * u (Dirichlet
// convolution with the all-ones function), given the summatory table F of
// f, via the hyperbola method: (f*u)(v) summed is
//
//	sum_{d<=sqrt(v)} [f(d)*floor(v/d) + F(v/d)] - F(sqrt(v))*floor(sqrt(v))
func ConvolveU(F *Table, f []int64) *Table {
	out := Init(F.X, F.Y)
	out.Modulus = F.Modulus
	for v := int64(1); v <= out.Y; v++ {
		out.buf[v] = hyperbolaU(F, f, v)
	}
	for i := int64(1); i < out.YInv; i++ {
		v := out.X / i
		out.SetSparse(i, hyperbolaU(F, f, v))
	}
	return out
}

func hyperbolaU(F *Table, f []int64, v int64) int64 {
	r := isqrt(v)
	tot := int64(0)
	for d := int64(1); d <= r; d++ {
		var fd int64
		if d < int64(len(f)) {
			fd = f[d]
		}
		tot = F.reduce(tot + fd*(v/d) + F.At(v/d))
	}
	tot = F.reduce(tot - F.At(r)*r)
	return tot
}

// ConvolveN computes the summatory function of f * N (Dirichlet
// convolution with the identity function n), given the summatory table F
// of f, via the analogous hyperbola-method rearrangement using N's own
// summatory function (triangular numbers) in place of plain counts.
func ConvolveN(F *Table, f []int64) *Table {
	out := Init(F.X, F.Y)
	out.Modulus = F.Modulus
	tri := func(v int64) int64 {
		if v&1 != 0 {
			return F.reduce(v * ((v + 1) >> 1))
		}
		return F.reduce((v + 1) * (v >> 1))
	}
	calc := func(v int64) int64 {
		r := isqrt(v)
		tot := int64(0)
		for d := int64(1); d <= r; d++ {
			var fd int64
			if d < int64(len(f)) {
				fd = f[d]
			}
			tot = F.reduce(tot + fd*tri(v/d) + F.At(v/d)*d)
		}
		tot = F.reduce(tot - F.At(r)*tri(r))
		return tot
	}
	for v := int64(1); v <= out.Y; v++ {
		out.buf[v] = calc(v)
	}
	for i := int64(1); i < out.YInv; i++ {
		out.SetSparse(i, calc(out.X/i))
	}
	return out
}

// Convolve computes the summatory function of f * g (general Dirichlet
// convolution) given the summatory tables F of f and G of g, by the
// hyperbola method: split the double sum over d*e<=v at the square root,
// handling the dense small-d, small-e region with an explicit correction
// term so it is not double counted.
//
//	(f*g)(v) summed = sum_{d<=r} f(d)*G(v/d) + sum_{e<=r} g(e)*F(v/e) - F(r)*G(r)
//
// where r = floor(sqrt(v)).
func Convolve(F, G *Table, f, g []int64) *Table {
	out := Init(F.X, F.Y)
	out.Modulus = F.Modulus
	calc := func(v int64) int64 {
		r := isqrt(v)
		tot := int64(0)
		for d := int64(1); d <= r; d++ {
			var fd, gd int64
			if d < int64(len(f)) {
				fd = f[d]
			}
			if d < int64(len(g)) {
				gd = g[d]
			}
			tot = F.reduce(tot + fd*G.At(v/d) + gd*F.At(v/d))
		}
		tot = F.reduce(tot - F.At(r)*G.At(r))
		return tot
	}
	for v := int64(1); v <= out.Y; v++ {
		out.buf[v] = calc(v)
	}
	for i := int64(1); i < out.YInv; i++ {
		out.SetSparse(i, calc(out.X/i))
	}
	return out
}

// Divide computes the summatory function H of h = f/g (the Dirichlet
// series quotient, i.e. f = g*h), given the summatory tables F of f and G
// of g, the dense values f[1..Y] of f itself (needed to seed the small-h
// sieve), and the dense values g[1..Y] of g, by rearranging the hyperbola
// identity for F = g*h to solve for h(v) and then H(v) from the largest
// break point down to the smallest.
//
// The dense point values of h are found by a push-style divisor sieve
// (h(i)*g(1) = f(i) - sum_{d|i, d>1} g(d)*h(i/d)), then the sparse
// summatory values follow the rearranged hyperbola identity:
//
//	H(v) = F(v) + G(r)*H(r) - sum_{n=2}^{r} g(n)*H(v/n) - sum_{n=1}^{r} G(v/n)*h(n)
func Divide(F, G *Table, f, g []int64) *Table {
	out := Init(F.X, F.Y)
	out.Modulus = F.Modulus
	Y := out.Y
	h := make([]int64, Y+1)
	var g1inv int64
	if out.Modulus != 0 {
		var err error
		g1inv, err = modular.ModInv(g[1], out.Modulus)
		if err != nil {
			panic(err)
		}
	}
	for i := int64(1); i <= Y; i++ {
		raw := out.reduce(h[i] + f[i])
		if out.Modulus != 0 {
			h[i] = out.reduce(raw * g1inv)
		} else {
			h[i] = raw / g[1]
		}
		if h[i] == 0 {
			continue
		}
		for j := int64(2); j <= Y/i; j++ {
			h[i*j] = out.reduce(h[i*j] - h[i]*g[j])
		}
	}
	acc := int64(0)
	for i := int64(1); i <= Y; i++ {
		acc = out.reduce(acc + h[i])
		out.buf[i] = acc
	}
	for i := out.YInv - 1; i >= 1; i-- {
		v := out.X / i
		r := isqrt(v)
		sum := int64(0)
		for n := int64(2); n <= r; n++ {
			sum = out.reduce(sum + g[n]*out.At(v/n))
		}
		for n := int64(1); n <= r; n++ {
			sum = out.reduce(sum + G.At(v/n)*h[n])
		}
		term := out.reduce(G.Dense(r) * out.Dense(r))
		term = out.reduce(F.At(v) + term)
		out.SetSparse(i, out.reduce(term-sum))
	}
	return out
}

// Dk computes the summatory function of u^{*k}, the k-fold Dirichlet
// self-convolution of the all-ones function u (which counts, for each n,
// the number of ways to write n as an ordered product of k positive
// integers), by binary exponentiation in the Dirichlet-convolution
// monoid. Unlike the historical C implementation's pointer-swapping
// between three shared buffers, each step here allocates a fresh table,
// which is simpler to reason about at the cost of some extra allocation.
func Dk(x, y int64, k uint64, modulus int64) *Table {
	base := Init(x, y)
	base.Modulus = modulus
	base.ComputeU()
	if k == 0 {
		result := Init(x, y)
		result.Modulus = modulus
		result.ComputeI()
		return result
	}
	result := base
	k--
	for k > 0 {
		if k&1 == 1 {
			result = convolveTables(result, base)
		}
		if k > 1 {
			base = convolveTables(base, base)
		}
		k >>= 1
	}
	return result
}

// convolveTables convolves two summatory tables together, materializing
// the dense arrays Convolve needs for each operand from their own table.
func convolveTables(A, B *Table) *Table {
	fa := denseDiffs(A)
	fb := denseDiffs(B)
	return Convolve(A, B, fa, fb)
}

// denseDiffs extracts the underlying point values f(1..Y) from a
// summatory table's dense half by taking successive differences.
func denseDiffs(t *Table) []int64 {
	out := make([]int64, t.Y+1)
	for i := int64(1); i <= t.Y; i++ {
		out[i] = t.reduce(t.Dense(i) - t.Dense(i-1))
	}
	return out
}
