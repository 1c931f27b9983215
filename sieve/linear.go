package sieve

import (
	"github.com/hacatu/nut/factor"
	"github.com/hacatu/nut/modular"
)

// linear runs the Euler (linear) sieve up to n: every composite is marked
// exactly once, by the smallest prime dividing it, which lets the
// per-index arithmetic and multiplicative sieves below be built in a
// single linear pass rather than a slower smallest-prime-factor sieve that
// revisits composites once per prime factor.
type linear struct {
	n      uint64
	primes []uint64
	// spf[i] is the smallest prime factor of i, for i in [2, n].
	spf []uint64
	// ppow[i] is the largest power of spf[i] dividing i (i.e. if
	// i = p^a * v with p = spf[i] and gcd(p,v)=1, ppow[i] = p^a).
	ppow []uint64
}

// newLinear runs the Euler sieve up to and including n.
func newLinear(n uint64) *linear {
	l := &linear{n: n, spf: make([]uint64, n+1), ppow: make([]uint64, n+1)}
	isComposite := make([]bool, n+1)
	for i := uint64(2); i <= n; i++ {
		if !isComposite[i] {
			l.primes = append(l.primes, i)
			l.spf[i] = i
			l.ppow[i] = i
		}
		for _, p := range l.primes {
			m := p * i
			if m > n {
				break
			}
			isComposite[m] = true
			l.spf[m] = p
			if i%p == 0 {
				l.ppow[m] = l.ppow[i] * p
				break
			}
			l.ppow[m] = p
		}
	}
	return l
}

// FactorizeUpTo returns the complete factorization of every integer in
// [0, n], as indexed by factor.Factors (index 0 and 1 hold the empty
// factorization).
func FactorizeUpTo(n uint64) []factor.Factors {
	l := newLinear(n)
	out := make([]factor.Factors, n+1)
	for i := uint64(2); i <= n; i++ {
		p := l.spf[i]
		pe := l.ppow[i]
		v := i / pe
		e := uint64(0)
		for pp := uint64(1); pp <= pe; pp *= p {
			e++
		}
		if v == 1 {
			out[i] = factor.Factors{Factors: []factor.PrimePower{{Prime: p, Power: e}}}
			continue
		}
		// v's factorization was already computed since v < i and v's
		// smallest prime factor is >= p (v is coprime to p).
		merged := make([]factor.PrimePower, 0, len(out[v].Factors)+1)
		merged = append(merged, factor.PrimePower{Prime: p, Power: e})
		merged = append(merged, out[v].Factors...)
		out[i] = factor.Factors{Factors: merged}
	}
	for i := range out {
		out[i].Sort()
	}
	return out
}

// PhiSieve returns phi(i) for every i in [0, n] (phi(0) is conventionally
// 0, phi(1) = 1), computed multiplicatively from the linear sieve: when i
// is prime, phi(i) = i-1; when p | i exactly to the first power within i
// (v = i/p coprime to p), phi(i) = phi(v)*(p-1); otherwise (p^2 | i),
// phi(i) = phi(i/p)*p.
func PhiSieve(n uint64) []uint64 {
	l := newLinear(n)
	phi := make([]uint64, n+1)
	if n >= 1 {
		phi[1] = 1
	}
	for i := uint64(2); i <= n; i++ {
		p := l.spf[i]
		if i/p%p != 0 {
			phi[i] = phi[i/p] * (p - 1)
		} else {
			phi[i] = phi[i/p] * p
		}
	}
	return phi
}

// MobiusSieve returns mu(i) for every i in [0, n] packed as int8 (mu(0) is
// conventionally 0), computed multiplicatively via the same linear sieve:
// mu(i) = 0 whenever p^2 | i, else mu(i) = -mu(i/p).
func MobiusSieve(n uint64) []int8 {
	l := newLinear(n)
	mu := make([]int8, n+1)
	if n >= 1 {
		mu[1] = 1
	}
	for i := uint64(2); i <= n; i++ {
		p := l.spf[i]
		if i/p%p == 0 {
			mu[i] = 0
		} else {
			mu[i] = -mu[i/p]
		}
	}
	return mu
}

// MertensSieve returns M(i) = sum_{k=1}^{i} mu(k) for every i in [0, n].
func MertensSieve(n uint64) []int64 {
	mu := MobiusSieve(n)
	m := make([]int64, n+1)
	for i := uint64(1); i <= n; i++ {
		m[i] = m[i-1] + int64(mu[i])
	}
	return m
}

// DivCountSieve returns d(i), the number of divisors, for every i in
// [0, n], computed multiplicatively: d(p^a) = a+1, and since v=i/p^a is
// coprime to p, d(i) = d(v)*(a+1) where a is the exponent of spf[i] in i.
func DivCountSieve(n uint64) []uint64 {
	l := newLinear(n)
	d := make([]uint64, n+1)
	if n >= 1 {
		d[1] = 1
	}
	for i := uint64(2); i <= n; i++ {
		p := l.spf[i]
		pe := l.ppow[i]
		v := i / pe
		a := uint64(0)
		for pp := uint64(1); pp <= pe; pp *= p {
			a++
		}
		d[i] = d[v] * (a + 1)
	}
	return d
}

// DivSumSieve returns sigma(i), the sum of divisors, for every i in
// [0, n].
func DivSumSieve(n uint64) []uint64 {
	l := newLinear(n)
	s := make([]uint64, n+1)
	if n >= 1 {
		s[1] = 1
	}
	for i := uint64(2); i <= n; i++ {
		p := l.spf[i]
		pe := l.ppow[i]
		v := i / pe
		sum := uint64(1)
		for pw := p; pw <= pe; pw *= p {
			sum += pw
		}
		s[i] = s[v] * sum
	}
	return s
}

// DivPowSumSieve returns sigma_k(i), the sum of the k-th powers of the
// divisors of i, for every i in [0, n] (sigma_0 is DivCountSieve, sigma_1
// is DivSumSieve), computed multiplicatively from the same per-prime-power
// decomposition: sigma_k(p^a) = 1 + p^k + p^2k + ... + p^ak, and since
// v=i/p^a is coprime to p, sigma_k(i) = sigma_k(v)*sigma_k(p^a).
func DivPowSumSieve(n, k uint64) []uint64 {
	l := newLinear(n)
	s := make([]uint64, n+1)
	if n >= 1 {
		s[1] = 1
	}
	for i := uint64(2); i <= n; i++ {
		p := l.spf[i]
		pe := l.ppow[i]
		v := i / pe
		pk := modular.Pow(p, k)
		term := uint64(1)
		sum := uint64(1)
		for pw := p; pw <= pe; pw *= p {
			term *= pk
			sum += term
		}
		s[i] = s[v] * sum
	}
	return s
}

// LambdaSieve returns the Carmichael function lambda(i) for every i in
// [0, n], computed by materializing every factorization with FactorizeUpTo
// and taking Factors.Carmichael of each.
func LambdaSieve(n uint64) []uint64 {
	fs := FactorizeUpTo(n)
	lam := make([]uint64, n+1)
	if n >= 1 {
		lam[1] = 1
	}
	for i := uint64(2); i <= n; i++ {
		lam[i] = fs[i].Carmichael()
	}
	return lam
}

// LargestPrimeFactorSieve returns the largest prime factor of every i in
// [0, n] (0 and 1 map to 0).
func LargestPrimeFactorSieve(n uint64) []uint64 {
	l := newLinear(n)
	lpf := make([]uint64, n+1)
	for i := uint64(2); i <= n; i++ {
		p := l.spf[i]
		v := i / p
		if v == 1 {
			lpf[i] = p
		} else {
			lpf[i] = lpf[v]
			if p > lpf[i] {
				lpf[i] = p
			}
		}
	}
	return lpf
}
