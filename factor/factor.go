// Package factor represents and manipulates complete integer factorizations
// and provides the heuristic factoring dispatcher that combines trial
// division, Pollard rho, and Lenstra's elliptic curve method to fully
// factor a uint64.
package factor

import (
	"sort"

	"github.com/hacatu/nut/internal/randsrc"
	"github.com/hacatu/nut/modular"
	"github.com/hacatu/nut/primality"
)

// PrimePower is a single prime and the power it appears to in a
// factorization.
type PrimePower struct {
	Prime uint64
	Power uint64
}

// Factors is a complete factorization of some number as a sorted list of
// distinct prime powers.
type Factors struct {
	Factors []PrimePower
}

// Prod returns the product the factorization represents.
func (f *Factors) Prod() uint64 {
	r := uint64(1)
	for _, pp := range f.Factors {
		r *= modular.Pow(pp.Prime, pp.Power)
	}
	return r
}

// DivCount returns the number of divisors of the factored number, i.e.
// d(n) = prod(a_i + 1).
func (f *Factors) DivCount() uint64 {
	s := uint64(1)
	for _, pp := range f.Factors {
		s *= pp.Power + 1
	}
	return s
}

// DivSum returns the sum of divisors of the factored number, i.e.
// sigma(n) = prod((p_i^(a_i+1) - 1)/(p_i - 1)).
func (f *Factors) DivSum() uint64 {
	s := uint64(1)
	for _, pp := range f.Factors {
		s *= (modular.Pow(pp.Prime, pp.Power+1) - 1) / (pp.Prime - 1)
	}
	return s
}

// DivPowSum returns sigma_power(n) = sum over divisors d of n of d^power,
// specializing to DivCount for power == 0 and DivSum for power == 1.
func (f *Factors) DivPowSum(power uint64) uint64 {
	switch power {
	case 0:
		return f.DivCount()
	case 1:
		return f.DivSum()
	}
	s := uint64(1)
	for _, pp := range f.Factors {
		s *= (modular.Pow(pp.Prime, (pp.Power+1)*power) - 1) / (modular.Pow(pp.Prime, power) - 1)
	}
	return s
}

// DivTupCount returns the number of ways to write n as an ordered product
// of k positive integers.
func (f *Factors) DivTupCount(k uint64) uint64 {
	switch k {
	case 0:
		if len(f.Factors) == 0 {
			return 1
		}
		return 0
	case 1:
		return 1
	case 2:
		return f.DivCount()
	}
	s := uint64(1)
	for _, pp := range f.Factors {
		s *= modular.Binom(pp.Power+k-1, k-1)
	}
	return s
}

// IPow raises the factored number to the given power in place by
// multiplying every exponent by power.
func (f *Factors) IPow(power uint64) {
	for i := range f.Factors {
		f.Factors[i].Power *= power
	}
}

// Phi returns Euler's totient of the factored number.
func (f *Factors) Phi() uint64 {
	s := uint64(1)
	for _, pp := range f.Factors {
		s *= modular.Pow(pp.Prime, pp.Power-1) * (pp.Prime - 1)
	}
	return s
}

// Carmichael returns the Carmichael function (reduced totient) of the
// factored number, the lcm of phi(p_i^a_i) with the power-of-two case
// halved again for p=2, a>=3.
func (f *Factors) Carmichael() uint64 {
	if len(f.Factors) == 0 {
		return 1
	}
	lambdaOfPrimePower := func(p, a uint64) uint64 {
		if p == 2 && a >= 3 {
			return uint64(1) << (a - 2)
		}
		if p == 2 {
			return uint64(1) << (a - 1)
		}
		return modular.Pow(p, a-1) * (p - 1)
	}
	s := lambdaOfPrimePower(f.Factors[0].Prime, f.Factors[0].Power)
	for _, pp := range f.Factors[1:] {
		s = lcm(s, lambdaOfPrimePower(pp.Prime, pp.Power))
	}
	return s
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b uint64) uint64 {
	return a / gcd(a, b) * b
}

// Append adds k to the exponent of prime m in the factorization, inserting
// a new entry in sorted order if m is not already present.
func (f *Factors) Append(m, k uint64) {
	for i := range f.Factors {
		if f.Factors[i].Prime == m {
			f.Factors[i].Power += k
			return
		}
		if f.Factors[i].Prime > m {
			f.Factors = append(f.Factors, PrimePower{})
			copy(f.Factors[i+1:], f.Factors[i:])
			f.Factors[i] = PrimePower{Prime: m, Power: k}
			return
		}
	}
	f.Factors = append(f.Factors, PrimePower{Prime: m, Power: k})
}

// Combine merges another factorization into f, treating it as the
// factorization of a number raised to the power k (i.e. every exponent in
// other is scaled by k before merging).
func (f *Factors) Combine(other *Factors, k uint64) {
	merged := make([]PrimePower, 0, len(f.Factors)+len(other.Factors))
	i, j := 0, 0
	for i < len(f.Factors) && j < len(other.Factors) {
		switch {
		case f.Factors[i].Prime < other.Factors[j].Prime:
			merged = append(merged, f.Factors[i])
			i++
		case f.Factors[i].Prime > other.Factors[j].Prime:
			merged = append(merged, PrimePower{Prime: other.Factors[j].Prime, Power: other.Factors[j].Power * k})
			j++
		default:
			merged = append(merged, PrimePower{Prime: f.Factors[i].Prime, Power: f.Factors[i].Power + other.Factors[j].Power*k})
			i++
			j++
		}
	}
	merged = append(merged, f.Factors[i:]...)
	for ; j < len(other.Factors); j++ {
		merged = append(merged, PrimePower{Prime: other.Factors[j].Prime, Power: other.Factors[j].Power * k})
	}
	f.Factors = merged
}

// ForAllDivs calls visit with every divisor of the factored number (in no
// particular order) until visit returns false, stopping early in that case.
func (f *Factors) ForAllDivs(visit func(d uint64) bool) {
	exps := make([]uint64, len(f.Factors))
	d := uint64(1)
	for {
		if !visit(d) {
			return
		}
		i := 0
		for ; i < len(f.Factors); i++ {
			if exps[i] < f.Factors[i].Power {
				exps[i]++
				d *= f.Factors[i].Prime
				break
			}
			d /= modular.Pow(f.Factors[i].Prime, exps[i])
			exps[i] = 0
		}
		if i == len(f.Factors) {
			return
		}
	}
}

// ForAllDivsBounded calls visit with every divisor of the factored number
// that is at most dMax, in no particular order, until visit returns false.
func (f *Factors) ForAllDivsBounded(dMax uint64, visit func(d uint64) bool) {
	if dMax == 0 {
		return
	}
	exps := make([]uint64, len(f.Factors))
	d := uint64(1)
	for {
		if !visit(d) {
			return
		}
		i := 0
		for ; i < len(f.Factors); i++ {
			if exps[i] < f.Factors[i].Power {
				nd := d * f.Factors[i].Prime
				if nd <= dMax {
					exps[i]++
					d = nd
					break
				}
			}
			d /= modular.Pow(f.Factors[i].Prime, exps[i])
			exps[i] = 0
		}
		if i == len(f.Factors) {
			return
		}
	}
}

// PerfectPower checks whether n is a perfect power b^e with e having a
// prime factor no larger than maxExp, returning the base and exponent if
// so.
func PerfectPower(n uint64, maxExp uint64) (base, exp uint64, ok bool) {
	if n < 2 {
		return 0, 0, false
	}
	exp = 1
	for _, p := range smallPrimesUpTo(maxExp) {
		for {
			r := nthRoot(n, p)
			if modular.Pow(r, p) != n {
				break
			}
			exp *= p
			n = r
		}
	}
	if exp != 1 {
		return n, exp, true
	}
	return 0, 0, false
}

func smallPrimesUpTo(max uint64) []uint64 {
	all := []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61}
	out := make([]uint64, 0, len(all))
	for _, p := range all {
		if p > max {
			break
		}
		out = append(out, p)
	}
	return out
}

// nthRoot returns floor(a^(1/n)): for n < 13 via Newton's method seeded by
// a bit-shift estimate, and for larger n by a linear search upward from 1.
func nthRoot(a, n uint64) uint64 {
	if a < 2 {
		return a
	}
	var x uint64
	if n < 13 {
		floorLog2a := uint(63)
		for (uint64(1) << floorLog2a) > a {
			floorLog2a--
		}
		x = uint64(1) << (floorLog2a / n)
		if x == 0 {
			x = 1
		}
	} else {
		x = 1
		for modular.Pow(x+1, n) <= a {
			x++
		}
		return x
	}
	for i := 0; ; i++ {
		xPowNm1 := modular.Pow(x, n-1)
		xNext := ((n-1)*xPowNm1*x + a) / (n * xPowNm1)
		if i > 1 && xNext >= x {
			return x
		}
		x = xNext
	}
}

// Config tunes the heuristic factoring dispatcher's choice of algorithm
// and stopping points, mirroring the three-stage trial-division / Pollard
// rho / Lenstra ECF pipeline.
type Config struct {
	// PollardMax is the largest cofactor Pollard's rho-Brent will be tried
	// on before escalating to Lenstra ECF.
	PollardMax uint64
	// PollardStride is the gcd-batch size for Pollard's rho-Brent.
	PollardStride uint64
	// LenstraMax is the largest cofactor Lenstra ECF will be tried on; above
	// this Heuristic gives up and returns the unfactored remainder.
	LenstraMax uint64
	// LenstraBFac bounds how many random curves Lenstra ECF tries per
	// cofactor before Heuristic gives up on that cofactor (named after the
	// original dispatcher's lenstra_bfac tuning knob).
	LenstraBFac int
}

// DefaultConfig returns reasonable default tuning parameters.
func DefaultConfig() Config {
	return Config{
		PollardMax:           100000,
		PollardStride:        10,
		LenstraMax:           ^uint64(0),
		LenstraBFac:          4096,
	}
}

const smoothnessBound = 101 * 101

// Heuristic fully factors n using trial division against primes, followed
// by Pollard's rho-Brent for small-to-medium cofactors and Lenstra's
// elliptic curve method for larger ones, appending prime powers to factors
// as they're found. It returns 1 on complete success, or the largest
// unfactored remainder if conf's bounds were exceeded before n was fully
// split.
func Heuristic(n uint64, primes []uint64, conf Config, factors *Factors) uint64 {
	n = trialDivide(n, primes, factors)
	if n == 1 {
		return 1
	}
	exponent := uint64(1)
	if base, e, ok := PerfectPower(n, 9); ok {
		n, exponent = base, e
	}
	if primality.IsPrimeMR(n) {
		factors.Append(n, exponent)
		return 1
	}
	for {
		var m uint64
		switch {
		case n <= conf.PollardMax:
			for m = n; m == n; {
				seed, err := randsrc.UniformUint64(n)
				if err != nil {
					return n
				}
				m = primality.PollardBrentSeeded(n, seed, conf.PollardStride)
			}
		case n <= conf.LenstraMax:
			attempts := conf.LenstraBFac
			for m = n; m == n; {
				attempts--
				if attempts < 0 {
					return n
				}
				xs, errx := randsrc.UniformUint64(n)
				as, erra := randsrc.UniformUint64(n)
				if errx != nil || erra != nil {
					return n
				}
				m = primality.LenstraECF(n, xs, as)
			}
		default:
			return n
		}
		k := uint64(1)
		n /= m
		for n%m == 0 {
			k++
			n /= m
		}
		if m < smoothnessBound || primality.IsPrimeMR(m) {
			factors.Append(m, k*exponent)
		} else {
			sub := &Factors{}
			rem := Heuristic(m, nil, conf, sub)
			if rem != 1 {
				return rem
			}
			factors.Combine(sub, k*exponent)
		}
		if n == 1 {
			return 1
		}
		if n < smoothnessBound || primality.IsPrimeMR(n) {
			factors.Append(n, exponent)
			return 1
		}
	}
}

func trialDivide(n uint64, primes []uint64, factors *Factors) uint64 {
	for _, p := range primes {
		if n%p == 0 {
			power := uint64(0)
			for n%p == 0 {
				power++
				n /= p
			}
			factors.Append(p, power)
		}
		if p*p > n {
			if n > 1 {
				factors.Append(n, 1)
			}
			return 1
		}
	}
	return n
}

// Sort ensures the factorization's prime powers are ordered by increasing
// prime, which Append and Combine already maintain but which callers that
// build a Factors by hand should call before using it.
func (f *Factors) Sort() {
	sort.Slice(f.Factors, func(i, j int) bool { return f.Factors[i].Prime < f.Factors[j].Prime })
}
