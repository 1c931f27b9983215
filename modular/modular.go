// Package modular implements the modular and extended-precision integer
// arithmetic that the rest of this module is built on: binary exponentiation,
// the extended Euclidean algorithm, modular inverses (including a Hensel-lifted
// inverse mod 2^t), the Chinese Remainder Theorem, the Jacobi symbol, and
// modular square roots via Tonelli-Shanks or Cipolla's algorithm.
package modular

import (
	"errors"
	"math"
	"math/big"
	"math/bits"

	"github.com/ALTree/bigfloat"
)

// ErrNotInvertible is returned when a value has no inverse modulo n.
var ErrNotInvertible = errors.New("modular: value is not invertible modulo n")

// ErrNotQR is returned when SqrtMod is asked for the square root of a
// quadratic non-residue.
var ErrNotQR = errors.New("modular: value is not a quadratic residue")

// ErrRangeOverflow is returned by CRT when the combined modulus m*n does
// not fit in an int64; callers needing the full uint64/int64 product range
// should call CRTBig instead.
var ErrRangeOverflow = errors.New("modular: combined modulus overflows int64")

// Pow returns b^e computed by binary exponentiation, without any modular
// reduction. Callers are responsible for ensuring the result fits in a
// uint64.
func Pow(b, e uint64) uint64 {
	result := uint64(1)
	for e > 0 {
		if e&1 == 1 {
			result *= b
		}
		b *= b
		e >>= 1
	}
	return result
}

// mulmod computes a*b mod n for 64-bit a, b, n without overflow, by widening
// the product to 128 bits via bits.Mul64 and reducing with bits.Div64.
func mulmod(a, b, n uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi == 0 {
		return lo % n
	}
	_, rem := bits.Div64(hi%n, lo, n)
	return rem
}

// MulMod returns a*b mod n without overflow, widening the product to 128
// bits internally.
func MulMod(a, b, n uint64) uint64 {
	return mulmod(a, b, n)
}

// PowMod returns b^e mod n, computed by binary exponentiation with a
// 128-bit-widening multiply at each step so that n may be as large as
// MaxUint64.
func PowMod(b, e, n uint64) uint64 {
	if n == 1 {
		return 0
	}
	b %= n
	result := uint64(1)
	for e > 0 {
		if e&1 == 1 {
			result = mulmod(result, b, n)
		}
		b = mulmod(b, b, n)
		e >>= 1
	}
	return result
}

// EGCD returns g = gcd(a, b) along with Bezout coefficients s, t such that
// a*s + b*t = g. It mirrors the iterative extended Euclidean algorithm used
// throughout this module's number-theoretic kernels.
func EGCD(a, b int64) (g, s, t int64) {
	s0, s1 := int64(1), int64(0)
	t0, t1 := int64(0), int64(1)
	for b != 0 {
		q := a / b
		a, b = b, a-q*b
		s0, s1 = s1, s0-q*s1
		t0, t1 = t1, t0-q*t1
	}
	return a, s0, t0
}

// ModInv returns the inverse of a modulo n, in the range [0, n). It returns
// ErrNotInvertible if gcd(a, n) != 1.
func ModInv(a, n int64) (int64, error) {
	g, s, _ := EGCD(a, n)
	if g != 1 && g != -1 {
		return 0, ErrNotInvertible
	}
	s *= g // if g == -1, flip the sign of s so a*s ≡ 1 (mod n)
	s %= n
	if s < 0 {
		s += n
	}
	return s, nil
}

// modinv2tTable is the table of inverses of the 128 odd residues mod 256,
// used to seed the Hensel lifting in ModInvMod2T. inv[i] is the inverse of
// 2*i+1 modulo 256.
var modinv2tTable = func() [128]uint8 {
	var tbl [128]uint8
	for i := range tbl {
		a := uint32(2*i + 1)
		x := a
		// Newton's method converges to the correct inverse mod 2^8 in a
		// handful of steps starting from any odd seed.
		for iter := 0; iter < 6; iter++ {
			x = x * (2 - a*x)
		}
		tbl[i] = uint8(x)
	}
	return tbl
}()

// ModInvMod2T returns the inverse of the odd number a modulo 2^t, for
// 0 <= t <= 64, via Hensel lifting: an 8-bit inverse is read from a lookup
// table and then doubled in precision by Newton's iteration x' = x*(2-a*x)
// until t bits have been reached.
func ModInvMod2T(a uint64, t uint) uint64 {
	if t == 0 {
		return 0
	}
	if a&1 == 0 {
		panic("modular: ModInvMod2T requires an odd a")
	}
	x := uint64(modinv2tTable[(a>>1)&0x7f])
	for prec := uint(8); prec < t; prec *= 2 {
		x = x * (2 - a*x)
	}
	if t < 64 {
		mask := uint64(1)<<t - 1
		return x & mask
	}
	return x
}

// CRT solves the pair of congruences x ≡ a (mod m), x ≡ b (mod n) for
// coprime moduli m, n, returning the unique solution modulo m*n as an
// int64 (crt_i64 in the original). It returns ErrRangeOverflow if m*n does
// not fit in an int64 rather than silently truncating; call CRTBig
// directly for moduli whose product may exceed that range.
func CRT(a, m, b, n int64) (int64, error) {
	x, mn, err := crtBig(a, m, b, n)
	if err != nil {
		return 0, err
	}
	if !x.IsInt64() || !mn.IsInt64() {
		return 0, ErrRangeOverflow
	}
	return x.Int64(), nil
}

// CRTBig solves the same pair of congruences as CRT (crt_i128 in the
// original) but always returns the result as a big.Int, so moduli whose
// product m*n exceeds the int64 range still produce a correct answer
// rather than an overflowing one.
func CRTBig(a, m, b, n int64) (*big.Int, error) {
	x, _, err := crtBig(a, m, b, n)
	return x, err
}

// crtBig does the actual work shared by CRT and CRTBig, returning both the
// solution and the combined modulus m*n (the caller needs the latter to
// detect int64 overflow without recomputing it).
func crtBig(a, m, b, n int64) (x, mn *big.Int, err error) {
	g, s, _ := EGCD(m, n)
	if g != 1 && g != -1 {
		return nil, nil, ErrNotInvertible
	}
	bm := big.NewInt(m)
	bn := big.NewInt(n)
	bs := big.NewInt(s)
	diff := new(big.Int).Sub(big.NewInt(b), big.NewInt(a))
	k := new(big.Int).Mul(diff, bs)
	k.Mul(k, bm)
	mn = new(big.Int).Mul(bm, bn)
	x = new(big.Int).Add(big.NewInt(a), k)
	x.Mod(x, mn)
	if x.Sign() < 0 {
		x.Add(x, mn)
	}
	return x, mn, nil
}

// Jacobi computes the Jacobi symbol (a/n) for odd positive n, generalizing
// the Legendre symbol to composite moduli. Used to pre-screen candidates
// before attempting a modular square root.
func Jacobi(a, n int64) int {
	if n <= 0 || n&1 == 0 {
		panic("modular: Jacobi requires odd positive n")
	}
	a %= n
	if a < 0 {
		a += n
	}
	result := 1
	for a != 0 {
		for a&1 == 0 {
			a >>= 1
			r := n % 8
			if r == 3 || r == 5 {
				result = -result
			}
		}
		a, n = n, a
		if a%4 == 3 && n%4 == 3 {
			result = -result
		}
		a %= n
	}
	if n == 1 {
		return result
	}
	return 0
}

// sqrtShanks implements the Tonelli-Shanks algorithm for a square root of n
// modulo the odd prime p, used when the power of two dividing p-1 is small
// enough that its s*(s-1) cost does not exceed Cipolla's (see SqrtMod).
func sqrtShanks(n, p int64) int64 {
	if p%4 == 3 {
		return PowModI64(n, (p+1)/4, p)
	}
	q := p - 1
	s := uint(0)
	for q&1 == 0 {
		q >>= 1
		s++
	}
	var z int64 = 2
	for Jacobi(z, p) != -1 {
		z++
	}
	m := s
	c := PowModI64(z, q, p)
	t := PowModI64(n, q, p)
	r := PowModI64(n, (q+1)/2, p)
	for t != 1 {
		i := uint(0)
		tt := t
		for tt != 1 {
			tt = mulmod(uint64(tt), uint64(tt), uint64(p)) % uint64(p)
			i++
			if i == m {
				return -1 // not a residue; caller already checked via Jacobi
			}
		}
		b := c
		for j := uint(0); j < m-i-1; j++ {
			b = int64(mulmod(uint64(b), uint64(b), uint64(p)))
		}
		m = i
		c = int64(mulmod(uint64(b), uint64(b), uint64(p)))
		t = int64(mulmod(uint64(t), uint64(c), uint64(p)))
		r = int64(mulmod(uint64(r), uint64(b), uint64(p)))
	}
	return r
}

// cipollaState tracks the "imaginary" field extension Fp[w]/(w^2 - d) used by
// Cipolla's algorithm.
type cipollaState struct {
	p, d int64
}

func (cs cipollaState) mul(a0, a1, b0, b1 int64) (int64, int64) {
	p := cs.p
	r0 := (mulmod(uint64(a0), uint64(b0), uint64(p)) + mulmod(uint64(a1)*uint64(b1)%uint64(p), uint64(cs.d), uint64(p))) % uint64(p)
	r1 := (mulmod(uint64(a0), uint64(b1), uint64(p)) + mulmod(uint64(a1), uint64(b0), uint64(p))) % uint64(p)
	return int64(r0), int64(r1)
}

// sqrtCipolla implements Cipolla's algorithm: pick a such that a^2 - n is a
// non-residue, then compute (a + sqrt(a^2-n))^((p+1)/2) in Fp[sqrt(a^2-n)],
// which collapses to an element of Fp equal to a square root of n.
func sqrtCipolla(n, p int64) int64 {
	var a int64 = 0
	var d int64
	for {
		a++
		d = ((a*a-n)%p + p) % p
		if Jacobi(d, p) == -1 {
			break
		}
	}
	cs := cipollaState{p: p, d: d}
	r0, r1 := a, int64(1)
	result0, result1 := int64(1), int64(0)
	e := (p + 1) / 2
	for e > 0 {
		if e&1 == 1 {
			result0, result1 = cs.mul(result0, result1, r0, r1)
		}
		r0, r1 = cs.mul(r0, r1, r0, r1)
		e >>= 1
	}
	return result0
}

// sqrtP5Mod8 implements the closed-form square root shortcut for primes
// p = 8k+5 (Cohen, Algorithm 1.5.1): with d = (p-5)/8, v = (2n)^d mod p,
// and i = 2*n*v^2 mod p, the root is n*v*(i-1) mod p. This avoids both
// Tonelli-Shanks' loop and Cipolla's field-extension exponentiation.
func sqrtP5Mod8(n, p int64) int64 {
	d := (p - 5) / 8
	twoN := int64(mulmod(2, uint64(n), uint64(p)))
	v := PowModI64(twoN, d, p)
	i := int64(mulmod(uint64(v), uint64(v), uint64(p)))
	i = int64(mulmod(uint64(twoN), uint64(i), uint64(p)))
	im1 := i - 1
	if im1 < 0 {
		im1 += p
	}
	nv := int64(mulmod(uint64(n), uint64(v), uint64(p)))
	return int64(mulmod(uint64(nv), uint64(im1), uint64(p)))
}

// PowModI64 is PowMod for signed int64 operands, reducing negative bases
// into [0, n) first.
func PowModI64(b, e, n int64) int64 {
	b %= n
	if b < 0 {
		b += n
	}
	return int64(PowMod(uint64(b), uint64(e), uint64(n)))
}

// SqrtMod returns a square root of n modulo the odd prime p, via whichever
// of three algebraic shortcuts applies: p ≡ 3 (mod 4) (s==1) uses the
// direct n^((p+1)/4) power, p ≡ 5 (mod 8) (s==2) uses the closed form in
// sqrtP5Mod8, and otherwise it falls back to Tonelli-Shanks or Cipolla's
// algorithm, chosen by comparing their expected multiplication counts:
// Tonelli-Shanks costs roughly s*(s-1) multiplications where 2^s || (p-1),
// while Cipolla costs roughly 8*ceil(log2(p))+20. For s small this favors
// Shanks; for s large (p-1 highly divisible by two) Cipolla wins.
// It returns ErrNotQR if n is not a quadratic residue mod p.
func SqrtMod(n, p int64) (int64, error) {
	n %= p
	if n < 0 {
		n += p
	}
	if n == 0 {
		return 0, nil
	}
	if Jacobi(n, p) != 1 {
		return 0, ErrNotQR
	}
	q := p - 1
	s := 0
	for q&1 == 0 {
		q >>= 1
		s++
	}
	if s == 1 {
		return sqrtShanks(n, p), nil
	}
	if s == 2 {
		return sqrtP5Mod8(n, p), nil
	}
	logp := bigfloat.Log(new(big.Float).SetInt64(p)) // natural log, converted below
	log2p, _ := new(big.Float).Quo(logp, bigfloat.Log(big.NewFloat(2))).Float64()
	cipollaCost := 8*math.Ceil(log2p) + 20
	shanksCost := float64(s) * float64(s-1)
	if shanksCost <= cipollaCost {
		return sqrtShanks(n, p), nil
	}
	return sqrtCipolla(n, p), nil
}

// BinomNextMod2T advances a running binomial coefficient C(n, k) mod 2^t to
// C(n, k+1) mod 2^t given the current value, by multiplying by (n-k) and
// dividing by (k+1) with the odd/even parts tracked separately (since
// division by a power of two is not directly invertible mod 2^t). cur and
// the return value are odd parts; *v2 tracks the accumulated power of two
// (removed from the numerators minus removed from the denominators), so a
// value of *v2 > 0 indicates a factor of 2^v2 still pending.
func BinomNextMod2T(cur uint64, n, k uint64, t uint, v2 *int) uint64 {
	num := n - k
	den := k + 1
	for num != 0 && num&1 == 0 {
		num >>= 1
		*v2++
	}
	for den != 0 && den&1 == 0 {
		den >>= 1
		*v2--
	}
	mask := uint64(1)<<t - 1
	if t >= 64 {
		mask = ^uint64(0)
	}
	invDen := ModInvMod2T(den&mask|1, t)
	return (cur * (num & mask) * invDen) & mask
}

// FastMod holds a precomputed reciprocal for a fixed divisor d, allowing
// repeated reduction of values modulo d without a hardware division
// instruction on the hot path (the quotient is read off the high half of a
// 128-bit-by-64-bit product).
type FastMod struct {
	d   uint64
	mhi uint64
	mlo uint64
}

// NewFastMod precomputes the 128-bit reciprocal ceil(2^128 / d) for the
// given non-zero divisor d.
func NewFastMod(d uint64) FastMod {
	if d == 0 {
		panic("modular: FastMod divisor must be non-zero")
	}
	// Compute floor((2^128 - 1) / d) + 1 using big.Int; this is a one-time
	// setup cost amortized over many Reduce calls.
	num := new(big.Int).Lsh(big.NewInt(1), 128)
	num.Sub(num, big.NewInt(1))
	q := new(big.Int).Div(num, new(big.Int).SetUint64(d))
	q.Add(q, big.NewInt(1))
	mask64 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
	lo := new(big.Int).And(q, mask64).Uint64()
	hi := new(big.Int).Rsh(q, 64).Uint64()
	return FastMod{d: d, mhi: hi, mlo: lo}
}

// Reduce returns n mod d for the divisor d this FastMod was built for.
func (fm FastMod) Reduce(n uint64) uint64 {
	if fm.d == 1 {
		// ceil(2^128/1) does not fit in 128 bits; every n is 0 mod 1.
		return 0
	}
	// q = floor(m*n / 2^128) equals floor(n/d); n - q*d is then n mod d.
	hi1, _ := bits.Mul64(fm.mlo, n)
	hi2, lo2 := bits.Mul64(fm.mhi, n)
	_, carry := bits.Add64(hi1, lo2, 0)
	q := hi2 + carry
	prod := q * fm.d
	r := n - prod
	if r >= fm.d {
		r -= fm.d
	}
	return r
}

// Order returns the multiplicative order of a modulo n given the full
// factorization of phi(n) (or any multiple of the true order), by starting
// from that multiple and dividing out each prime factor while a^(order/p)
// stays 1 mod n.
func Order(a, n int64, phiFactors map[int64]int) int64 {
	order := int64(1)
	for p, e := range phiFactors {
		for i := 0; i < e; i++ {
			order *= p
		}
	}
	for p := range phiFactors {
		for order%p == 0 && PowModI64(a, order/p, n) == 1 {
			order /= p
		}
	}
	return order
}

// Binom returns the binomial coefficient C(n, k) computed with plain
// uint64 arithmetic via the multiplicative recurrence; it is the caller's
// responsibility to ensure the result does not overflow.
func Binom(n, k uint64) uint64 {
	if k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := uint64(1)
	for i := uint64(0); i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}
