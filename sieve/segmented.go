package sieve

import "github.com/hacatu/nut/factor"

// Segment describes a contiguous range [Lo, Hi] to be sieved, plus the
// state a worker partitioning a larger range across many buckets shares
// read-only with every other worker: the immutable list of sieving primes
// up to sqrt(max) for the overall range, and the preferred bucket size
// that range was cut into. A Segment built directly (as {Lo: lo, Hi: hi})
// rather than via Buckets is still valid: SegmentedPrimes/SegmentedFactor
// fall back to computing their own base prime list when SievingPrimes is
// nil.
type Segment struct {
	Lo, Hi uint64
	// SievingPrimes is the immutable list of primes up to sqrt(max) shared
	// by every bucket Buckets cut from the same range.
	SievingPrimes []uint64
	// PreferredBucketSize is the cache-sizing hint each bucket was cut to;
	// 0 (the zero value, e.g. on a Segment built directly) means "use
	// sqrt(max)".
	PreferredBucketSize uint64
}

// Buckets partitions [0, max] into segments of PreferredBucketSize width,
// defaulting to sqrt(max) when preferredBucketSize is 0, each carrying the
// same shared SievingPrimes list computed once up front. A caller can hand
// one Segment per worker and sieve disjoint buckets with SegmentedPrimes
// or SegmentedFactor without any shared mutable state beyond the read-only
// prime list.
func Buckets(max, preferredBucketSize uint64) []Segment {
	if max < 2 {
		return nil
	}
	base := PrimesUpTo(isqrt(max))
	size := preferredBucketSize
	if size == 0 {
		size = isqrt(max)
	}
	if size == 0 {
		size = 1
	}
	var segs []Segment
	for lo := uint64(0); lo <= max; lo += size {
		hi := lo + size - 1
		if hi > max || hi < lo {
			hi = max
		}
		segs = append(segs, Segment{Lo: lo, Hi: hi, SievingPrimes: base, PreferredBucketSize: size})
		if hi >= max {
			break
		}
	}
	return segs
}

// sievingPrimes returns seg's shared base prime list if it carries one
// (from Buckets), or computes one from scratch for a directly-built
// Segment.
func (seg Segment) sievingPrimes() []uint64 {
	if seg.SievingPrimes != nil {
		return seg.SievingPrimes
	}
	return PrimesUpTo(isqrt(seg.Hi))
}

// SegmentedPrimes returns every prime in [seg.Lo, seg.Hi], sieving only the
// segment's own range (plus the base primes up to sqrt(seg.Hi)) rather
// than the whole range from zero, so a caller partitioning a large range
// across workers can sieve each bucket independently.
func SegmentedPrimes(seg Segment) []uint64 {
	if seg.Hi < 2 || seg.Hi < seg.Lo {
		return nil
	}
	lo := seg.Lo
	if lo < 2 {
		lo = 2
	}
	base := seg.sievingPrimes()
	composite := make([]bool, seg.Hi-lo+1)
	for _, p := range base {
		start := ((lo + p - 1) / p) * p
		if start < p*p {
			start = p * p
		}
		for m := start; m <= seg.Hi; m += p {
			composite[m-lo] = true
		}
	}
	var primes []uint64
	for v := lo; v <= seg.Hi; v++ {
		if !composite[v-lo] {
			primes = append(primes, v)
		}
	}
	return primes
}

// isqrt returns floor(sqrt(n)) via Newton's method.
func isqrt(n uint64) uint64 {
	if n == 0 {
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

// firstPrimes seeds MaxOmega; it only needs to run far enough that the
// product of the first k primes exceeds any max this library is sized for
// (the product of the first 15 primes alone already exceeds 2^32).
var firstPrimes = []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71}

// MaxOmega returns the largest number of distinct prime factors any
// integer in [1, max] can have: the greatest k such that the product of
// the first k primes does not exceed max. This bounds the per-entry pitch
// a flat buffer of factor.PrimePower needs to hold any single number's
// factorization without reallocating.
func MaxOmega(max uint64) int {
	k := 0
	prod := uint64(1)
	for _, p := range firstPrimes {
		next := prod * p
		if next > max || next < prod {
			break
		}
		prod = next
		k++
	}
	return k
}

// mkbuffer allocates a flat, fixed-pitch buffer of factor.PrimePower
// entries sized to hold count rows of at most MaxOmega(max) entries each:
// row i occupies buf[i*pitch : i*pitch+pitch : i*pitch+pitch]. This lets
// SegmentedFactor fill count variable-length factor lists out of one
// contiguous allocation instead of one slice allocation per row.
func mkbuffer(count, max uint64) (buf []factor.PrimePower, pitch int) {
	pitch = MaxOmega(max)
	if pitch < 1 {
		pitch = 1
	}
	return make([]factor.PrimePower, count*uint64(pitch)), pitch
}

// SegmentedFactor returns the complete factorization of every integer in
// [seg.Lo, seg.Hi], using only the base primes up to sqrt(seg.Hi) and
// trial division within the segment, so a bucket of a large range can be
// factored without sieving everything below it. Every row's Factors slice
// is backed by one shared mkbuffer allocation rather than a separate one
// per row.
func SegmentedFactor(seg Segment) []factor.Factors {
	lo := seg.Lo
	if lo < 1 {
		lo = 1
	}
	base := seg.sievingPrimes()
	count := seg.Hi - lo + 1
	buf, pitch := mkbuffer(count, seg.Hi)
	out := make([]factor.Factors, count)
	for v := lo; v <= seg.Hi; v++ {
		row := v - lo
		f := factor.Factors{Factors: buf[row*uint64(pitch) : row*uint64(pitch) : (row+1)*uint64(pitch)]}
		rem := v
		for _, p := range base {
			if p*p > rem {
				break
			}
			if rem%p == 0 {
				e := uint64(0)
				for rem%p == 0 {
					e++
					rem /= p
				}
				f.Append(p, e)
			}
		}
		if rem > 1 {
			f.Append(rem, 1)
		}
		out[row] = f
	}
	return out
}

// PiSieve returns pi(i), the prime-counting function, for every i in
// [0, n], by walking the prime list once rather than recomputing
// CountPrimesUpTo per index.
func PiSieve(n uint64) []uint64 {
	primes := PrimesUpTo(n)
	pi := make([]uint64, n+1)
	pidx := 0
	count := uint64(0)
	for i := uint64(0); i <= n; i++ {
		for pidx < len(primes) && primes[pidx] == i {
			count++
			pidx++
		}
		pi[i] = count
	}
	return pi
}
