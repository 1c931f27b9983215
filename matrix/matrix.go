// Package matrix implements the small amount of linear algebra the
// dirichlet package needs to evaluate power sums via Faulhaber's formula:
// lower-triangular matrix inversion (both over the rationals, tracked as a
// common denominator, and modulo a prime) and the short Pascal matrix that
// formula is built from.
package matrix

import (
	"math/big"

	"github.com/hacatu/nut/modular"
)

// RatMatrix is a square lower-triangular matrix of integers sharing an
// implicit common denominator, used to represent exact rational matrices
// without a big.Rat per entry.
type RatMatrix struct {
	N      int
	Rows   [][]int64
	Denom  int64
}

// NewRatMatrix allocates an n x n zero matrix with denominator 1.
func NewRatMatrix(n int) *RatMatrix {
	rows := make([][]int64, n)
	for i := range rows {
		rows[i] = make([]int64, n)
	}
	return &RatMatrix{N: n, Rows: rows, Denom: 1}
}

// FillShortPascal fills m with m[row][col] = C(row+1, col) for col <= row,
// the matrix relating power sums to each other through the telescoping
// identity (v+1)^{k+1} = sum_{v'=0}^{v} sum_{j=0}^{k} C(k+1,j) v'^j,
// which is what Faulhaber's formula inverts.
func (m *RatMatrix) FillShortPascal() {
	for row := 0; row < m.N; row++ {
		m.Rows[row][0] = 1
		for col := 1; col <= row && col < m.N; col++ {
			m.Rows[row][col] = int64(modular.Binom(uint64(row+1), uint64(col)))
		}
	}
}

// InvertLowerTriangular inverts m via Gauss-Jordan elimination over exact
// rationals (math/big.Rat per entry during elimination, matching the C
// routine's use of arbitrary-precision fractions), then collapses the
// result back onto a single shared integer denominator so the rest of
// this module can keep working in plain int64 arithmetic.
func (m *RatMatrix) InvertLowerTriangular() *RatMatrix {
	n := m.N
	aug := make([][]*big.Rat, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]*big.Rat, 2*n)
		for j := 0; j < n; j++ {
			aug[i][j] = new(big.Rat).SetInt64(m.Rows[i][j])
		}
		for j := n; j < 2*n; j++ {
			v := int64(0)
			if j-n == i {
				v = 1
			}
			aug[i][j] = new(big.Rat).SetInt64(v)
		}
	}
	for i := 0; i < n; i++ {
		pivot := aug[i][i]
		if pivot.Sign() == 0 {
			panic("matrix: singular lower-triangular matrix")
		}
		inv := new(big.Rat).Inv(pivot)
		for k := 0; k < 2*n; k++ {
			aug[i][k] = new(big.Rat).Mul(aug[i][k], inv)
		}
		for r := 0; r < n; r++ {
			if r == i {
				continue
			}
			factor := aug[r][i]
			if factor.Sign() == 0 {
				continue
			}
			for k := 0; k < 2*n; k++ {
				term := new(big.Rat).Mul(factor, aug[i][k])
				aug[r][k] = new(big.Rat).Sub(aug[r][k], term)
			}
		}
	}
	lcmDenom := big.NewInt(1)
	for i := 0; i < n; i++ {
		for j := n; j < 2*n; j++ {
			lcmDenom = lcmInt(lcmDenom, aug[i][j].Denom())
		}
	}
	out := NewRatMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			scaled := new(big.Rat).Mul(aug[i][n+j], new(big.Rat).SetInt(lcmDenom))
			out.Rows[i][j] = scaled.Num().Int64()
		}
	}
	out.Denom = lcmDenom.Int64()
	return out
}

func lcmInt(a, b *big.Int) *big.Int {
	if b.Sign() == 0 {
		return new(big.Int).Set(a)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	return new(big.Int).Div(new(big.Int).Mul(a, b), g)
}

// ModMatrix is a square lower-triangular matrix of residues modulo a fixed
// prime Modulus.
type ModMatrix struct {
	N       int
	Rows    [][]int64
	Modulus int64
}

// NewModMatrix allocates an n x n zero matrix modulo m.
func NewModMatrix(n int, m int64) *ModMatrix {
	rows := make([][]int64, n)
	for i := range rows {
		rows[i] = make([]int64, n)
	}
	return &ModMatrix{N: n, Rows: rows, Modulus: m}
}

// FillShortPascal fills m with m[row][col] = C(row+1, col) mod Modulus
// for col <= row, mirroring RatMatrix.FillShortPascal.
func (m *ModMatrix) FillShortPascal() {
	for row := 0; row < m.N; row++ {
		m.Rows[row][0] = 1 % m.Modulus
		for col := 1; col <= row && col < m.N; col++ {
			m.Rows[row][col] = int64(modular.Binom(uint64(row+1), uint64(col))) % m.Modulus
		}
	}
}

// InvertLowerTriangular inverts m modulo m.Modulus via Gauss-Jordan
// elimination, using a true modular inverse at each pivot rather than
// deferring to a shared denominator (since every nonzero residue modulo a
// prime is already invertible).
func (m *ModMatrix) InvertLowerTriangular() *ModMatrix {
	n := m.N
	mod := m.Modulus
	aug := NewModMatrix(n, mod)
	for i := 0; i < n; i++ {
		copy(aug.Rows[i], m.Rows[i])
		aug.Rows[i] = append(aug.Rows[i], make([]int64, n)...)
		aug.Rows[i][n+i] = 1
	}
	for i := 0; i < n; i++ {
		inv, err := modular.ModInv(aug.Rows[i][i], mod)
		if err != nil {
			panic("matrix: singular matrix modulo " + itoa(mod))
		}
		for k := 0; k < 2*n; k++ {
			aug.Rows[i][k] = int64(modular.MulMod(uint64(aug.Rows[i][k]), uint64(inv), uint64(mod)))
		}
		for r := i + 1; r < n; r++ {
			factor := aug.Rows[r][i]
			if factor == 0 {
				continue
			}
			for k := 0; k < 2*n; k++ {
				term := int64(modular.MulMod(uint64(aug.Rows[i][k]), uint64(factor), uint64(mod)))
				v := aug.Rows[r][k] - term
				if v < 0 {
					v += mod
				}
				aug.Rows[r][k] = v
			}
		}
	}
	out := NewModMatrix(n, mod)
	for i := 0; i < n; i++ {
		copy(out.Rows[i], aug.Rows[i][n:])
	}
	return out
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// FaulhaberCoeffs returns, for every power k in [0, maxK]:
//
//	sum_{v'=0}^{v} v'^k = (1/denom) * sum_j coeffs[k][j] * (v+1)^(j+1)
//
// (which, for k >= 1, equals sum_{v'=1}^{v} v'^k since the v'=0 term
// vanishes), derived from inverting the short-Pascal matrix
// A[row][col] = C(row+1,col) over the rationals: A relates the vector of
// power sums (S_0..S_k)(v) to the vector of powers of (v+1) via the
// telescoping identity (v+1)^{k+1} = sum_j C(k+1,j) S_j(v), so
// S = A^{-1} * (v+1)^{*}.
func FaulhaberCoeffs(maxK int) (coeffs [][]int64, denom int64) {
	n := maxK + 1
	pascal := NewRatMatrix(n)
	pascal.FillShortPascal()
	inv := pascal.InvertLowerTriangular()
	coeffs = make([][]int64, n)
	for k := 0; k < n; k++ {
		row := make([]int64, n)
		for j := 0; j <= k; j++ {
			row[j] = inv.Rows[k][j]
		}
		coeffs[k] = row
	}
	return coeffs, inv.Denom
}

// FaulhaberCoeffsMod is the modular analogue of FaulhaberCoeffs, returning
// coefficients already reduced modulo a prime m (so the caller never needs
// to divide by a shared denominator).
func FaulhaberCoeffsMod(maxK int, m int64) [][]int64 {
	n := maxK + 1
	pascal := NewModMatrix(n, m)
	pascal.FillShortPascal()
	inv := pascal.InvertLowerTriangular()
	coeffs := make([][]int64, n)
	for k := 0; k < n; k++ {
		row := make([]int64, n)
		for j := 0; j <= k; j++ {
			row[j] = inv.Rows[k][j]
		}
		coeffs[k] = row
	}
	return coeffs
}
