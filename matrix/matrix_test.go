package matrix

import "testing"

func TestFaulhaberCoeffsPower1(t *testing.T) {
	coeffs, denom := FaulhaberCoeffs(2)
	// sum_{i=1}^{v} i = v(v+1)/2
	row := coeffs[1]
	for v := int64(1); v <= 20; v++ {
		want := v * (v + 1) / 2
		vp1 := v + 1
		got := (row[0]*vp1 + row[1]*vp1*vp1) / denom
		if got != want {
			t.Errorf("Faulhaber k=1 at v=%d: got %d, want %d (denom=%d, row=%v)", v, got, want, denom, row)
		}
	}
}

func TestFaulhaberCoeffsPower2(t *testing.T) {
	coeffs, denom := FaulhaberCoeffs(3)
	// sum_{i=1}^{v} i^2 = v(v+1)(2v+1)/6
	row := coeffs[2]
	for v := int64(1); v <= 20; v++ {
		want := v * (v + 1) * (2*v + 1) / 6
		vp1 := v + 1
		got := (row[0]*vp1 + row[1]*vp1*vp1 + row[2]*vp1*vp1*vp1) / denom
		if got != want {
			t.Errorf("Faulhaber k=2 at v=%d: got %d, want %d", v, got, want)
		}
	}
}

func TestModMatrixInvertRoundTrip(t *testing.T) {
	const mod = int64(1000000007)
	m := NewModMatrix(4, mod)
	m.FillShortPascal()
	inv := m.InvertLowerTriangular()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := int64(0)
			for k := 0; k < 4; k++ {
				sum += m.Rows[i][k] * inv.Rows[k][j] % mod
			}
			sum %= mod
			want := int64(0)
			if i == j {
				want = 1
			}
			if sum != want {
				t.Errorf("(M * M^-1)[%d][%d] = %d, want %d", i, j, sum, want)
			}
		}
	}
}
