package lts

import (
	"errors"
	"math/rand"
	"testing"
)

func randomDesign(rng *rand.Rand, n, p int) ([][]float64, []float64) {
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := range x {
		row := make([]float64, p)
		for j := range row {
			row[j] = rng.NormFloat64()
		}
		x[i] = row
		y[i] = rng.NormFloat64()
	}
	return x, y
}

func TestHsubset_Invariants(t *testing.T) {
	alphas := []float64{0.5, 0.6, 0.75, 0.875, 0.9, 1.0}
	for _, n := range []int{5, 6, 15, 45, 100} {
		for _, p := range []int{1, 2} {
			if n <= 2*p {
				continue
			}
			prev := 0
			for _, alpha := range alphas {
				h := hsubset(alpha, n, p)
				if h <= p || h > n {
					t.Errorf("h(%v,%d,%d) = %d violates p < h <= n", alpha, n, p, h)
				}
				if h < prev {
					t.Errorf("h(%v,%d,%d) = %d decreased from %d", alpha, n, p, h, prev)
				}
				prev = h
			}
			if prev != n {
				t.Errorf("h(1.0,%d,%d) = %d, want n", n, p, prev)
			}
		}
	}
}

func TestNewWorkset_Errors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	x, y := randomDesign(rng, 10, 2)

	tests := []struct {
		name  string
		x     [][]float64
		y     []float64
		alpha float64
		want  error
	}{
		{"row count mismatch", x, y[:9], 0.75, ErrDimensionMismatch},
		{"empty", nil, nil, 0.75, ErrDimensionMismatch},
		{"too few rows", x[:4], y[:4], 0.75, ErrTooFewRows},
		{"alpha below range", x, y, 0.49, ErrAlphaRange},
		{"alpha above range", x, y, 1.01, ErrAlphaRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newWorkset(tc.x, tc.y, tc.alpha)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestNewWorkset_RaggedRows(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	x, y := randomDesign(rng, 10, 2)
	x[4] = []float64{1, 2, 3}

	if _, err := newWorkset(x, y, 0.75); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestNewWorkset_DegenerateColumn(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	x, y := randomDesign(rng, 10, 2)
	for i := range x {
		x[i][1] = 0
	}

	if _, err := newWorkset(x, y, 0.75); !errors.Is(err, ErrDegenerateColumn) {
		t.Fatalf("got %v, want ErrDegenerateColumn", err)
	}
}

func TestNewWorkset_DegenerateResponse(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	x, _ := randomDesign(rng, 10, 2)
	y := make([]float64, 10)

	if _, err := newWorkset(x, y, 0.75); !errors.Is(err, ErrDegenerateColumn) {
		t.Fatalf("got %v, want ErrDegenerateColumn", err)
	}
}

func TestNewWorkset_Standardization(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	x, y := randomDesign(rng, 20, 2)

	ws, err := newWorkset(x, y, 0.75)
	if err != nil {
		t.Fatal(err)
	}

	for j := 0; j < ws.p; j++ {
		if ws.sx[j] <= 0 {
			t.Errorf("column %d scale %v, want > 0", j, ws.sx[j])
		}
	}
	for i := range x {
		for j := range x[i] {
			want := x[i][j] / ws.sx[j]
			if ws.x[i][j] != want {
				t.Fatalf("x[%d][%d] standardized to %v, want %v", i, j, ws.x[i][j], want)
			}
		}
		if ws.y[i] != y[i]/ws.sy {
			t.Fatalf("y[%d] standardized to %v, want %v", i, ws.y[i], y[i]/ws.sy)
		}
	}

	if ws.rankDeficient {
		t.Error("random design reported rank deficient")
	}
}

func TestRobustColumnScale_Fallback(t *testing.T) {
	// More than half zeros kills the median; the mean absolute
	// deviation fallback must take over.
	col := []float64{0, 0, 0, 0, 0, 0, 1, 2, 3, 4}
	s, err := robustColumnScale(col, 1e-12)
	if err != nil {
		t.Fatal(err)
	}
	want := meanFactor * 1.0 // mean |col| = 10/10
	if !almostEqual(s, want, 1e-12) {
		t.Errorf("fallback scale %v, want %v", s, want)
	}
}
