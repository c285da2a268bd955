package lts

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// madFactor makes the median absolute value a consistent estimator of
// the standard deviation under Gaussian data; meanFactor does the same
// for the mean absolute value, used as a fallback when the median
// vanishes.
const (
	madFactor  = 1.4826
	meanFactor = 1.2533
)

// workset is the per-call working state: validated inputs, the
// standardized copies the search runs on, and the column scales needed
// to map coefficients back to original units.
type workset struct {
	n, p, h int
	alpha   float64
	eps     float64

	// Standardized copies, row major. The search operates on these.
	x [][]float64
	y []float64

	// Caller data, untouched.
	xorig [][]float64
	yorig []float64

	// Column scales: sx per column of X, sy for y.
	sx []float64
	sy float64

	// Informational: numerical rank of the full standardized X.
	rankDeficient bool
}

// hsubset returns the trimmed subset size for a given alpha, n, and p.
// It satisfies p < h <= n for all valid inputs and is non-decreasing
// in alpha; alpha = 1 gives h = n.
func hsubset(alpha float64, n, p int) int {
	q := (n + p + 1) / 2
	return int(math.Floor(float64(2*q-n) + 2*float64(n-q)*alpha))
}

// standardizeTol returns the degeneracy tolerance for the column
// scales, loosened as the column count grows.
func standardizeTol(p int) float64 {
	switch {
	case p < 5:
		return 1e-12
	case p <= 18:
		return 1e-14
	default:
		return 1e-16
	}
}

// newWorkset validates the inputs, computes h, and produces the
// standardized working copies.
func newWorkset(x [][]float64, y []float64, alpha float64) (*workset, error) {
	n := len(x)
	if n == 0 || len(y) != n {
		return nil, ErrDimensionMismatch
	}

	p := len(x[0])
	if p < 1 {
		return nil, ErrDimensionMismatch
	}
	for _, row := range x {
		if len(row) != p {
			return nil, ErrDimensionMismatch
		}
	}

	if n <= 2*p {
		return nil, ErrTooFewRows
	}

	if alpha < 0.5 || alpha > 1.0 {
		return nil, ErrAlphaRange
	}

	ws := &workset{
		n:     n,
		p:     p,
		h:     hsubset(alpha, n, p),
		alpha: alpha,
		eps:   standardizeTol(p),
		xorig: x,
		yorig: y,
		sx:    make([]float64, p),
	}

	// Column scales for X.
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		for i := 0; i < n; i++ {
			col[i] = x[i][j]
		}
		s, err := robustColumnScale(col, ws.eps)
		if err != nil {
			return nil, err
		}
		ws.sx[j] = s
	}

	// Scale for y.
	copy(col, y)
	sy, err := robustColumnScale(col, ws.eps)
	if err != nil {
		return nil, err
	}
	ws.sy = sy

	// Standardized copies.
	ws.x = make([][]float64, n)
	ws.y = make([]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, p)
		for j := 0; j < p; j++ {
			row[j] = x[i][j] / ws.sx[j]
		}
		ws.x[i] = row
		ws.y[i] = y[i] / ws.sy
	}

	ws.rankDeficient = designRankDeficient(ws.x, n, p)

	return ws, nil
}

// robustColumnScale estimates a column's spread as 1.4826 times the
// median absolute value, falling back to 1.2533 times the mean absolute
// value when the median vanishes. A column degenerate under both
// estimators cannot be standardized.
func robustColumnScale(col []float64, eps float64) (float64, error) {
	abs := make([]float64, len(col))
	for i, v := range col {
		abs[i] = math.Abs(v)
	}
	sort.Float64s(abs)

	n := len(abs)
	var med float64
	if n%2 == 1 {
		med = abs[n/2]
	} else {
		med = (abs[n/2-1] + abs[n/2]) / 2
	}

	s := madFactor * med
	if math.Abs(s) > eps {
		return s, nil
	}

	var sum float64
	for _, v := range abs {
		sum += v
	}
	s = meanFactor * sum / float64(n)
	if math.Abs(s) > eps {
		return s, nil
	}

	return 0, ErrDegenerateColumn
}

// designRankDeficient reports whether the full standardized design
// matrix is numerically rank deficient. This is informational only; the
// subset sampler decides for itself whether usable elemental subsets
// exist.
func designRankDeficient(x [][]float64, n, p int) bool {
	a := mat.NewDense(n, p, nil)
	for i, row := range x {
		a.SetRow(i, row)
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return true
	}

	vals := svd.Values(nil)
	tol := float64(n) * vals[0] * 1e-15
	rank := 0
	for _, v := range vals {
		if v > tol {
			rank++
		}
	}

	return rank < p
}
