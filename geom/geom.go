// Package geom describes small sensor array geometries and derives the
// co-array design matrix consumed by the lts regression.
//
// Station coordinates are planar (east, north) offsets, typically in
// kilometers after map projection. The co-array enumerates every
// unordered station pair (i < j, j ascending within i) and its
// coordinate difference; the delay package emits travel-time
// differences in exactly the same pair order, so the two line up row
// for row.
package geom

import (
	"errors"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

var (
	// ErrCoordinateMismatch indicates x and y coordinate slices of
	// different lengths.
	ErrCoordinateMismatch = errors.New("geom: x and y coordinate counts differ")
	// ErrTooFewStations indicates fewer than three stations, too few to
	// form a usable co-array.
	ErrTooFewStations = errors.New("geom: need at least three stations")
)

// Array holds projected planar station coordinates.
type Array struct {
	X []float64 // east offsets
	Y []float64 // north offsets
}

// NewArray validates the coordinates and returns the array geometry.
func NewArray(x, y []float64) (*Array, error) {
	if len(x) != len(y) {
		return nil, ErrCoordinateMismatch
	}
	if len(x) < 3 {
		return nil, ErrTooFewStations
	}

	return &Array{X: x, Y: y}, nil
}

// Stations returns the number of stations.
func (a *Array) Stations() int {
	return len(a.X)
}

// NumPairs returns the number of unordered station pairs.
func (a *Array) NumPairs() int {
	n := len(a.X)
	return n * (n - 1) / 2
}

// Pair is an unordered station pair (I < J).
type Pair struct {
	I, J int
}

// Pairs enumerates the station pairs in co-array order.
func (a *Array) Pairs() []Pair {
	pairs := make([]Pair, 0, a.NumPairs())
	for i := 0; i < len(a.X); i++ {
		for j := i + 1; j < len(a.X); j++ {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}

	return pairs
}

// Coarray returns the design matrix of pairwise coordinate differences,
// one row (xj-xi, yj-yi) per pair in co-array order.
func (a *Array) Coarray() [][]float64 {
	rows := make([][]float64, 0, a.NumPairs())
	for i := 0; i < len(a.X); i++ {
		for j := i + 1; j < len(a.X); j++ {
			rows = append(rows, []float64{
				a.X[j] - a.X[i],
				a.Y[j] - a.Y[i],
			})
		}
	}

	return rows
}

// Centered returns a copy of the array shifted so its centroid sits at
// the origin. The co-array is translation invariant; centering only
// tidies coordinates for display and conditioning.
func (a *Array) Centered() *Array {
	n := len(a.X)
	cx := vecmath.Sum(a.X) / float64(n)
	cy := vecmath.Sum(a.Y) / float64(n)

	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = a.X[i] - cx
		y[i] = a.Y[i] - cy
	}

	return &Array{X: x, Y: y}
}

// Aperture returns the largest inter-station distance.
func (a *Array) Aperture() float64 {
	var max float64
	for i := 0; i < len(a.X); i++ {
		for j := i + 1; j < len(a.X); j++ {
			d := math.Hypot(a.X[j]-a.X[i], a.Y[j]-a.Y[i])
			if d > max {
				max = d
			}
		}
	}

	return max
}

// StationsFromWeights maps down-weighted co-array rows back to station
// indices: every station taking part in at least one flagged-out pair
// is reported, sorted ascending. A nil result means no station was
// flagged.
func (a *Array) StationsFromWeights(weights []bool) []int {
	flagged := make([]bool, len(a.X))
	k := 0
	for i := 0; i < len(a.X); i++ {
		for j := i + 1; j < len(a.X); j++ {
			if k < len(weights) && !weights[k] {
				flagged[i] = true
				flagged[j] = true
			}
			k++
		}
	}

	var stations []int
	for i, f := range flagged {
		if f {
			stations = append(stations, i)
		}
	}

	return stations
}
