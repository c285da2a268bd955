// Package testutil provides shared helpers for array-processing tests:
// tolerance checks and deterministic synthetic plane-wave data.
package testutil

import (
	"math"
	"testing"
)

// AlmostEqual reports whether a and b agree within tol, treating equal
// infinities and NaN pairs as equal.
func AlmostEqual(a, b, tol float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		return true
	}
	if math.IsInf(a, 1) && math.IsInf(b, 1) {
		return true
	}
	return math.Abs(a-b) <= tol
}

// RequireNearlyEqual fails t if got and want differ by more than tol.
func RequireNearlyEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if !AlmostEqual(got, want, tol) {
		t.Fatalf("got %v, want %v (tol %v)", got, want, tol)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or
// if any element pair exceeds tol.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if !AlmostEqual(got[i], want[i], tol) {
			t.Fatalf("index %d: got %v, want %v (tol %v)", i, got[i], want[i], tol)
		}
	}
}

// StationCoords returns the planar coordinates (km) of a six-element
// test array with roughly 250 m aperture.
func StationCoords() (x, y []float64) {
	x = []float64{0.0, 0.018, -0.054, -0.132, -0.156, -0.211}
	y = []float64{0.0, 0.148, 0.040, 0.062, 0.151, -0.037}
	return x, y
}

// Slowness returns the slowness vector (s/km) of a plane wave with the
// given apparent velocity (km/s) arriving from back-azimuth bazDeg
// (degrees clockwise from north). The vector points toward the source.
func Slowness(velocity, bazDeg float64) []float64 {
	rad := bazDeg * math.Pi / 180
	return []float64{
		math.Sin(rad) / velocity,
		math.Cos(rad) / velocity,
	}
}

// PlaneWaveDelays returns the noiseless travel-time differences
// X times z for a co-array design matrix.
func PlaneWaveDelays(coarray [][]float64, z []float64) []float64 {
	y := make([]float64, len(coarray))
	for i, row := range coarray {
		for j := range z {
			y[i] += row[j] * z[j]
		}
	}

	return y
}

// ArrivalTimes returns the plane-wave arrival time (seconds, relative
// to the coordinate origin) at each station for the given slowness
// vector. Stations closer to the source record earlier arrivals.
func ArrivalTimes(x, y, z []float64) []float64 {
	t := make([]float64, len(x))
	for i := range t {
		t[i] = -(x[i]*z[0] + y[i]*z[1])
	}

	return t
}

// GaussPulse samples a Gaussian-modulated cosine pulse centered at
// centerSec with the given width (seconds) at times (i/fs - shiftSec).
func GaussPulse(n int, fs, centerSec, widthSec, shiftSec float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		t := float64(i)/fs - shiftSec - centerSec
		out[i] = math.Exp(-t*t/(2*widthSec*widthSec)) * math.Cos(2*math.Pi*t/widthSec)
	}

	return out
}
