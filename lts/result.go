package lts

import (
	"math"
	"sort"
)

// Result is the outcome of one Solve call. All slices are owned by the
// result; inputs are never modified.
type Result struct {
	// Coefficients is the fitted slowness vector (p entries, original
	// units).
	Coefficients []float64
	// Objective is the sum of the h smallest squared residuals of the
	// accepted trimmed fit, in original units.
	Objective float64
	// Scale is the corrected robust dispersion of the residuals; zero
	// signals an exact fit.
	Scale float64
	// Weights flags the observations kept by the final fit.
	Weights []bool
	// Fitted holds X times Coefficients and Residuals the gap to y.
	Fitted    []float64
	Residuals []float64
	// Rsquared is the trimmed coefficient of determination in [0, 1].
	Rsquared float64
	// Velocity and Bazimuth decode the slowness vector for the p == 2
	// plane-wave model; both are NaN for other dimensions. Bazimuth is
	// the geographic bearing in degrees clockwise from north, [0, 360).
	Velocity float64
	Bazimuth float64
	// ExactFit reports that the data admitted a (near) exact trimmed
	// fit, in which case reweighting was skipped and Scale is zero.
	ExactFit bool
	// RankDeficient reports that the full design matrix looked
	// numerically rank deficient, even though elemental subsets
	// solved. Informational only.
	RankDeficient bool
}

// decode fills the plane-wave fields and the trimmed R-squared.
// The back-azimuth converts the mathematical counter-clockwise-from-
// east angle of the slowness vector to a geographic clockwise-from-
// north bearing: az = (atan2(sx, sy) - 360) mod 360.
func (res *Result) decode(yorig []float64, h int) {
	if len(res.Coefficients) == 2 {
		sx, sy := res.Coefficients[0], res.Coefficients[1]
		norm := math.Hypot(sx, sy)
		if norm > 0 {
			res.Velocity = 1 / norm
		} else {
			res.Velocity = math.Inf(1)
		}

		az := math.Atan2(sx, sy)*180/math.Pi - 360
		az = math.Mod(az, 360)
		if az < 0 {
			az += 360
		}
		res.Bazimuth = az
	} else {
		res.Velocity = math.NaN()
		res.Bazimuth = math.NaN()
	}

	res.Rsquared = trimmedRsquared(res.Residuals, yorig, h)
}

// trimmedRsquared compares the h smallest squared residuals against the
// h smallest squared responses, clamped to [0, 1].
func trimmedRsquared(residuals, y []float64, h int) float64 {
	num := trimmedSumSquares(residuals, h)
	den := trimmedSumSquares(y, h)
	if den == 0 {
		return 0
	}

	r2 := 1 - num/den
	switch {
	case r2 > 1:
		return 1
	case r2 < 0:
		return 0
	default:
		return r2
	}
}

func trimmedSumSquares(v []float64, h int) float64 {
	sq := make([]float64, len(v))
	for i, x := range v {
		sq[i] = x * x
	}
	sort.Float64s(sq)

	var sum float64
	for _, x := range sq[:h] {
		sum += x
	}

	return sum
}
