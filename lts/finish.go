package lts

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// finish turns the accepted trimmed fit (coefficients already in
// original units) into the final result: raw robust scale, exact-fit
// detection, reweighted refit, and decoding.
func (ws *workset) finish(z []float64, objective float64, cfg Config) (*Result, error) {
	fitted, residuals := ws.rawResiduals(z)

	// Raw scale: RMS of the h most central squared residuals, bias
	// corrected toward the Gaussian standard deviation.
	rawFactor := rawCorrectionFactor(ws.p, false, ws.n, ws.alpha) *
		consistencyFactor(ws.h, ws.n)
	s0 := math.Sqrt(trimmedSumSquares(residuals, ws.h)/float64(ws.h)) * rawFactor

	res := &Result{
		Coefficients:  z,
		Objective:     objective,
		Fitted:        fitted,
		Residuals:     residuals,
		RankDeficient: ws.rankDeficient,
	}

	if math.Abs(s0) < cfg.ScaleTol {
		// Exact fit: the h-subset lies on the fitted plane. Reweighting
		// would divide by a near-zero scale, so flag near-zero
		// residuals directly and report a zero scale.
		res.ExactFit = true
		res.Scale = 0
		res.Objective = 0
		res.Weights = make([]bool, ws.n)
		for i, r := range residuals {
			res.Weights[i] = math.Abs(r) < cfg.ScaleTol
		}
		res.decode(ws.yorig, ws.h)

		return res, nil
	}

	if err := ws.reweight(res, s0, cfg); err != nil {
		return nil, err
	}
	res.decode(ws.yorig, ws.h)

	return res, nil
}

// reweight flags inliers by their residual standardized with the raw
// scale, refits ordinary least squares on them, and recomputes the
// scale from the refit with the reweighted pair of correction factors.
// The looser FinalCutoff on the recomputed scale produces the reported
// weight vector.
func (ws *workset) reweight(res *Result, s0 float64, cfg Config) error {
	cutoff := distuv.UnitNormal.Quantile(cfg.CoverageQuantile)

	var rows []int
	for i, r := range res.Residuals {
		if math.Abs(r/s0) <= cutoff {
			rows = append(rows, i)
		}
	}
	if len(rows) < 2 {
		return ErrTooFewInliers
	}

	z, err := lsSolve(ws.xorig, ws.yorig, rows)
	if err != nil {
		// The flagged rows no longer span the model space.
		return ErrSingularSubset
	}

	fitted, residuals := ws.rawResiduals(z)

	var sum float64
	for _, i := range rows {
		sum += residuals[i] * residuals[i]
	}
	scale := math.Sqrt(sum / float64(len(rows)-1))
	scale *= rewCorrectionFactor(ws.p, false, ws.n, ws.alpha)
	scale *= consistencyFactor(len(rows), ws.n)

	weights := make([]bool, ws.n)
	for i, r := range residuals {
		weights[i] = math.Abs(r/scale) <= cfg.FinalCutoff
	}

	res.Coefficients = z
	res.Scale = scale
	res.Weights = weights
	res.Fitted = fitted
	res.Residuals = residuals

	return nil
}

// solveOLS is the alpha = 1 shortcut: a single ordinary least squares
// fit over all observations, reported through the same result schema
// with every weight set.
func (ws *workset) solveOLS(cfg Config) (*Result, error) {
	z, err := lsSolve(ws.x, ws.y, nil)
	if err != nil {
		return nil, ErrSingularSubset
	}
	ws.destandardize(z)

	fitted, residuals := ws.rawResiduals(z)

	var sum float64
	for _, r := range residuals {
		sum += r * r
	}
	scale := math.Sqrt(sum / float64(ws.n-1))

	weights := make([]bool, ws.n)
	for i := range weights {
		weights[i] = true
	}

	res := &Result{
		Coefficients:  z,
		Objective:     sum,
		Scale:         scale,
		Weights:       weights,
		Fitted:        fitted,
		Residuals:     residuals,
		RankDeficient: ws.rankDeficient,
	}
	if scale < cfg.ScaleTol {
		res.ExactFit = true
		res.Scale = 0
		res.Objective = 0
	}
	res.decode(ws.yorig, ws.h)

	return res, nil
}

// destandardize maps coefficients of the standardized problem back to
// original units in place.
func (ws *workset) destandardize(z []float64) {
	for j := range z {
		z[j] *= ws.sy / ws.sx[j]
	}
}
