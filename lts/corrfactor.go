package lts

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Consistency and small-sample correction factors for the LTS scale.
//
// The raw trimmed scale underestimates the Gaussian standard deviation
// because it averages only the h most central squared residuals; the
// consistency factors (Croux and Rousseeuw) correct the asymptotic
// bias, and the finite-sample factors (Pison, Van Aelst and Willems)
// correct the remaining small-n bias using coefficients fitted to
// simulation at alpha = 0.5 and alpha = 0.875.

// consistencyFactor corrects the trimmed variance of the h most central
// of n Gaussian observations toward the full-sample variance. It is
// shared by the raw (h = subset size) and reweighted (h = inlier count)
// scales.
func consistencyFactor(h, n int) float64 {
	if h >= n {
		return 1
	}

	a := distuv.UnitNormal.Quantile(float64(h+n) / (2 * float64(n)))
	density := distuv.UnitNormal.Prob(a)

	return 1 / math.Sqrt(1-(2*float64(n)/float64(h))*a*density)
}

// qpkwad holds the simulation coefficients of one (alpha, estimator,
// intercept) cell for two reference dimensions, p_ref 3 and 5.
type qpkwad [2]struct {
	c1, c2 float64
	pref   float64
}

var (
	rawQpkwad500NoInt = qpkwad{
		{-0.487338281979106, 0.405511279418594, 3},
		{-0.340762058011, 0.37972360544988, 5},
	}
	rawQpkwad875NoInt = qpkwad{
		{-0.251778730491252, 0.883966931611758, 3},
		{-0.146660023184295, 0.86829474527614, 5},
	}
	rawQpkwad500Int = qpkwad{
		{-0.746945886714663, 0.56264937192689, 3},
		{-0.535478048924724, 0.543323462033445, 5},
	}
	rawQpkwad875Int = qpkwad{
		{-0.458580153984614, 1.12236071104403, 3},
		{-0.267178168108996, 1.1022478781154, 5},
	}

	rewQpkwad500NoInt = qpkwad{
		{-0.952487302510095, 1.38537678436349, 3},
		{-0.423404935726939, 1.31770707533439, 5},
	}
	rewQpkwad875NoInt = qpkwad{
		{-0.207871926041898, 0.914789171444425, 3},
		{-0.127204541052617, 0.938497560951014, 5},
	}
	rewQpkwad500Int = qpkwad{
		{-1.02842572724793, 1.67659883081926, 3},
		{-0.26800273450853, 1.35968562893582, 5},
	}
	rewQpkwad875Int = qpkwad{
		{-0.544482443573914, 1.25994483222292, 3},
		{-0.343791072183285, 1.25159004257133, 5},
	}
)

// fpAt extrapolates the finite-sample bias 1 - fp(n) for dimension p
// from the two reference dimensions of one coefficient cell, then
// evaluates it at n. The extrapolation fits log(1-fp) linear in
// log(1/(pref*p^2)).
func (q qpkwad) fpAt(p, n int) float64 {
	pf := float64(p)

	y1 := math.Log(-q[0].c1 / math.Pow(pf, q[0].c2))
	y2 := math.Log(-q[1].c1 / math.Pow(pf, q[1].c2))
	x1 := math.Log(1 / (q[0].pref * pf * pf))
	x2 := math.Log(1 / (q[1].pref * pf * pf))

	slope := (y2 - y1) / (x2 - x1)
	intercept := y1 - slope*x1

	return 1 - math.Exp(intercept)/math.Pow(float64(n), slope)
}

// smallSampleFactor evaluates the Pison-Van Aelst-Willems finite-sample
// correction by interpolating the fitted alpha = 0.5 and alpha = 0.875
// curves. Coefficient cells p==1 come straight from the published fits;
// p>1 extrapolates from the reference dimensions.
func smallSampleFactor(fp500, fp875, alpha float64) float64 {
	var fp float64
	if alpha <= 0.875 {
		fp = fp500 + (fp875-fp500)/0.375*(alpha-0.5)
	} else {
		fp = fp875 + (1-fp875)/0.125*(alpha-0.875)
	}

	factor := 1 / fp
	if factor <= 0 || factor > 50 {
		return 1
	}

	return factor
}

// rawCorrectionFactor is the finite-sample correction of the raw LTS
// scale for an n x p zero-or-one-intercept regression at the given
// trimming fraction.
func rawCorrectionFactor(p int, intercept bool, n int, alpha float64) float64 {
	nf := float64(n)

	var fp500, fp875 float64
	switch {
	case p == 1 && intercept:
		fp500 = 1 - math.Exp(0.630869217886906)/math.Pow(nf, 0.650789250442946)
		fp875 = 1 - math.Exp(0.565065391014791)/math.Pow(nf, 1.03044199012509)
	case p == 1:
		fp500 = 1 - math.Exp(-0.0181777452315321)/math.Pow(nf, 0.697629772271099)
		fp875 = 1 - math.Exp(-0.310122738776431)/math.Pow(nf, 1.06241615923172)
	case intercept:
		fp500 = rawQpkwad500Int.fpAt(p, n)
		fp875 = rawQpkwad875Int.fpAt(p, n)
	default:
		fp500 = rawQpkwad500NoInt.fpAt(p, n)
		fp875 = rawQpkwad875NoInt.fpAt(p, n)
	}

	return smallSampleFactor(fp500, fp875, alpha)
}

// rewCorrectionFactor is the finite-sample correction of the scale
// recomputed after the reweighted least squares refit.
func rewCorrectionFactor(p int, intercept bool, n int, alpha float64) float64 {
	nf := float64(n)

	var fp500, fp875 float64
	switch {
	case p == 1 && intercept:
		fp500 = 1 - math.Exp(1.58609654199605)/math.Pow(nf, 1.46340162526468)
		fp875 = 1 - math.Exp(0.391653958727332)/math.Pow(nf, 1.03167487483316)
	case p == 1:
		fp500 = 1 - math.Exp(0.6329852387657)/math.Pow(nf, 1.40361879788014)
		fp875 = 1 - math.Exp(-0.642240988645469)/math.Pow(nf, 0.926325452943084)
	case intercept:
		fp500 = rewQpkwad500Int.fpAt(p, n)
		fp875 = rewQpkwad875Int.fpAt(p, n)
	default:
		fp500 = rewQpkwad500NoInt.fpAt(p, n)
		fp875 = rewQpkwad875NoInt.fpAt(p, n)
	}

	return smallSampleFactor(fp500, fp875, alpha)
}
