// Package lts implements least trimmed squares (LTS) regression for
// plane-wave parameter estimation across small sensor arrays.
//
// Given a co-array design matrix X (sensor-pair coordinate differences)
// and a vector y of inter-element travel-time differences, Solve finds
// the slowness vector minimizing the sum of the h smallest squared
// residuals, where h is controlled by the trimming fraction alpha.
// Observations that do not fit the dominant plane wave — malfunctioning
// elements, scattered or multi-path arrivals — are trimmed away rather
// than dragging the fit, then reported through the result's weight
// vector.
//
// The search follows the FAST-LTS scheme of Rousseeuw and Van Driessen:
// many elemental subsets of p points are drawn and solved exactly, each
// start is improved by a few concentration steps (refit on the h best
// observations, retrim, repeat), the best local optima are pooled, and
// the pooled candidates are concentrated to convergence. The winning
// fit is turned into a robust scale estimate with the small-sample
// correction factors of Pison, Van Aelst and Willems, then refined by a
// reweighted least squares fit over the inliers.
//
// # Usage
//
// Fit a plane wave with half trimming and decode velocity and
// back-azimuth:
//
//	res, err := lts.Solve(coarray, delays, 0.75)
//	if err != nil {
//	    // shape, domain, or degeneracy problem
//	}
//	fmt.Println(res.Velocity, res.Bazimuth, res.Weights)
//
// With alpha = 1 no trimming happens and Solve reduces to an ordinary
// least squares fit over all points.
//
// Results are deterministic: identical inputs, alpha, and seed yield
// bit-identical results, regardless of the worker count.
package lts
