package lts

import "errors"

var (
	// ErrDimensionMismatch indicates X and y disagree on the number of
	// observations, or X has ragged rows.
	ErrDimensionMismatch = errors.New("lts: X and y dimensions are incompatible")
	// ErrTooFewRows indicates n <= 2p, too few observations for a
	// meaningful trimmed fit.
	ErrTooFewRows = errors.New("lts: need more than 2p observations")
	// ErrAlphaRange indicates a trimming fraction outside [0.5, 1.0].
	ErrAlphaRange = errors.New("lts: alpha must be in [0.5, 1.0]")
	// ErrDegenerateColumn indicates a column of X (or y) whose robust
	// scale is numerically zero even after the mean-deviation fallback,
	// so the data cannot be standardized.
	ErrDegenerateColumn = errors.New("lts: column has zero robust scale")
	// ErrSingularSubset indicates that no full-rank elemental subset
	// could be drawn within the retry budget; the design matrix is
	// (numerically) rank deficient.
	ErrSingularSubset = errors.New("lts: could not draw a non-singular elemental subset")
	// ErrTooFewInliers indicates fewer than two observations survived
	// the reweighting step.
	ErrTooFewInliers = errors.New("lts: fewer than two inliers after reweighting")
)
