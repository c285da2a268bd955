package lts

import (
	"math"
	"testing"
)

func TestConsistencyFactor(t *testing.T) {
	if got := consistencyFactor(20, 20); got != 1 {
		t.Errorf("full coverage factor %v, want 1", got)
	}

	// Trimming drops the largest squared residuals, so the correction
	// must blow the scale back up.
	prev := 1.0
	for _, h := range []int{18, 15, 12, 10} {
		got := consistencyFactor(h, 20)
		if got <= prev {
			t.Errorf("consistencyFactor(%d, 20) = %v, want > %v", h, got, prev)
		}
		prev = got
	}

	// Half trimming on standard Gaussian data corresponds to the known
	// asymptotic factor around 2.1-2.7 for moderate n.
	got := consistencyFactor(10, 20)
	if got < 1.5 || got > 3.5 {
		t.Errorf("half-trim consistency factor %v out of plausible range", got)
	}
}

func TestCorrectionFactors_Positive(t *testing.T) {
	for _, p := range []int{1, 2, 3} {
		for _, n := range []int{10, 15, 45, 100} {
			for _, alpha := range []float64{0.5, 0.75, 0.875, 0.95} {
				for _, intercept := range []bool{false, true} {
					raw := rawCorrectionFactor(p, intercept, n, alpha)
					rew := rewCorrectionFactor(p, intercept, n, alpha)
					if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
						t.Errorf("raw factor (p=%d n=%d alpha=%v int=%v) = %v", p, n, alpha, intercept, raw)
					}
					if rew <= 0 || math.IsNaN(rew) || math.IsInf(rew, 0) {
						t.Errorf("rew factor (p=%d n=%d alpha=%v int=%v) = %v", p, n, alpha, intercept, rew)
					}
				}
			}
		}
	}
}

func TestCorrectionFactors_ApproachOneAtFullCoverage(t *testing.T) {
	for _, p := range []int{1, 2} {
		raw := rawCorrectionFactor(p, false, 50, 1.0)
		rew := rewCorrectionFactor(p, false, 50, 1.0)
		if !almostEqual(raw, 1, 1e-12) {
			t.Errorf("raw factor at alpha=1 (p=%d) = %v, want 1", p, raw)
		}
		if !almostEqual(rew, 1, 1e-12) {
			t.Errorf("rew factor at alpha=1 (p=%d) = %v, want 1", p, rew)
		}
	}
}

func TestCorrectionFactors_ShrinkWithN(t *testing.T) {
	// The finite-sample correction fades as n grows.
	small := rawCorrectionFactor(2, false, 10, 0.5)
	large := rawCorrectionFactor(2, false, 1000, 0.5)
	if math.Abs(large-1) > math.Abs(small-1) {
		t.Errorf("correction stronger at n=1000 (%v) than n=10 (%v)", large, small)
	}
	if !almostEqual(large, 1, 0.05) {
		t.Errorf("large-n raw correction %v, want near 1", large)
	}
}
