package lts

import (
	"math"
	"sort"
)

// trim fills dst with the indices of the h smallest absolute residuals.
// Ties break on the observation index so the selection is deterministic.
func trim(dst []int, r []float64, h int) {
	idx := make([]int, len(r))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		ra, rb := math.Abs(r[idx[a]]), math.Abs(r[idx[b]])
		if ra == rb {
			return idx[a] < idx[b]
		}
		return ra < rb
	})
	copy(dst, idx[:h])
}

// trimmedObjective returns the sum of the h smallest squared residuals.
func trimmedObjective(r []float64, h int) float64 {
	abs := make([]float64, len(r))
	for i, v := range r {
		abs[i] = math.Abs(v)
	}
	sort.Float64s(abs)

	var sum float64
	for _, v := range abs[:h] {
		sum += v * v
	}

	return sum
}

// refine runs concentration steps from the given start: select the h
// observations of smallest absolute residual, refit least squares on
// them, repeat. Each step can only lower the trimmed objective, so the
// loop stops as soon as the objective stops strictly decreasing, or at
// the step cap. It returns the best coefficients seen and their
// objective.
func (ws *workset) refine(z []float64, steps int) ([]float64, float64) {
	r := make([]float64, ws.n)
	subset := make([]int, ws.h)

	ws.residuals(r, z)
	best := z
	bestObj := math.Inf(1)
	prevObj := math.Inf(1)

	for step := 0; step < steps; step++ {
		trim(subset, r, ws.h)
		znew, err := ws.lsFit(subset)
		if err != nil {
			// The trimmed subset went singular; keep the current fit.
			break
		}

		ws.residuals(r, znew)
		obj := trimmedObjective(r, ws.h)

		if obj < bestObj {
			best = znew
			bestObj = obj
		}
		if step >= 1 && obj >= prevObj {
			break
		}
		prevObj = obj
	}

	if math.IsInf(bestObj, 1) {
		// No step completed; score the start itself.
		ws.residuals(r, z)
		bestObj = trimmedObjective(r, ws.h)
		best = z
	}

	return best, bestObj
}

// finalCSteps returns the concentration budget for the final
// refinement, shortened as the problem grows.
func finalCSteps(limit, n, p int) int {
	np := float64(n) * float64(p)
	switch {
	case np <= 1e5:
		return limit
	case np <= 1e6:
		return 10 - (int(math.Ceil(np/1e5)) - 2)
	default:
		return 1
	}
}
