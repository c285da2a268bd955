package lts

import (
	"math"
	"sync"
)

// Solve estimates the slowness vector of the dominant plane wave from
// the co-array design matrix x (one row per sensor pair, p columns)
// and the travel-time differences y, trimming up to a fraction
// 1 - alpha of the observations as outliers. alpha must lie in
// [0.5, 1.0]; alpha = 1 disables trimming and reduces to ordinary
// least squares.
//
// The inputs are never modified. Identical inputs, alpha, and options
// produce bit-identical results.
func Solve(x [][]float64, y []float64, alpha float64, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts...)

	ws, err := newWorkset(x, y, alpha)
	if err != nil {
		return nil, err
	}

	if alpha == 1 {
		return ws.solveOLS(cfg)
	}

	candidates, err := ws.coarseSearch(cfg)
	if err != nil {
		return nil, err
	}

	best := ws.finalSearch(candidates, cfg)
	ws.destandardize(best.coeffs)
	objective := best.obj * ws.sy * ws.sy

	return ws.finish(best.coeffs, objective, cfg)
}

// coarseSearch runs the randomized elemental-subset trials and pools
// the best local optima. Trials are independent: trial t draws from
// the stream seeded with Seed+t and its result is inserted into the
// pool in trial order, so the pool content does not depend on the
// worker count.
func (ws *workset) coarseSearch(cfg Config) (*pool, error) {
	results := make([]candidate, cfg.Trials)
	errs := make([]error, cfg.Trials)

	workers := cfg.Workers
	if workers > cfg.Trials {
		workers = cfg.Trials
	}

	run := func(lo, hi int) {
		for t := lo; t < hi; t++ {
			s := newSampler(cfg.Seed+int64(t), ws.n, ws.p)
			z, err := ws.initial(s, cfg.SubsetRetries)
			if err != nil {
				// Any sampling failure aborts the whole call; no point
				// burning the retry budget of the remaining trials.
				errs[t] = err
				return
			}
			coeffs, obj := ws.refine(z, cfg.CoarseCSteps)
			results[t] = candidate{obj: obj, coeffs: coeffs}
		}
	}

	if workers <= 1 {
		run(0, cfg.Trials)
	} else {
		var wg sync.WaitGroup
		chunk := (cfg.Trials + workers - 1) / workers
		for lo := 0; lo < cfg.Trials; lo += chunk {
			hi := lo + chunk
			if hi > cfg.Trials {
				hi = cfg.Trials
			}
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				run(lo, hi)
			}(lo, hi)
		}
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	p := newPool()
	for _, c := range results {
		p.insert(c)
	}

	return p, nil
}

// finalSearch concentrates every pooled candidate to convergence and
// returns the one with the lowest trimmed objective. The concentration
// budget shrinks with the problem size; very large problems refine the
// best pooled candidate only.
func (ws *workset) finalSearch(candidates *pool, cfg Config) candidate {
	steps := finalCSteps(cfg.FinalCSteps, ws.n, ws.p)

	pooled := candidates.cand
	if ws.n > 5000 {
		pooled = pooled[:1]
	}

	best := candidate{obj: math.Inf(1)}
	for _, c := range pooled {
		coeffs, obj := ws.refine(c.coeffs, steps)
		if obj < best.obj {
			best = candidate{obj: obj, coeffs: coeffs}
		}
	}

	return best
}
