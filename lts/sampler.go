package lts

import "math/rand"

// sampler draws elemental subsets of p distinct observation indices
// from its own pseudo-random stream. Each coarse trial owns one
// sampler, seeded from the base seed plus the trial number, so draws
// never share mutable state across trials.
type sampler struct {
	rng  *rand.Rand
	n, p int
	idx  []int
}

func newSampler(seed int64, n, p int) *sampler {
	return &sampler{
		rng: rand.New(rand.NewSource(seed)),
		n:   n,
		p:   p,
		idx: make([]int, n),
	}
}

// draw fills buf with p distinct indices via a partial Fisher-Yates
// shuffle.
func (s *sampler) draw(buf []int) {
	for i := range s.idx {
		s.idx[i] = i
	}
	for i := 0; i < s.p; i++ {
		j := i + s.rng.Intn(s.n-i)
		s.idx[i], s.idx[j] = s.idx[j], s.idx[i]
	}
	copy(buf, s.idx[:s.p])
}

// initial draws elemental subsets until one admits an exact solution,
// bounded by the retry budget. The exact fit on the p selected points
// seeds the concentration steps.
func (ws *workset) initial(s *sampler, retries int) ([]float64, error) {
	buf := make([]int, ws.p)
	for attempt := 0; attempt < retries; attempt++ {
		s.draw(buf)
		z, err := ws.lsFit(buf)
		if err == nil {
			return z, nil
		}
	}

	return nil, ErrSingularSubset
}
