package lts

// poolSize bounds the number of local optima kept between the coarse
// and final search phases.
const poolSize = 10

type candidate struct {
	obj    float64
	coeffs []float64
}

// pool is a bounded set of the best candidates found so far, sorted
// ascending by objective. Inserting a candidate better than the current
// worst evicts the worst; a candidate whose objective equals an
// existing entry is not reinserted.
type pool struct {
	cand []candidate
}

func newPool() *pool {
	return &pool{cand: make([]candidate, 0, poolSize)}
}

// insert offers a candidate to the pool and reports whether it was
// kept.
func (p *pool) insert(c candidate) bool {
	for _, e := range p.cand {
		if e.obj == c.obj {
			return false
		}
	}

	if len(p.cand) == poolSize && c.obj >= p.cand[poolSize-1].obj {
		return false
	}

	pos := len(p.cand)
	for i, e := range p.cand {
		if c.obj < e.obj {
			pos = i
			break
		}
	}

	if len(p.cand) < poolSize {
		p.cand = append(p.cand, candidate{})
	}
	copy(p.cand[pos+1:], p.cand[pos:])
	p.cand[pos] = c

	return true
}

// best returns the lowest-objective candidate, or false on an empty
// pool.
func (p *pool) best() (candidate, bool) {
	if len(p.cand) == 0 {
		return candidate{}, false
	}
	return p.cand[0], true
}
