package sim

import "math/rand/v2"

// Rand is a seeded uniform source for brains and patrol sampling.
// Not safe for concurrent use.
type Rand struct {
	r *rand.Rand
}

// NewRand creates a PCG source; equal seeds give equal sequences.
func NewRand(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Range returns a uniform value in [min, max).
func (r *Rand) Range(min, max float64) float64 {
	return min + r.r.Float64()*(max-min)
}
