package rain

import "math/rand/v2"

// Rand is the seedable source behind every draw the simulation makes:
// codepoints, spawn decisions, columns, lengths, intervals, mutation.
type Rand struct {
	rng *rand.Rand
}

// NewRand returns a source seeded from seed. A zero seed picks a random one.
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Rand{rng: rand.New(rand.NewPCG(seed, seed))}
}

// UniformInt returns a uniform integer in [min, max] inclusive.
func (r *Rand) UniformInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.IntN(max-min+1)
}

// Bernoulli reports true with probability p.
func (r *Rand) Bernoulli(p float64) bool {
	return r.rng.Float64() < p
}
