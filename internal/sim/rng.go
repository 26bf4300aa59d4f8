package sim

import "math/rand"

// Rng is the single deterministic random source for one episode. Every
// run-to-run variation (spawn edges, spawn positions, upgrade offers) draws
// from it in a fixed call order, so identical seeds and action sequences
// replay identical trajectories. Reseeded only on Reset.
type Rng struct {
	src *rand.Rand
}

// NewRng creates a generator seeded with the given value.
func NewRng(seed uint64) *Rng {
	return &Rng{src: rand.New(rand.NewSource(int64(seed)))}
}

// Reseed restarts the stream from the given seed.
func (r *Rng) Reseed(seed uint64) {
	r.src = rand.New(rand.NewSource(int64(seed)))
}

// Float returns a uniform float64 in [lo, hi).
func (r *Rng) Float(lo, hi float64) float64 {
	return lo + r.src.Float64()*(hi-lo)
}

// IntN returns a uniform int in [lo, hi] inclusive.
func (r *Rng) IntN(lo, hi int) int {
	return lo + r.src.Intn(hi-lo+1)
}
