package core

import "math/rand/v2"

// Source is the random stream consumed by probabilistic ignition rules.
// *rand.Rand and *RNG both satisfy it.
type Source interface {
	Float64() float64
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Bernoulli reports true with probability p.
func (r *RNG) Bernoulli(p float64) bool {
	return Bernoulli(r, p)
}

// Bernoulli draws exactly one value from src and reports whether it fell
// below p. p <= 0 never succeeds and p >= 1 always does, but a value is still
// consumed so the stream position does not depend on p.
func Bernoulli(src Source, p float64) bool {
	return src.Float64() < p
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
