// Package tickrng implements the xorshift32 generator used for all
// per-tick randomness in the engine. Centralizing it keeps RNG
// consumption (and therefore determinism) identical across every
// stage and every left/right tie-break.
package tickrng

// RNG is an xorshift32 generator with 13/17/5 taps.
type RNG struct {
	state uint32
}

// New creates an RNG seeded with the given 32-bit value. A zero seed
// is coerced to 1, since xorshift32 cannot escape the all-zero state.
func New(seed uint32) *RNG {
	if seed == 0 {
		seed = 1
	}
	return &RNG{state: seed}
}

// Next returns the next 32-bit value in the sequence.
func (r *RNG) Next() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float returns the next value mapped to [0, 1].
func (r *RNG) Float() float64 {
	return float64(r.Next()) / float64(0xFFFFFFFF)
}

// Float32 is the float32 counterpart of Float.
func (r *RNG) Float32() float32 {
	return float32(r.Next()) / float32(0xFFFFFFFF)
}

// Range returns a uniformly distributed integer in [a, b], a <= b.
func (r *RNG) Range(a, b int) int {
	if b < a {
		a, b = b, a
	}
	span := uint32(b-a) + 1
	return a + int(r.Next()%span)
}

// Bool consumes one value to produce a uniformly distributed boolean,
// used to break every left/right tie in the stage rules.
func (r *RNG) Bool() bool {
	return r.Next()&1 == 1
}

// Chance reports whether a probabilistic event with probability p
// (clamped to [0, 1]) fires on this draw.
func (r *RNG) Chance(p float32) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float32() < p
}

// State returns the current internal state, for seeding a sub-sequence
// or for tests that need a reproducible snapshot.
func (r *RNG) State() uint32 {
	return r.state
}
