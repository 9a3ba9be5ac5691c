package duel

import "math/rand/v2"

// Rand is the single source of randomness used by the engine: topic and
// question draws, computer picks, and computer answer sampling.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewRand returns a deterministic PCG-backed Rand for seed.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// sample picks n distinct elements from pool using a partial
// Fisher-Yates shuffle. pool is not modified.
func sample[T any](rng Rand, pool []T, n int) []T {
	buf := make([]T, len(pool))
	copy(buf, pool)
	n = min(n, len(buf))
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(buf)-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf[:n]
}
