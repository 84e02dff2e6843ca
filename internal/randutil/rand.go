// Package randutil centralises how seeded random sources are constructed so
// that every shuffle in the engine is reproducible from a single int64 seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// rand/v2's PCG wants two 64-bit seeds; we derive both from the one value so
// call sites get reproducible sequences without inventing their own scheme.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// TimeSeed returns a seed suitable for production use where reproducibility
// is not wanted. Kept separate from New so tests never reach for it.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}

// mix is a splitmix64-style finalizer. It spreads low-entropy seeds (small
// integers, timestamps) across the full 64-bit space.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
