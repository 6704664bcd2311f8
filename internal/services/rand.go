package services

import (
	"math/rand/v2"

	"goodcents/internal/ledger"
)

// Rand is the random source used by every draw in the engine.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Clock stamps ledger entries.
type Clock = ledger.Clock

// NewRand returns a PCG-backed source. A zero seed draws one at random.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// uniform returns a value in [lo, hi].
func uniform(r Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// RealClock is the wall clock in UTC.
type RealClock = ledger.RealClock
