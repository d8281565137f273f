package oracle

import (
	"math/rand"
	"time"
)

// Randomizer is the random source used for draws, states and shuffles.
// *rand.Rand satisfies it.
type Randomizer interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a seeded Randomizer. A zero seed uses the current time.
func NewRand(seed int64) Randomizer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// globalRand delegates to the math/rand top-level source.
type globalRand struct{}

func (globalRand) Intn(n int) int                      { return rand.Intn(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

func orGlobal(r Randomizer) Randomizer {
	if r == nil {
		return globalRand{}
	}
	return r
}
