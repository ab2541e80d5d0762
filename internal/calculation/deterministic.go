package calculation

import (
	"math/rand"
	"time"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// seedFunc returns a pseudo-random seed (override for deterministic Monte Carlo tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// RandomSource yields uniform draws in [0, 1).
type RandomSource interface {
	Float64() float64
}

// SourceFactory builds an independent random source for one stream of draws.
type SourceFactory func(seed int64) RandomSource

// NewMathRandSource is the default SourceFactory. Each stream gets its own *rand.Rand,
// so no source is shared between goroutines.
func NewMathRandSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}
