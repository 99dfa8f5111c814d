// Package random provides the injectable randomness used by every engine.
//
// All stochastic decisions go through a Source so a fixed seed reproduces a
// whole season. Production seeds come from crypto/rand via NewSeed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Source is the subset of *rand.Rand the simulator depends on.
type Source interface {
	Float64() float64
	Intn(n int) int
	Int63() int64
	NormFloat64() float64
}

// NewSeeded returns a deterministic source for the seed.
func NewSeeded(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Reseed restarts src from seed in place, so every engine holding src
// follows the new stream. It reports false for sources that cannot be
// reseeded.
func Reseed(src Source, seed int64) bool {
	r, ok := src.(interface{ Seed(int64) })
	if !ok {
		return false
	}
	r.Seed(seed)
	return true
}

// Derive draws a child seed from src and returns an independent source.
// Draw order determines the child, so callers derive serially.
func Derive(src Source) Source {
	return NewSeeded(src.Int63())
}

// Chance reports true with probability p.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Between returns an int in [lo, hi].
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Normal samples N(mean, stddev).
func Normal(src Source, mean, stddev float64) float64 {
	return mean + src.NormFloat64()*stddev
}

// StochasticRound rounds v down or up with probability equal to its fraction,
// so small multiplicative drifts still move integer values on average.
func StochasticRound(src Source, v float64) int {
	floor := math.Floor(v)
	if src.Float64() < v-floor {
		return int(floor) + 1
	}
	return int(floor)
}

// Pick returns a uniformly chosen element, or the zero value for an empty slice.
func Pick[T any](src Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[src.Intn(len(items))]
}

// UUID returns a v4 UUID drawn from src so identifiers are reproducible.
func UUID(src Source) string {
	id, err := uuid.NewRandomFromReader(reader{src: src})
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type reader struct {
	src Source
}

func (r reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.src.Int63())
	}
	return len(p), nil
}
