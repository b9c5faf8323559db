// Package random provides a seedable pseudo-random generator owned by its
// caller. There is no package-level generator: each task creates its own
// Generator, so reseeding and parallel isolation are explicit.
//
// The generator is not cryptographically secure; use crypto/rand for keys
// and tokens.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	mrand "math/rand/v2"
)

// Standard errors for the random package
var (
	ErrInvalidRange   = errors.New("random: end is less than start")
	ErrNoWeights      = errors.New("random: no weights")
	ErrInvalidWeights = errors.New("random: weights must be non-negative with a positive sum")
)

// Generator draws integers from a PCG stream. It is not safe for
// concurrent use.
type Generator struct {
	src *mrand.PCG
	rng *mrand.Rand
}

// New returns a Generator with a deterministic stream for seed.
func New(seed uint64) *Generator {
	src := mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Generator{src: src, rng: mrand.New(src)}
}

// NewFromEntropy returns a Generator seeded from crypto/rand.
func NewFromEntropy() (*Generator, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("random: seed from entropy: %w", err)
	}
	return New(binary.LittleEndian.Uint64(b[:])), nil
}

// Reseed restarts the stream as if the Generator had been created with
// New(seed).
func (g *Generator) Reseed(seed uint64) {
	g.src.Seed(seed, seed^0x9e3779b97f4a7c15)
}

// Between returns a uniformly distributed integer in [start, end].
func (g *Generator) Between(start, end int) (int, error) {
	if end < start {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, start, end)
	}
	span := uint64(end-start) + 1
	if span == 0 {
		return int(g.rng.Uint64()), nil
	}
	return start + int(g.rng.Uint64N(span)), nil
}

// WeightedIndex picks an index with probability proportional to its
// weight. A single weight always yields 0.
func (g *Generator) WeightedIndex(weights []int) (int, error) {
	switch len(weights) {
	case 0:
		return 0, ErrNoWeights
	case 1:
		if weights[0] < 0 {
			return 0, ErrInvalidWeights
		}
		return 0, nil
	}

	prefix := make([]int, len(weights))
	total := 0
	for i, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("%w: weight %d at index %d", ErrInvalidWeights, w, i)
		}
		if total > math.MaxInt-w {
			return 0, fmt.Errorf("%w: sum overflows int at index %d", ErrInvalidWeights, i)
		}
		total += w
		prefix[i] = total
	}
	if total <= 0 {
		return 0, ErrInvalidWeights
	}

	draw, _ := g.Between(1, total)
	for i, p := range prefix {
		if draw <= p {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}
