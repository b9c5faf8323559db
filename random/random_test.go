package random

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draws(t *testing.T, g *Generator, n int) []int {
	t.Helper()
	out := make([]int, n)
	for i := range out {
		v, err := g.Between(1, 1000)
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func TestDeterministicForSeed(t *testing.T) {
	a := draws(t, New(7), 20)
	b := draws(t, New(7), 20)
	c := draws(t, New(8), 20)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestReseed(t *testing.T) {
	g := New(99)
	first := draws(t, g, 10)
	_ = draws(t, g, 5)

	g.Reseed(99)
	assert.Equal(t, first, draws(t, g, 10))
}

func TestBetween(t *testing.T) {
	g := New(1)

	for i := 0; i < 1000; i++ {
		v, err := g.Between(-3, 3)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, -3)
		assert.LessOrEqual(t, v, 3)
	}

	v, err := g.Between(5, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	_, err = g.Between(2, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = g.Between(math.MinInt, math.MaxInt)
	assert.NoError(t, err)
}

func TestWeightedIndex(t *testing.T) {
	g := New(3)

	_, err := g.WeightedIndex(nil)
	assert.ErrorIs(t, err, ErrNoWeights)

	idx, err := g.WeightedIndex([]int{0})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = g.WeightedIndex([]int{1, -1})
	assert.ErrorIs(t, err, ErrInvalidWeights)

	_, err = g.WeightedIndex([]int{0, 0})
	assert.ErrorIs(t, err, ErrInvalidWeights)

	_, err = g.WeightedIndex([]int{math.MaxInt, 1})
	assert.ErrorIs(t, err, ErrInvalidWeights)

	_, err = g.WeightedIndex([]int{math.MaxInt / 2, math.MaxInt / 2, math.MaxInt / 2})
	assert.ErrorIs(t, err, ErrInvalidWeights)

	idx, err = g.WeightedIndex([]int{0, math.MaxInt})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	for i := 0; i < 200; i++ {
		idx, err := g.WeightedIndex([]int{0, 5, 0})
		require.NoError(t, err)
		assert.Equal(t, 1, idx)
	}
}

func TestWeightedIndexDistribution(t *testing.T) {
	g := New(11)
	counts := make([]int, 3)

	const n = 30000
	for i := 0; i < n; i++ {
		idx, err := g.WeightedIndex([]int{1, 2, 7})
		require.NoError(t, err)
		counts[idx]++
	}

	assert.InDelta(t, 0.1, float64(counts[0])/n, 0.02)
	assert.InDelta(t, 0.2, float64(counts[1])/n, 0.02)
	assert.InDelta(t, 0.7, float64(counts[2])/n, 0.02)
}

func TestGeneratorsPerGoroutine(t *testing.T) {
	want := draws(t, New(5), 50)

	var wg sync.WaitGroup
	results := make([][]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g := New(5)
			out := make([]int, 50)
			for j := range out {
				out[j], _ = g.Between(1, 1000)
			}
			results[i] = out
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want, r)
	}
}

func TestNewFromEntropy(t *testing.T) {
	g, err := NewFromEntropy()
	require.NoError(t, err)

	v, err := g.Between(1, 6)
	require.NoError(t, err)
	assert.True(t, v >= 1 && v <= 6)
}
