package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loto/internal/rng"
)

func TestPoolStartsFull(t *testing.T) {
	p := NewPool()
	assert.Equal(t, 90, p.Len())
	assert.False(t, p.Empty())
	assert.False(t, p.Contains(0))
	assert.False(t, p.Contains(91))
	assert.True(t, p.Contains(1))
	assert.True(t, p.Contains(90))
}

func TestPoolRemove(t *testing.T) {
	p := NewPool()
	require.True(t, p.Remove(45))
	assert.False(t, p.Remove(45), "second removal must fail")
	assert.False(t, p.Remove(0))
	assert.False(t, p.Contains(45))
	assert.Equal(t, 89, p.Len())

	for n := 1; n <= 90; n++ {
		p.Remove(n)
	}
	assert.True(t, p.Empty())
	assert.Empty(t, p.Numbers())
}

func TestPoolNumbersAscending(t *testing.T) {
	p := NewPool()
	p.Remove(1)
	p.Remove(50)
	got := p.Numbers()
	require.Len(t, got, 88)
	assert.Equal(t, 2, got[0])
	assert.IsIncreasing(t, got)
	assert.NotContains(t, got, 50)
}

func TestSample(t *testing.T) {
	src := rng.NewSeeded(3)
	_, ok := Sample(src, nil)
	assert.False(t, ok)

	candidates := []int{4, 8, 15}
	counts := make(map[int]int)
	for i := 0; i < 300; i++ {
		n, ok := Sample(src, candidates)
		require.True(t, ok)
		counts[n]++
	}
	assert.Len(t, counts, 3)
	for _, c := range candidates {
		assert.Positive(t, counts[c])
	}
}
