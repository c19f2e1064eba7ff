package testutil

import (
	"testing"

	"github.com/hupe1980/unsupseg/distance"
	"github.com/hupe1980/unsupseg/framebatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegments(t *testing.T) {
	rng := NewRNG(4711)

	segs := rng.Segments(10, 3, 6, 4)
	require.Len(t, segs, 10)
	for _, s := range segs {
		assert.GreaterOrEqual(t, s.Len(), 3)
		assert.LessOrEqual(t, s.Len(), 6)
		assert.Len(t, s.Frames[0], 4)
	}
	assert.Equal(t, "0.logmel", segs[0].Header)
}

func TestFilterBank(t *testing.T) {
	rng := NewRNG(4711)

	bank := rng.FilterBank(3, 2, 5)
	require.Len(t, bank, 3)
	assert.Len(t, bank[0], 2)
	assert.Len(t, bank[0][0], 5)
}

func TestUnitVector(t *testing.T) {
	rng := NewRNG(4711)
	assert.InDelta(t, 1.0, distance.Norm(rng.UnitVector(16)), 1e-12)
}

func TestClusteredVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.ClusteredVectors(100, 8, 5, 0.1)
	assert.Len(t, v, 100)
	assert.Len(t, v[0], 8)
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.Matrix(2, 3)
	rng.Reset()
	b := rng.Matrix(2, 3)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestWriteBatch(t *testing.T) {
	rng := NewRNG(1)
	segs := rng.Segments(3, 2, 4, 3)

	path := WriteBatch(t, t.TempDir(), "batch", segs)

	got, err := framebatch.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, segs, got)
}
