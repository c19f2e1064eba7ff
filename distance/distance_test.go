package distance

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 32},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Mixed", []float64{1, -1, 2}, []float64{1, 1, -2}, -4},
		{"Empty", []float64{}, []float64{}, 0},
		{"Single", []float64{2}, []float64{3}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Dot(tt.a, tt.b), 1e-12)
		})
	}
}

func TestSquaredL2(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 27},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, 8},
		{"Empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SquaredL2(tt.a, tt.b), 1e-12)
			assert.InDelta(t, math.Sqrt(tt.expected), L2(tt.a, tt.b), 1e-12)
		})
	}
}

func TestNormalizeL2InPlace(t *testing.T) {
	v := []float64{3, 4}
	require.NoError(t, NormalizeL2InPlace(v))
	assert.InDelta(t, 0.6, v[0], 1e-12)
	assert.InDelta(t, 0.8, v[1], 1e-12)
	assert.InDelta(t, 1.0, Norm(v), 1e-12)
}

func TestNormalizeL2InPlace_Idempotent(t *testing.T) {
	v := []float64{0.6, 0, -0.8}
	before := append([]float64(nil), v...)

	require.NoError(t, NormalizeL2InPlace(v))
	assert.InDeltaSlice(t, before, v, 1e-12)

	require.NoError(t, NormalizeL2InPlace(v))
	assert.InDeltaSlice(t, before, v, 1e-12)
}

func TestNormalizeL2InPlace_Degenerate(t *testing.T) {
	v := []float64{0, 0, 0}
	err := NormalizeL2InPlace(v)
	assert.ErrorIs(t, err, ErrDegenerateNorm)
	assert.Equal(t, []float64{0, 0, 0}, v)

	assert.ErrorIs(t, NormalizeL2InPlace(nil), ErrDegenerateNorm)
}

func TestNormalizeL2InPlace_NonFinite(t *testing.T) {
	tests := []struct {
		name string
		v    []float64
	}{
		{"nan component", []float64{math.NaN(), 1}},
		{"positive infinity", []float64{math.Inf(1), 1}},
		{"negative infinity", []float64{math.Inf(-1), math.Inf(-1)}},
		{"overflowing norm", []float64{math.MaxFloat64, math.MaxFloat64}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := slices.Clone(tt.v)
			assert.ErrorIs(t, NormalizeL2InPlace(tt.v), ErrDegenerateNorm)
			for i := range before {
				if math.IsNaN(before[i]) {
					assert.True(t, math.IsNaN(tt.v[i]))
					continue
				}
				assert.Equal(t, before[i], tt.v[i])
			}
		})
	}

	v := []float64{1e200, 1}
	require.NoError(t, NormalizeL2InPlace(v))
	assert.InDelta(t, 1.0, Norm(v), 1e-12)
}

func TestNormalizeL2Copy(t *testing.T) {
	src := []float64{0, 2}
	dst, err := NormalizeL2Copy(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2}, src)
	assert.InDeltaSlice(t, []float64{0, 1}, dst, 1e-12)

	_, err = NormalizeL2Copy([]float64{0})
	assert.ErrorIs(t, err, ErrDegenerateNorm)
}

func TestAddAndScale(t *testing.T) {
	dst := []float64{1, 1}
	AddInPlace(dst, []float64{2, 3})
	assert.Equal(t, []float64{3, 4}, dst)

	ScaleInPlace(dst, 0.5)
	assert.Equal(t, []float64{1.5, 2}, dst)
}
