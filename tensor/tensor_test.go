package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tt, err := New(Shape{Time: 2, Feature: 3, Channel: 4})
	require.NoError(t, err)
	assert.Len(t, tt.Data(), 24)

	for _, s := range []Shape{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}, {-1, 2, 2}} {
		_, err := New(s)
		assert.ErrorIs(t, err, ErrShape, "shape %v", s)
	}
}

func TestFromFrames(t *testing.T) {
	frames := [][]float64{{1, 2, 3}, {4, 5, 6}}
	tt, err := FromFrames(frames)
	require.NoError(t, err)
	assert.Equal(t, Shape{Time: 2, Feature: 3, Channel: 1}, tt.Shape())
	assert.Equal(t, 6.0, tt.At(1, 2, 0))
	assert.Equal(t, frames, tt.Frames(0))
}

func TestFromFrames_Errors(t *testing.T) {
	tests := []struct {
		name   string
		frames [][]float64
	}{
		{"Empty", nil},
		{"EmptyFrame", [][]float64{{}}},
		{"Ragged", [][]float64{{1, 2}, {3}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromFrames(tc.frames)
			var se *ShapeError
			require.ErrorAs(t, err, &se)
			assert.ErrorIs(t, err, ErrShape)
		})
	}
}

func TestFromFilterBank(t *testing.T) {
	bank := [][][]float64{
		{{1, 2}, {3, 4}},
		{{5, 6}, {7, 8}},
		{{9, 10}, {11, 12}},
	}
	tt, err := FromFilterBank(bank)
	require.NoError(t, err)
	assert.Equal(t, Shape{Time: 2, Feature: 2, Channel: 3}, tt.Shape())

	for c, f := range bank {
		for i, row := range f {
			for j, v := range row {
				assert.Equal(t, v, tt.At(i, j, c))
			}
		}
	}
	assert.Equal(t, []float64{5, 6, 7, 8}, tt.Channel(1))
	assert.Equal(t, []float64{1 + 4 + 9 + 16, 25 + 36 + 49 + 64, 81 + 100 + 121 + 144}, tt.ChannelEnergy())
}

func TestFromFilterBank_Mismatch(t *testing.T) {
	_, err := FromFilterBank(nil)
	assert.ErrorIs(t, err, ErrShape)

	_, err = FromFilterBank([][][]float64{
		{{1, 2}, {3, 4}},
		{{1, 2, 3}, {4, 5, 6}},
	})
	assert.ErrorIs(t, err, ErrShape)

	_, err = FromFilterBank([][][]float64{
		{{1, 2}, {3, 4}},
		{{1, 2}},
	})
	assert.ErrorIs(t, err, ErrShape)
}

func TestSetChannel(t *testing.T) {
	tt, err := New(Shape{Time: 2, Feature: 2, Channel: 2})
	require.NoError(t, err)

	require.NoError(t, tt.SetChannel(1, []float64{1, 2, 3, 4}))
	assert.Equal(t, []float64{0, 0, 0, 0}, tt.Channel(0))
	assert.Equal(t, []float64{1, 2, 3, 4}, tt.Channel(1))
	assert.Equal(t, 3.0, tt.At(1, 0, 1))

	assert.ErrorIs(t, tt.SetChannel(0, []float64{1}), ErrShape)

	clone := tt.Clone()
	clone.Set(0, 0, 1, 42)
	assert.Equal(t, 1.0, tt.At(0, 0, 1))
}

func TestLinearize(t *testing.T) {
	in, err := FromFrames([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	require.NoError(t, err)

	p, err := Linearize(in, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.OutTime)
	assert.Equal(t, 2, p.OutFeature)
	assert.Equal(t, 4, p.Width)
	assert.Equal(t, 4, p.Rows())

	assert.Equal(t, []float64{1, 2, 4, 5}, p.Row(0))
	assert.Equal(t, []float64{2, 3, 5, 6}, p.Row(1))
	assert.Equal(t, []float64{4, 5, 7, 8}, p.Row(2))
	assert.Equal(t, []float64{5, 6, 8, 9}, p.Row(3))

	i, j := p.Position(3)
	assert.Equal(t, 1, i)
	assert.Equal(t, 1, j)

	assert.Equal(t, []float64{46, 74, 154, 206}, p.Energy())
}

func TestLinearize_TooSmall(t *testing.T) {
	in, err := FromFrames([][]float64{{1, 2, 3}})
	require.NoError(t, err)

	_, err = Linearize(in, 2, 2)
	assert.ErrorIs(t, err, ErrShape)

	_, err = Linearize(in, 1, 4)
	assert.ErrorIs(t, err, ErrShape)

	p, err := Linearize(in, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Rows())
}

func TestCorrelate(t *testing.T) {
	in, err := FromFrames([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	require.NoError(t, err)

	bank, err := FromFilterBank([][][]float64{
		{{1, 0}, {0, 0}},
		{{0, 0}, {0, 1}},
		{{1, 1}, {1, 1}},
	})
	require.NoError(t, err)

	p, err := Linearize(in, 2, 2)
	require.NoError(t, err)

	scores, err := Correlate(p, bank)
	require.NoError(t, err)
	require.Len(t, scores, 4*3)

	// Row r holds the three filter responses at position r.
	assert.Equal(t, []float64{1, 5, 12}, scores[0:3])
	assert.Equal(t, []float64{2, 6, 16}, scores[3:6])
	assert.Equal(t, []float64{4, 8, 24}, scores[6:9])
	assert.Equal(t, []float64{5, 9, 28}, scores[9:12])
}

func TestCorrelate_WidthMismatch(t *testing.T) {
	in, err := FromFrames([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	p, err := Linearize(in, 1, 1)
	require.NoError(t, err)

	bank, err := FromFilterBank([][][]float64{{{1, 1}}})
	require.NoError(t, err)

	_, err = Correlate(p, bank)
	assert.ErrorIs(t, err, ErrShape)
}
