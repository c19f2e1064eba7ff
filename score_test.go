package unsupseg

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/hupe1980/unsupseg/embed"
	"github.com/hupe1980/unsupseg/framebatch"
	"github.com/hupe1980/unsupseg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	src := reader(singleFrames(
		[]float64{3, 0},
		[]float64{0, 2},
		[]float64{0, 0},
		[]float64{1, 1},
	))
	var report bytes.Buffer

	scores, err := Score(context.Background(), src, firstFrame{dim: 2}, [][]float64{{1, 0}}, WithReport(&report))
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.InDelta(t, 1.0, scores[0], 1e-12)
	assert.InDelta(t, 0.0, scores[1], 1e-12)
	assert.InDelta(t, 1/math.Sqrt2, scores[2], 1e-12)
	assert.Equal(t, "dist: 1\ndist: 0\n", report.String()[:len("dist: 1\ndist: 0\n")])
}

func TestScore_DegenerateTargetIsFatal(t *testing.T) {
	_, err := Score(context.Background(), reader(nil), firstFrame{dim: 2}, [][]float64{{0, 0}})
	assert.ErrorIs(t, err, ErrDegenerateNorm)
}

func TestScore_ConvEmbedding(t *testing.T) {
	rng := testutil.NewRNG(9)
	bank := filterBank(t, rng, 4, 2, 2)
	target := rng.Segment(6, 3)
	src := reader([]framebatch.Segment{{Header: "0.logmel", Frames: target}})

	scores, err := Score(context.Background(), src, embed.NewConv(bank), target)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.InDelta(t, 1.0, scores[0], 1e-9)
}

func TestDistances(t *testing.T) {
	src := reader([]framebatch.Segment{
		{Header: "0.logmel", Frames: [][]float64{{0}, {1}}},
		{Header: "1.logmel", Frames: [][]float64{{0}, {2}}},
		{Header: "2.logmel"},
		{Header: "3.logmel", Frames: [][]float64{{0, 0}}},
	})
	var report bytes.Buffer
	metrics := &BasicMetricsCollector{}

	dists, err := Distances(context.Background(), src, embed.DTWOracle{}, [][]float64{{0}, {1}},
		WithReport(&report), WithMetricsCollector(metrics))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, dists)
	assert.Equal(t, "dist: 0\ndist: 1\n", report.String())
	assert.Equal(t, int64(2), metrics.GetStats().SampleSkipped)

	normalized, err := Distances(context.Background(),
		reader([]framebatch.Segment{{Header: "0.logmel", Frames: [][]float64{{0}, {2}}}}),
		embed.DTWOracle{NormalizeByTarget: true}, [][]float64{{0}, {1}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, normalized)

	_, err = Distances(context.Background(), reader(nil), embed.DTWOracle{}, nil)
	assert.ErrorIs(t, err, ErrEmptySequence)
}
