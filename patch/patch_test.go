package patch

import (
	"math"
	"math/rand"
	"slices"
	"sort"
	"testing"

	"github.com/hupe1980/unsupseg/tensor"
	"github.com/hupe1980/unsupseg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bank(t *testing.T, filters [][][]float64) *tensor.Tensor3D {
	t.Helper()
	b, err := tensor.FromFilterBank(filters)
	require.NoError(t, err)
	return b
}

func TestBestMatches(t *testing.T) {
	filters := bank(t, [][][]float64{{{2}}, {{0}}})
	in, err := tensor.FromFrames([][]float64{{5}, {2.5}, {1}})
	require.NoError(t, err)
	p, err := tensor.Linearize(in, 1, 1)
	require.NoError(t, err)

	best, err := BestMatches(p, filters, filters.ChannelEnergy())
	require.NoError(t, err)
	require.Len(t, best, 2)

	assert.Equal(t, 1, best[0].Row)
	assert.Equal(t, 1, best[0].Time)
	assert.InDelta(t, 0.25, best[0].Distance, 1e-12)

	assert.Equal(t, 2, best[1].Row)
	assert.InDelta(t, 1.0, best[1].Distance, 1e-12)

	_, err = BestMatches(p, filters, []float64{1})
	assert.ErrorIs(t, err, tensor.ErrShape)
}

func TestBestMatches_TieKeepsFirst(t *testing.T) {
	filters := bank(t, [][][]float64{{{2}}})
	in, err := tensor.FromFrames([][]float64{{1, 3}})
	require.NoError(t, err)
	p, err := tensor.Linearize(in, 1, 1)
	require.NoError(t, err)

	best, err := BestMatches(p, filters, filters.ChannelEnergy())
	require.NoError(t, err)
	assert.Equal(t, 0, best[0].Row)
	assert.Equal(t, 0, best[0].Feature)
}

func TestBestMatches_AgreesWithDirectDistance(t *testing.T) {
	rng := testutil.NewRNG(7)
	raw := rng.FilterBank(3, 2, 3)
	filters := bank(t, raw)

	in, err := tensor.FromFrames(rng.Segment(9, 6))
	require.NoError(t, err)
	p, err := tensor.Linearize(in, 2, 3)
	require.NoError(t, err)

	best, err := BestMatches(p, filters, filters.ChannelEnergy())
	require.NoError(t, err)

	for c := range raw {
		f := filters.Channel(c)
		want := math.Inf(1)
		for r := 0; r < p.Rows(); r++ {
			var d float64
			for k, v := range p.Row(r) {
				d += (v - f[k]) * (v - f[k])
			}
			want = math.Min(want, d)
		}
		assert.InDelta(t, want, best[c].Distance, 1e-9)
	}
}

func TestSelector_RetainsThirtySmallest(t *testing.T) {
	filters := bank(t, [][][]float64{{{0, 0}}})
	sel := NewSelector(filters, DefaultK)
	assert.Equal(t, 30, sel.K())

	order := rand.New(rand.NewSource(3)).Perm(50)
	for _, i := range order {
		x := float64(i)
		m, err := sel.Observe([][]float64{{x, 0.5 * x}})
		require.NoError(t, err)
		assert.InDelta(t, 1.25*x*x, m[0].Distance, 1e-9)
	}
	assert.Equal(t, 50, sel.Samples())
	assert.Equal(t, 30, sel.Retained())

	res, err := sel.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []int{30}, res.Counts)
	assert.InDeltaSlice(t, []float64{14.5, 7.25}, res.Filters.Channel(0), 1e-12)

	var sumSq float64
	for i := 0; i < 30; i++ {
		sumSq += float64(i * i)
	}
	assert.InDelta(t, 1.25*sumSq/30, res.Loss, 1e-9)

	assert.Equal(t, []float64{0, 0}, filters.Channel(0), "input bank must not change")
	assert.Equal(t, 0, sel.Retained())
}

func TestSelector_EveryChannelGetsItsOwnHeap(t *testing.T) {
	filters := bank(t, [][][]float64{{{0}}, {{10}}})
	sel := NewSelector(filters, 2)

	for _, v := range []float64{1, 2, 9, 11, 30} {
		_, err := sel.Observe([][]float64{{v}})
		require.NoError(t, err)
	}

	res, err := sel.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, res.Counts)
	assert.InDelta(t, 1.5, res.Filters.At(0, 0, 0), 1e-12)
	assert.InDelta(t, 10.0, res.Filters.At(0, 0, 1), 1e-12)
	// distances: ch0 {1, 4}, ch1 {1, 1}
	assert.InDelta(t, 7.0/4, res.Loss, 1e-12)
}

func TestSelector_SkipsSmallSamples(t *testing.T) {
	sel := NewSelector(bank(t, [][][]float64{{{1, 1}, {1, 1}}}), 0)
	assert.Equal(t, DefaultK, sel.K())

	_, err := sel.Observe([][]float64{{1, 2}})
	assert.ErrorIs(t, err, tensor.ErrShape)
	_, err = sel.Observe(nil)
	assert.ErrorIs(t, err, tensor.ErrShape)
	assert.Equal(t, 0, sel.Samples())

	res, err := sel.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Counts)
	assert.Equal(t, 0.0, res.Loss)
	assert.Equal(t, []float64{1, 1, 1, 1}, res.Filters.Channel(0))

	_, err = sel.Finalize()
	assert.ErrorIs(t, err, ErrFinalized)
	_, err = sel.Observe([][]float64{{1, 2}, {3, 4}})
	assert.ErrorIs(t, err, ErrFinalized)
}

func TestMeanDistance(t *testing.T) {
	assert.Equal(t, 0.0, MeanDistance(nil))
	assert.Equal(t, 2.0, MeanDistance([]Match{{Distance: 1}, {Distance: 3}}))
}

func TestThresholdScanner_FortySamples(t *testing.T) {
	filters := bank(t, [][][]float64{{{0}}, {{10}}})
	s := NewThresholdScanner(filters, DefaultK)
	assert.Equal(t, 2, s.Channels())

	values := make([]float64, 40)
	for i, p := range rand.New(rand.NewSource(9)).Perm(40) {
		values[i] = float64(p + 1)
	}
	for _, v := range values {
		_, err := s.Observe([][]float64{{v}})
		require.NoError(t, err)
	}
	require.Equal(t, 40, s.Samples())

	thresholds := s.Thresholds()
	for c, f := range []float64{0, 10} {
		ds := make([]float64, len(values))
		for i, v := range values {
			ds[i] = (v - f) * (v - f)
			assert.InDelta(t, ds[i], s.Distance(i, c), 1e-9)
		}
		sorted := slices.Clone(ds)
		sort.Float64s(sorted)
		assert.InDelta(t, sorted[29], thresholds[c], 1e-9, "channel %d", c)

		members, err := s.Members(c)
		require.NoError(t, err)

		var want []uint32
		for i, d := range ds {
			if d < thresholds[c] {
				want = append(want, uint32(i))
			}
		}
		assert.Equal(t, want, members.ToArray(), "channel %d", c)
	}

	assert.InDelta(t, 900.0, thresholds[0], 1e-9)
	m0, err := s.Members(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(29), m0.GetCardinality())

	_, err = s.Members(2)
	assert.Error(t, err)
}

func TestThresholdScanner_FewerThanK(t *testing.T) {
	s := NewThresholdScanner(bank(t, [][][]float64{{{0}}}), 30)

	_, err := s.Observe([][]float64{{3}})
	require.NoError(t, err)
	_, err = s.Observe(nil)
	assert.ErrorIs(t, err, tensor.ErrShape)
	_, err = s.Observe([][]float64{{1}})
	require.NoError(t, err)
	_, err = s.Observe([][]float64{{2}})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Samples())
	assert.InDelta(t, 9.0, s.Thresholds()[0], 1e-12)

	m, err := s.Members(0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, m.ToArray())
}

func TestThresholdScanner_NoSamples(t *testing.T) {
	s := NewThresholdScanner(bank(t, [][][]float64{{{0}}}), 0)
	assert.True(t, math.IsInf(s.Thresholds()[0], 1))

	m, err := s.Members(0)
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
}
