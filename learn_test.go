package unsupseg

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/unsupseg/framebatch"
	"github.com/hupe1980/unsupseg/patch"
	"github.com/hupe1980/unsupseg/persistence"
	"github.com/hupe1980/unsupseg/tensor"
	"github.com/hupe1980/unsupseg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterBank(t *testing.T, rng *testutil.RNG, c, hf, wf int) *tensor.Tensor3D {
	t.Helper()
	bank, err := tensor.FromFilterBank(rng.FilterBank(c, hf, wf))
	require.NoError(t, err)
	return bank
}

// accepted returns the segments at least hf frames long.
func accepted(segs []framebatch.Segment, hf int) []framebatch.Segment {
	var out []framebatch.Segment
	for _, s := range segs {
		if s.Len() >= hf {
			out = append(out, s)
		}
	}
	return out
}

func TestLearnFilters(t *testing.T) {
	rng := testutil.NewRNG(21)
	segs := rng.Segments(40, 1, 6, 3)
	filters := filterBank(t, rng, 2, 2, 2)
	original := filters.Clone()
	out := filepath.Join(t.TempDir(), "param")
	var report bytes.Buffer

	res, err := LearnFilters(context.Background(), reader(segs), filters, LearnConfig{K: 5, OutputParam: out},
		WithReport(&report))
	require.NoError(t, err)
	assert.Equal(t, original.Data(), filters.Data())

	// Same pass driven directly through the selector.
	sel := patch.NewSelector(original, 5)
	var losses []float64
	for _, s := range accepted(segs, 2) {
		best, err := sel.Observe(s.Frames)
		require.NoError(t, err)
		losses = append(losses, patch.MeanDistance(best))
	}
	want, err := sel.Finalize()
	require.NoError(t, err)

	assert.Equal(t, want.Filters.Data(), res.Filters.Data())
	assert.Equal(t, want.Counts, res.Counts)
	assert.InDelta(t, want.Loss, res.Loss, 1e-12)

	var expected strings.Builder
	for n, l := range losses {
		fmt.Fprintf(&expected, "sample: %d\nloss: %g\n\n", n, l)
	}
	fmt.Fprintf(&expected, "loss: %g\n", want.Loss)
	assert.Equal(t, expected.String(), report.String())

	saved, err := persistence.LoadParam(out)
	require.NoError(t, err)
	assert.Equal(t, res.Filters.Shape(), saved.Shape())
	assert.Equal(t, res.Filters.Data(), saved.Data())
}

func TestLearnFilters_RequiresOutput(t *testing.T) {
	rng := testutil.NewRNG(1)
	_, err := LearnFilters(context.Background(), reader(nil), filterBank(t, rng, 1, 1, 1), LearnConfig{})
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestSelectMembers(t *testing.T) {
	rng := testutil.NewRNG(5)
	segs := rng.Segments(60, 1, 5, 3)
	filters := filterBank(t, rng, 3, 2, 2)
	ix := openIndex(t, segs)
	var out, progress bytes.Buffer

	res, err := SelectMembers(context.Background(), ix, filters, SelectConfig{Channel: 1, Output: &out},
		WithProgress(&progress))
	require.NoError(t, err)

	kept := accepted(segs, 2)
	scanner := patch.NewThresholdScanner(filters, 0)
	for _, s := range kept {
		_, err := scanner.Observe(s.Frames)
		require.NoError(t, err)
	}
	assert.Equal(t, scanner.Thresholds(), res.Thresholds)
	assert.Equal(t, len(kept), res.Samples)
	assert.Equal(t, len(segs)-len(kept), res.Skipped)

	members, err := scanner.Members(1)
	require.NoError(t, err)
	require.Equal(t, int(members.GetCardinality()), len(res.Members))
	if len(kept) > patch.DefaultK {
		assert.Len(t, res.Members, patch.DefaultK-1)
	}

	written, err := framebatch.ReadAll(&out)
	require.NoError(t, err)
	require.Len(t, written, len(res.Members))
	for i, ord := range res.Members {
		assert.True(t, members.Contains(uint32(ord)))
		assert.Less(t, scanner.Distance(ord, 1), res.Thresholds[1])
		assert.Equal(t, fmt.Sprintf("%d.logmel", ord), written[i].Header)
		assert.Equal(t, kept[ord].Frames, written[i].Frames)
	}
	assert.Contains(t, progress.String(), "sample: 0\r")
}

func TestSelectMembers_Errors(t *testing.T) {
	rng := testutil.NewRNG(1)
	ix := openIndex(t, rng.Segments(3, 2, 3, 2))
	filters := filterBank(t, rng, 2, 1, 1)
	ctx := context.Background()

	_, err := SelectMembers(ctx, ix, filters, SelectConfig{})
	assert.ErrorIs(t, err, ErrMissingArgument)

	_, err = SelectMembers(ctx, ix, filters, SelectConfig{Channel: 2, Output: &bytes.Buffer{}})
	assert.Error(t, err)
}
