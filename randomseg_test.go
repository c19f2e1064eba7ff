package unsupseg

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/hupe1980/unsupseg/framebatch"
	"github.com/hupe1980/unsupseg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contains reports whether sub occurs as a contiguous run of frames in seg.
func contains(seg, sub [][]float64) bool {
	for start := 0; start+len(sub) <= len(seg); start++ {
		match := true
		for i := range sub {
			if !slices.Equal(seg[start+i], sub[i]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func TestRandomSegments(t *testing.T) {
	rng := testutil.NewRNG(2)
	segs := []framebatch.Segment{
		{Header: "a", Frames: rng.Segment(10, 2)},
		{Header: "b", Frames: rng.Segment(3, 2)},
	}
	ix := openIndex(t, segs)
	var out bytes.Buffer

	n, err := RandomSegments(context.Background(), ix, RandomSegConfig{Count: 5, Durations: []int{2, 4}}, &out)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	got, err := framebatch.ReadAll(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, g := range got {
		src := segs[i%2].Frames
		assert.Equal(t, fmt.Sprintf("%d.logmel", i), g.Header)
		assert.True(t, g.Len() == 2 || g.Len() == 4 || g.Len() == len(src), "segment %d has %d frames", i, g.Len())
		assert.True(t, contains(src, g.Frames), "segment %d is not an excerpt", i)
	}
	// Shorter than the longest duration: the excerpt starts at the first frame.
	assert.Equal(t, segs[1].Frames[0], got[1].Frames[0])

	var again bytes.Buffer
	_, err = RandomSegments(context.Background(), ix, RandomSegConfig{Count: 5, Durations: []int{2, 4}, Seed: DefaultSeed}, &again)
	require.NoError(t, err)
	assert.Equal(t, out.String(), again.String())
}

func TestRandomSegments_Errors(t *testing.T) {
	ix := openIndex(t, nil)
	ctx := context.Background()

	_, err := RandomSegments(ctx, ix, RandomSegConfig{Count: 1}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrMissingArgument)

	_, err = RandomSegments(ctx, ix, RandomSegConfig{Count: 1, Durations: []int{0}}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = RandomSegments(ctx, ix, RandomSegConfig{Count: 1, Durations: []int{2}}, &bytes.Buffer{})
	assert.Error(t, err)

	n, err := RandomSegments(ctx, ix, RandomSegConfig{Durations: []int{2}}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Zero(t, n)
}
