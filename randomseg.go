package unsupseg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"

	"github.com/hupe1980/unsupseg/framebatch"
)

// RandomSegConfig configures RandomSegments.
type RandomSegConfig struct {
	// Count is the number of segments to draw.
	Count int
	// Durations lists the candidate segment lengths in frames.
	Durations []int
	// Seed seeds the generator. Zero selects DefaultSeed.
	Seed int64
}

// RandomSegments cuts cfg.Count random excerpts from ix and writes them to w
// as a frame batch with headers "<n>.logmel". Excerpt n is taken from
// segment n mod ix.Len(). Its start is uniform in [0, len-maxDuration-1]
// (0 when the segment is shorter), its duration is drawn uniformly from
// cfg.Durations and it is clipped to the end of the segment.
func RandomSegments(ctx context.Context, ix *framebatch.Index, cfg RandomSegConfig, w io.Writer, optFns ...Option) (int, error) {
	if len(cfg.Durations) == 0 {
		return 0, fmt.Errorf("%w: durations", ErrMissingArgument)
	}
	for _, d := range cfg.Durations {
		if d <= 0 {
			return 0, fmt.Errorf("duration must be positive, got %d", d)
		}
	}
	if cfg.Count > 0 && ix.Len() == 0 {
		return 0, errors.New("frame batch is empty")
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	rng := rand.New(rand.NewSource(seed))
	maxDur := slices.Max(cfg.Durations)

	r := newRunner("random-seg", optFns)
	out := framebatch.NewWriter(w)
	for n := range cfg.Count {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		seg, err := ix.At(n % ix.Len())
		if err != nil {
			return n, err
		}

		start := 0
		if hi := len(seg.Frames) - maxDur - 1; hi > 0 {
			start = rng.Intn(hi + 1)
		}
		dur := cfg.Durations[rng.Intn(len(cfg.Durations))]
		end := min(start+dur, len(seg.Frames))

		if err := out.Write(framebatch.Segment{
			Header: fmt.Sprintf("%d.logmel", n),
			Frames: seg.Frames[start:end],
		}); err != nil {
			return n, err
		}
		r.tick(n)
	}
	if err := out.Flush(); err != nil {
		return cfg.Count, err
	}
	return cfg.Count, nil
}
