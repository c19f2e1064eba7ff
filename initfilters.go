package unsupseg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/hupe1980/unsupseg/framebatch"
	"github.com/hupe1980/unsupseg/persistence"
	"github.com/hupe1980/unsupseg/tensor"
)

// InitConfig configures InitFilters.
type InitConfig struct {
	// Height and Width are the filter extents in frames and features.
	Height, Width int
	// Channels is the number of filters.
	Channels int
	// Seed seeds the generator. Zero selects DefaultSeed.
	Seed int64
	// OutputParam receives the filter bank when set.
	OutputParam string
}

// InitFilters builds a filter bank whose channels are patches copied from
// random positions of random segments of ix. Segments smaller than the
// filter are skipped.
func InitFilters(ctx context.Context, ix *framebatch.Index, cfg InitConfig, optFns ...Option) (*tensor.Tensor3D, error) {
	bank, err := tensor.New(tensor.Shape{Time: cfg.Height, Feature: cfg.Width, Channel: cfg.Channels})
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	rng := rand.New(rand.NewSource(seed))

	r := newRunner("init-filters", optFns)

	var eligible []int
	read := 0
	_, err = r.each(ctx, ix.Cursor(), func(_ int, seg framebatch.Segment) error {
		pos := read
		read++
		in, err := tensor.FromFrames(seg.Frames)
		if err != nil {
			return err
		}
		if s := in.Shape(); s.Time < cfg.Height || s.Feature < cfg.Width {
			return &tensor.ShapeError{
				Op:     "init",
				Reason: fmt.Sprintf("segment %s smaller than filter %dx%d", s, cfg.Height, cfg.Width),
			}
		}
		eligible = append(eligible, pos)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, errors.New("no segment is large enough for the filter")
	}

	for c := range cfg.Channels {
		seg, err := ix.At(eligible[rng.Intn(len(eligible))])
		if err != nil {
			return nil, err
		}
		i := rng.Intn(len(seg.Frames) - cfg.Height + 1)
		j := rng.Intn(len(seg.Frames[0]) - cfg.Width + 1)
		for a := range cfg.Height {
			for b := range cfg.Width {
				bank.Set(a, b, c, seg.Frames[i+a][j+b])
			}
		}
	}

	if cfg.OutputParam != "" {
		if err := r.save(ctx, cfg.OutputParam, func(w io.Writer) error {
			return persistence.WriteParam(w, bank)
		}); err != nil {
			return nil, fmt.Errorf("output param: %w", err)
		}
	}
	return bank, nil
}
