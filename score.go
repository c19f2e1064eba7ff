package unsupseg

import (
	"context"
	"fmt"

	"github.com/hupe1980/unsupseg/distance"
	"github.com/hupe1980/unsupseg/embed"
	"github.com/hupe1980/unsupseg/framebatch"
)

// Score compares every segment of src with target in embedding space. The
// score is the dot product of the unit-length embeddings (cosine similarity)
// and is reported as "dist: <score>" per accepted sample.
func Score(ctx context.Context, src framebatch.Source, emb embed.Embedder, target [][]float64, optFns ...Option) ([]float64, error) {
	t, err := embedUnit(emb, target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	r := newRunner("score", optFns)
	var scores []float64
	_, err = r.each(ctx, src, func(_ int, seg framebatch.Segment) error {
		v, err := embedUnit(emb, seg.Frames)
		if err != nil {
			return err
		}
		s := distance.Dot(v, t)
		scores = append(scores, s)
		r.reportf("dist: %g\n", s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// Distances reports the oracle distance between every segment of src and
// target as "dist: <distance>".
func Distances(ctx context.Context, src framebatch.Source, oracle embed.DistanceOracle, target [][]float64, optFns ...Option) ([]float64, error) {
	if len(target) == 0 {
		return nil, fmt.Errorf("target: %w", ErrEmptySequence)
	}

	r := newRunner("dtw", optFns)
	var dists []float64
	_, err := r.each(ctx, src, func(_ int, seg framebatch.Segment) error {
		d, err := oracle.Distance(seg.Frames, target)
		if err != nil {
			return err
		}
		dists = append(dists, d)
		r.reportf("dist: %g\n", d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dists, nil
}
