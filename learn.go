package unsupseg

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/unsupseg/framebatch"
	"github.com/hupe1980/unsupseg/internal/conv"
	"github.com/hupe1980/unsupseg/patch"
	"github.com/hupe1980/unsupseg/persistence"
	"github.com/hupe1980/unsupseg/tensor"
)

// LearnConfig configures LearnFilters.
type LearnConfig struct {
	// K is the number of exemplars averaged per channel.
	// Zero selects patch.DefaultK.
	K int
	// OutputParam receives the re-estimated filter bank. Required.
	OutputParam string
}

// LearnFilters runs one pass of patch k-means over src: every channel's
// filter is replaced by the mean of its K best-matching patches.
//
// The report receives "sample: <n>" and "loss: <mean best distance>" plus a
// blank line per accepted sample, and "loss: <mean retained distance>" at
// the end. The filter bank passed in is not modified.
func LearnFilters(ctx context.Context, src framebatch.Source, filters *tensor.Tensor3D, cfg LearnConfig, optFns ...Option) (*patch.Result, error) {
	if cfg.OutputParam == "" {
		return nil, fmt.Errorf("%w: output param", ErrMissingArgument)
	}
	r := newRunner("learn", optFns)
	sel := patch.NewSelector(filters, cfg.K)
	start := time.Now()

	_, err := r.each(ctx, src, func(n int, seg framebatch.Segment) error {
		best, err := sel.Observe(seg.Frames)
		if err != nil {
			return err
		}
		r.reportf("sample: %d\nloss: %g\n\n", n, patch.MeanDistance(best))
		return nil
	})
	if err != nil {
		return nil, err
	}

	res, err := sel.Finalize()
	if err != nil {
		return nil, err
	}
	r.reportf("loss: %g\n", res.Loss)

	empty := emptyChannels(res.Counts)
	r.metrics.RecordPass(sel.Samples(), res.Loss, len(empty), time.Since(start))
	r.log.LogPass(ctx, 1, sel.Samples(), res.Loss, empty)

	if err := r.save(ctx, cfg.OutputParam, func(w io.Writer) error {
		return persistence.WriteParam(w, res.Filters)
	}); err != nil {
		return nil, fmt.Errorf("output param: %w", err)
	}
	return &res, nil
}

func emptyChannels(counts []int) []int {
	var out []int
	for c, n := range counts {
		if n == 0 {
			out = append(out, c)
		}
	}
	return out
}

// SelectConfig configures SelectMembers.
type SelectConfig struct {
	// K is the rank of the per-channel threshold. Zero selects patch.DefaultK.
	K int
	// Channel is the filter whose members are written.
	Channel int
	// Output receives the member segments as a frame batch. Required.
	Output io.Writer
}

// SelectResult is the outcome of SelectMembers.
type SelectResult struct {
	Thresholds []float64
	// Members holds the ordinals of the segments written, ascending.
	Members []int
	Samples int
	Skipped int
}

// SelectMembers scans ix twice. The first scan records the best-match
// distance of every sample to every filter and derives a per-channel
// threshold (the K-th smallest distance). The second scan writes every
// sample of cfg.Channel whose distance is strictly below the threshold,
// with header "<ordinal>.logmel".
func SelectMembers(ctx context.Context, ix *framebatch.Index, filters *tensor.Tensor3D, cfg SelectConfig, optFns ...Option) (*SelectResult, error) {
	if cfg.Output == nil {
		return nil, fmt.Errorf("%w: output", ErrMissingArgument)
	}
	if c := filters.Shape().Channel; cfg.Channel < 0 || cfg.Channel >= c {
		return nil, fmt.Errorf("cluster %d out of range [0,%d)", cfg.Channel, c)
	}
	r := newRunner("select", optFns)
	scanner := patch.NewThresholdScanner(filters, cfg.K)

	// positions maps accepted ordinals to index positions for the second scan.
	var positions []int
	read := 0
	_, err := r.each(ctx, ix.Cursor(), func(_ int, seg framebatch.Segment) error {
		pos := read
		read++
		if _, err := scanner.Observe(seg.Frames); err != nil {
			return err
		}
		positions = append(positions, pos)
		return nil
	})
	if err != nil {
		return nil, err
	}
	_, _ = fmt.Fprintln(r.progress)

	members, err := scanner.Members(cfg.Channel)
	if err != nil {
		return nil, err
	}

	res := &SelectResult{
		Thresholds: scanner.Thresholds(),
		Samples:    scanner.Samples(),
		Skipped:    r.skipped,
	}
	w := framebatch.NewWriter(cfg.Output)
	it := members.Iterator()
	for it.HasNext() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ord := conv.KeyToOrdinal(it.Next())
		seg, err := ix.At(positions[ord])
		if err != nil {
			return nil, err
		}
		seg.Header = fmt.Sprintf("%d.logmel", ord)
		if err := w.Write(seg); err != nil {
			return nil, err
		}
		res.Members = append(res.Members, ord)
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return res, nil
}
