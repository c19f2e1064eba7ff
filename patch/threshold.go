package patch

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/unsupseg/internal/conv"
	"github.com/hupe1980/unsupseg/internal/queue"
	"github.com/hupe1980/unsupseg/tensor"
)

// ThresholdScanner records the per-sample best distance of every channel and
// derives nearest-neighbor set membership relative to a K exemplar budget.
//
// Sample ordinals count observed samples only; samples rejected with a shape
// error do not consume an ordinal.
type ThresholdScanner struct {
	m    matcher
	k    int
	best [][]float64 // channel -> ordinal -> distance
}

// NewThresholdScanner creates a scanner over filters. k <= 0 selects DefaultK.
func NewThresholdScanner(filters *tensor.Tensor3D, k int) *ThresholdScanner {
	if k <= 0 {
		k = DefaultK
	}
	return &ThresholdScanner{
		m:    newMatcher(filters),
		k:    k,
		best: make([][]float64, filters.Shape().Channel),
	}
}

// Channels returns the number of filter channels.
func (s *ThresholdScanner) Channels() int { return len(s.best) }

// Samples returns the number of recorded samples.
func (s *ThresholdScanner) Samples() int {
	if len(s.best) == 0 {
		return 0
	}
	return len(s.best[0])
}

// Observe records the best distance of every channel for frames.
func (s *ThresholdScanner) Observe(frames [][]float64) ([]Match, error) {
	_, best, err := s.m.match(frames)
	if err != nil {
		return nil, err
	}
	for c, m := range best {
		s.best[c] = append(s.best[c], m.Distance)
	}
	return best, nil
}

// Distance returns the recorded distance of a sample for a channel.
func (s *ThresholdScanner) Distance(ordinal, channel int) float64 {
	return s.best[channel][ordinal]
}

// Thresholds returns the K-th smallest recorded distance of every channel, or
// the largest one when fewer than K samples were recorded. Channels without
// samples report +Inf.
func (s *ThresholdScanner) Thresholds() []float64 {
	out := make([]float64, len(s.best))
	for c, ds := range s.best {
		if len(ds) == 0 {
			out[c] = math.Inf(1)
			continue
		}
		b := queue.NewBounded(s.k)
		for i, d := range ds {
			b.Offer(i, d)
		}
		worst, _ := b.Worst()
		out[c] = worst.Distance
	}
	return out
}

// Members returns the ordinals whose distance for channel is strictly below
// the channel's threshold.
func (s *ThresholdScanner) Members(channel int) (*roaring.Bitmap, error) {
	if channel < 0 || channel >= len(s.best) {
		return nil, fmt.Errorf("patch: channel %d out of range [0,%d)", channel, len(s.best))
	}
	threshold := s.Thresholds()[channel]

	rb := roaring.New()
	for i, d := range s.best[channel] {
		if d < threshold {
			key, err := conv.OrdinalToKey(i)
			if err != nil {
				return nil, err
			}
			rb.Add(key)
		}
	}
	return rb, nil
}
