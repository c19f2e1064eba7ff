package patch

import (
	"errors"
	"slices"

	"github.com/hupe1980/unsupseg/distance"
	"github.com/hupe1980/unsupseg/internal/queue"
	"github.com/hupe1980/unsupseg/tensor"
)

// ErrFinalized is returned when a Selector is used after Finalize.
var ErrFinalized = errors.New("patch: selector already finalized")

// Result is the outcome of Selector.Finalize.
type Result struct {
	// Filters is the re-estimated filter bank.
	Filters *tensor.Tensor3D
	// Loss is the mean distance over every retained exemplar.
	Loss float64
	// Counts is the number of exemplars averaged per channel. Channels with
	// a zero count kept their previous coefficients.
	Counts []int
}

// Selector re-estimates a filter bank as the mean of the K best per-sample
// matches of each channel over one pass.
//
// Filters stay fixed during the pass. Only the patches currently retained by
// some channel are stored.
type Selector struct {
	m       matcher
	heaps   []*queue.Bounded
	patches map[int][]float64
	nextID  int
	samples int
	done    bool
}

// NewSelector creates a Selector over a copy of filters retaining k exemplars
// per channel. k <= 0 selects DefaultK.
func NewSelector(filters *tensor.Tensor3D, k int) *Selector {
	if k <= 0 {
		k = DefaultK
	}
	heaps := make([]*queue.Bounded, filters.Shape().Channel)
	for c := range heaps {
		heaps[c] = queue.NewBounded(k)
	}
	return &Selector{
		m:       newMatcher(filters.Clone()),
		heaps:   heaps,
		patches: make(map[int][]float64),
	}
}

// K returns the per-channel exemplar budget.
func (s *Selector) K() int { return s.heaps[0].Cap() }

// Samples returns the number of samples observed.
func (s *Selector) Samples() int { return s.samples }

// Observe offers the best patch of every channel in frames. Samples smaller
// than the filter return a tensor.ErrShape error and are not counted.
func (s *Selector) Observe(frames [][]float64) ([]Match, error) {
	if s.done {
		return nil, ErrFinalized
	}
	p, best, err := s.m.match(frames)
	if err != nil {
		return nil, err
	}

	for c, m := range best {
		if m.Row < 0 {
			continue
		}
		id := s.nextID
		accepted, evicted, didEvict := s.heaps[c].Offer(id, m.Distance)
		if !accepted {
			continue
		}
		s.nextID++
		s.patches[id] = slices.Clone(p.Row(m.Row))
		if didEvict {
			delete(s.patches, evicted.Index)
		}
	}
	s.samples++
	return best, nil
}

// Retained returns the number of patches currently stored.
func (s *Selector) Retained() int { return len(s.patches) }

// Finalize drains every channel, overwrites each filter with the mean of its
// retained patches and returns the new bank. The Selector cannot be used
// afterwards.
func (s *Selector) Finalize() (Result, error) {
	if s.done {
		return Result{}, ErrFinalized
	}
	s.done = true

	filters := s.m.filters
	res := Result{Filters: filters, Counts: make([]int, len(s.heaps))}

	var (
		total float64
		n     int
	)
	for c, h := range s.heaps {
		items := h.Drain()
		if len(items) == 0 {
			continue
		}
		mean := make([]float64, len(s.patches[items[0].Index]))
		for _, it := range items {
			distance.AddInPlace(mean, s.patches[it.Index])
			total += it.Distance
		}
		distance.ScaleInPlace(mean, 1/float64(len(items)))
		if err := filters.SetChannel(c, mean); err != nil {
			return Result{}, err
		}
		res.Counts[c] = len(items)
		n += len(items)
	}

	clear(s.patches)
	if n > 0 {
		res.Loss = total / float64(n)
	}
	return res, nil
}
