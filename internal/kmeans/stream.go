package kmeans

import (
	"fmt"
	"slices"
)

// State is the lifecycle state of a Stream.
type State int

const (
	// Uninitialized: no centroids yet.
	Uninitialized State = iota
	// Seeding: fewer than k centroids; new samples become centroids.
	Seeding
	// Assigning: k centroids exist; samples are assigned to the nearest one.
	Assigning
	// Terminal: Finish was called.
	Terminal
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Seeding:
		return "seeding"
	case Assigning:
		return "assigning"
	case Terminal:
		return "terminal"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Assignment is the outcome of observing one sample.
type Assignment struct {
	Cluster  int
	Distance float64
	// Seeded is true when the sample became a new centroid.
	Seeded bool
}

// PassResult summarizes one completed pass.
type PassResult struct {
	Pass    int
	Samples int
	// Loss is the sum of assignment distances over the pass.
	Loss float64
	// Empty lists centroids that received no samples and were left unchanged.
	Empty []int
}

// MeanLoss returns Loss divided by Samples, or 0 for an empty pass.
func (r PassResult) MeanLoss() float64 {
	if r.Samples == 0 {
		return 0
	}
	return r.Loss / float64(r.Samples)
}

// Stream is a single-threaded streaming k-means clusterer.
//
// Usage per pass:
//
//	s.BeginPass()
//	for each sample { s.Observe(v) }
//	res := s.EndPass()
type Stream struct {
	k         int
	dim       int
	centroids [][]float64
	acc       []Accumulator

	pass    int
	inPass  bool
	samples int
	loss    float64

	terminal bool
}

// NewStream creates a Stream for k clusters, optionally starting from
// previously computed centroids. Fewer than k initial centroids are allowed;
// the remaining ones are seeded from the first samples observed.
func NewStream(k int, initial [][]float64) (*Stream, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if len(initial) > k {
		return nil, fmt.Errorf("%w: got %d, k=%d", ErrTooManyCentroids, len(initial), k)
	}
	dim, err := checkDims(initial)
	if err != nil {
		return nil, err
	}

	s := &Stream{
		k:         k,
		dim:       dim,
		centroids: cloneAll(initial),
	}
	for range s.centroids {
		s.acc = append(s.acc, newAccumulator(dim))
	}
	return s, nil
}

// K returns the configured number of clusters.
func (s *Stream) K() int { return s.k }

// Dim returns the centroid dimensionality, or 0 before the first centroid exists.
func (s *Stream) Dim() int { return s.dim }

// State returns the current lifecycle state.
func (s *Stream) State() State {
	switch {
	case s.terminal:
		return Terminal
	case len(s.centroids) == 0:
		return Uninitialized
	case len(s.centroids) < s.k:
		return Seeding
	default:
		return Assigning
	}
}

// Pass returns the number of passes begun so far.
func (s *Stream) Pass() int { return s.pass }

// BeginPass starts a new pass and resets every accumulator.
func (s *Stream) BeginPass() error {
	if s.terminal {
		return ErrTerminal
	}
	for i := range s.acc {
		s.acc[i].Reset()
	}
	s.pass++
	s.inPass = true
	s.samples = 0
	s.loss = 0
	return nil
}

// Observe seeds or assigns one sample and accumulates it.
// The vector is copied when it becomes a centroid; the caller keeps ownership.
func (s *Stream) Observe(vec []float64) (Assignment, error) {
	if s.terminal {
		return Assignment{}, ErrTerminal
	}
	if !s.inPass {
		return Assignment{}, ErrNoPass
	}
	if len(vec) == 0 {
		return Assignment{}, &ErrDimensionMismatch{Expected: max(s.dim, 1), Actual: 0}
	}
	if s.dim == 0 {
		s.dim = len(vec)
	}
	if len(vec) != s.dim {
		return Assignment{}, &ErrDimensionMismatch{Expected: s.dim, Actual: len(vec)}
	}

	var a Assignment
	if len(s.centroids) < s.k {
		s.centroids = append(s.centroids, slices.Clone(vec))
		s.acc = append(s.acc, newAccumulator(s.dim))
		a = Assignment{Cluster: len(s.centroids) - 1, Distance: 0, Seeded: true}
	} else {
		a.Cluster, a.Distance = Nearest(vec, s.centroids)
	}

	s.acc[a.Cluster].Add(vec)
	s.loss += a.Distance
	s.samples++
	return a, nil
}

// RunningLoss returns the mean assignment distance of the current pass so far.
func (s *Stream) RunningLoss() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.loss / float64(s.samples)
}

// EndPass replaces every centroid by the mean of the samples assigned to it
// during the pass. Centroids without samples are left unchanged and listed in
// the result.
func (s *Stream) EndPass() (PassResult, error) {
	if s.terminal {
		return PassResult{}, ErrTerminal
	}
	if !s.inPass {
		return PassResult{}, ErrNoPass
	}
	s.inPass = false

	res := PassResult{Pass: s.pass, Samples: s.samples, Loss: s.loss}
	for k := range s.centroids {
		mean, ok := s.acc[k].Mean()
		if !ok {
			res.Empty = append(res.Empty, k)
			continue
		}
		s.centroids[k] = mean
	}
	return res, nil
}

// Centroids returns a copy of the current centroids.
func (s *Stream) Centroids() [][]float64 {
	return cloneAll(s.centroids)
}

// Accumulators returns a copy of the per-centroid accumulators of the current
// or most recent pass.
func (s *Stream) Accumulators() []Accumulator {
	out := make([]Accumulator, len(s.acc))
	for i, a := range s.acc {
		out[i] = Accumulator{Sum: slices.Clone(a.Sum), Count: a.Count}
	}
	return out
}

// Finish moves the stream to the terminal state and returns the final centroids.
func (s *Stream) Finish() [][]float64 {
	s.terminal = true
	s.inPass = false
	return s.Centroids()
}
