package embed

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/unsupseg/distance"
	"github.com/hupe1980/unsupseg/tensor"
)

// ErrEmptySequence is returned when a DTW input has no frames.
var ErrEmptySequence = errors.New("empty sequence")

var _ Embedder = (*DTW)(nil)

// DTW embeds a sequence as its oracle distances to each basis sequence.
type DTW struct {
	basis  [][][]float64
	oracle DistanceOracle
}

// NewDTW creates a DTW embedder. A nil oracle selects DTWOracle{}.
func NewDTW(basis [][][]float64, oracle DistanceOracle) *DTW {
	if oracle == nil {
		oracle = DTWOracle{}
	}
	return &DTW{basis: basis, oracle: oracle}
}

// Dim returns the number of basis sequences.
func (d *DTW) Dim() int { return len(d.basis) }

// Embed returns [oracle(frames, basis_0), ..., oracle(frames, basis_n-1)].
func (d *DTW) Embed(frames [][]float64) ([]float64, error) {
	out := make([]float64, len(d.basis))
	for i, b := range d.basis {
		v, err := d.oracle.Distance(frames, b)
		if err != nil {
			return nil, fmt.Errorf("basis %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// DTWOracle is a reference dynamic time warping distance with Euclidean
// frame cost and the symmetric (match, insert, delete) step pattern.
type DTWOracle struct {
	// NormalizeByTarget divides the accumulated cost by len(b).
	NormalizeByTarget bool
}

// Distance returns the DTW alignment cost between a and b.
func (o DTWOracle) Distance(a, b [][]float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptySequence
	}

	// Two rolling rows of the (len(a)+1) × (len(b)+1) cost matrix.
	prev := make([]float64, len(b)+1)
	curr := make([]float64, len(b)+1)
	for j := range prev {
		prev[j] = math.Inf(1)
	}
	prev[0] = 0

	for i := 1; i <= len(a); i++ {
		curr[0] = math.Inf(1)
		for j := 1; j <= len(b); j++ {
			if len(a[i-1]) != len(b[j-1]) {
				return 0, &tensor.ShapeError{
					Op:     "dtw",
					Reason: fmt.Sprintf("frame dimension mismatch: %d vs %d", len(a[i-1]), len(b[j-1])),
				}
			}
			cost := distance.L2(a[i-1], b[j-1])
			curr[j] = cost + min(prev[j-1], prev[j], curr[j-1])
		}
		prev, curr = curr, prev
	}

	d := prev[len(b)]
	if o.NormalizeByTarget {
		d /= float64(len(b))
	}
	return d, nil
}
