package kmeans

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/unsupseg/distance"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmptyCluster marks a centroid that received no samples during a pass.
	ErrEmptyCluster = errors.New("empty cluster")

	// ErrTooManyCentroids is returned when more initial centroids than k are supplied.
	ErrTooManyCentroids = errors.New("more initial centroids than k")

	// ErrNoPass is returned when a sample is observed outside of a pass.
	ErrNoPass = errors.New("no pass in progress")

	// ErrTerminal is returned when a finished stream is used again.
	ErrTerminal = errors.New("stream is terminal")

	// ErrNoCentroids is returned when predicting without centroids.
	ErrNoCentroids = errors.New("no centroids")
)

// ErrDimensionMismatch indicates a vector/centroid dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Nearest returns the index of the closest centroid to vec and its Euclidean
// distance. Centroids are scanned in order and only a strictly smaller
// distance replaces the current best, so ties resolve to the lowest index.
// It returns -1 and +Inf when centroids is empty.
func Nearest(vec []float64, centroids [][]float64) (int, float64) {
	best := -1
	minDist := math.Inf(1)
	for k, c := range centroids {
		d := distance.L2(c, vec)
		if d < minDist {
			minDist = d
			best = k
		}
	}
	return best, minDist
}

// Accumulator is the running sum and sample count of one centroid within a pass.
type Accumulator struct {
	Sum   []float64
	Count int
}

func newAccumulator(dim int) Accumulator {
	return Accumulator{Sum: make([]float64, dim)}
}

// Add accumulates v.
func (a *Accumulator) Add(v []float64) {
	distance.AddInPlace(a.Sum, v)
	a.Count++
}

// Reset zeroes the accumulator.
func (a *Accumulator) Reset() {
	clear(a.Sum)
	a.Count = 0
}

// Mean returns sum/count. It returns false when nothing was accumulated.
func (a *Accumulator) Mean() ([]float64, bool) {
	if a.Count == 0 {
		return nil, false
	}
	m := slices.Clone(a.Sum)
	distance.ScaleInPlace(m, 1/float64(a.Count))
	return m, true
}

func cloneAll(vs [][]float64) [][]float64 {
	out := make([][]float64, len(vs))
	for i, v := range vs {
		out[i] = slices.Clone(v)
	}
	return out
}

func checkDims(vs [][]float64) (int, error) {
	if len(vs) == 0 {
		return 0, nil
	}
	dim := len(vs[0])
	if dim == 0 {
		return 0, &ErrDimensionMismatch{Expected: 1, Actual: 0}
	}
	for _, v := range vs[1:] {
		if len(v) != dim {
			return 0, &ErrDimensionMismatch{Expected: dim, Actual: len(v)}
		}
	}
	return dim, nil
}
