package distance

import (
	"errors"
	"math"
	"slices"

	"gonum.org/v1/gonum/blas/blas64"
)

// ErrDegenerateNorm is returned when normalizing a vector whose L2 norm is zero.
var ErrDegenerateNorm = errors.New("degenerate norm: vector has zero length")

func vec(v []float64) blas64.Vector {
	return blas64.Vector{N: len(v), Inc: 1, Data: v}
}

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return blas64.Dot(vec(a), vec(b))
}

// SquaredL2 calculates the squared Euclidean distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// L2 calculates the Euclidean distance between two vectors.
func L2(a, b []float64) float64 {
	return math.Sqrt(SquaredL2(a, b))
}

// Norm returns the L2 norm of v.
func Norm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return blas64.Nrm2(vec(v))
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns ErrDegenerateNorm if v is empty, has a NaN or infinite component, or
// its L2 norm is zero or overflows; v is not modified then.
func NormalizeL2InPlace(v []float64) error {
	if !allFinite(v) {
		return ErrDegenerateNorm
	}
	n := Norm(v)
	if n == 0 || math.IsInf(n, 0) {
		return ErrDegenerateNorm
	}
	blas64.Scal(1/n, vec(v))
	return nil
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// NormalizeL2Copy returns a normalized copy of src.
func NormalizeL2Copy(src []float64) ([]float64, error) {
	dst := slices.Clone(src)
	if err := NormalizeL2InPlace(dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// AddInPlace accumulates src into dst (dst += src).
func AddInPlace(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	blas64.Axpy(1, vec(src), vec(dst))
}

// ScaleInPlace multiplies all elements of v by alpha.
func ScaleInPlace(v []float64, alpha float64) {
	if len(v) == 0 {
		return
	}
	blas64.Scal(alpha, vec(v))
}
