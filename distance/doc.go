// Package distance provides the vector primitives shared by the embedding and
// clustering layers.
//
// All functions operate on float64 slices and are backed by gonum's BLAS
// implementation.
//
// # Normalization
//
// Embeddings are always L2-normalized before they reach clustering or
// similarity scoring. A vector with zero norm cannot be normalized;
// [NormalizeL2InPlace] reports this with [ErrDegenerateNorm] and leaves the
// vector untouched.
//
// # Usage
//
//	d := distance.L2(a, b)
//	if err := distance.NormalizeL2InPlace(v); err != nil {
//	    // skip the sample
//	}
package distance
