// Package embed maps variable-length frame sequences to fixed-length vectors.
//
// [Conv] slides a bank of C fixed-size 2-D filters over a (T × D) input using
// valid cross-correlation and max-pools every channel over all positions, so
// the result always has length C regardless of T.
//
// [DTW] embeds a sequence as its distances to a set of basis sequences under a
// pluggable [DistanceOracle].
//
// Embeddings returned here are raw; callers normalize them with
// distance.NormalizeL2InPlace before clustering or scoring.
package embed
