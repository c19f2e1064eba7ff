// Package patch implements exemplar-based filter learning.
//
// For every sample the best matching patch of each filter channel is found
// with the squared distance
//
//	‖p − f_c‖² = ‖p‖² + ‖f_c‖² − 2·⟨p, f_c⟩
//
// where the correlation term comes from a single GEMM over the linearized
// sample. Selector keeps, per channel, the K best of these per-sample matches
// over a whole pass and re-estimates each filter as their mean.
// ThresholdScanner records the per-sample best distances instead and derives
// a per-channel membership threshold from the K-th smallest one.
package patch
