// Package testutil provides testing utilities for unsupseg.
//
// This package is intended for use in tests only. It provides a seeded
// random source and generators for synthetic segments, filter banks and
// clustered embedding data.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	seg := rng.Segment(20, 8)             // 20 frames of 8 features
//	bank := rng.FilterBank(4, 3, 3)       // 4 filters of 3×3
//	data := rng.ClusteredVectors(100, 2, 3, 0.1)
//
// # Frame Batches
//
//	path := testutil.WriteBatch(t, dir, "train", segs)
package testutil
