// Package tensor batches frame sequences and filter banks into dense buffers
// with explicit shapes.
//
// A [Tensor3D] has three named axes (time, feature, channel). Input segments
// are stored as (T × D × 1) and filter banks as (Hf × Wf × C). Extents are fixed
// at allocation; nothing in this package resizes a tensor after creation.
//
// Shape problems are reported as [*ShapeError], which matches [ErrShape] under
// errors.Is, at the boundary where they are detected.
package tensor
