// Package kmeans implements streaming centroid clustering over embedding vectors.
//
// A [Stream] processes samples one at a time in passes. The first K samples it
// sees (when no initial centroids are supplied) become the centroids; every
// later sample is assigned to its nearest centroid by Euclidean distance and
// accumulated into that centroid's [Accumulator]. At the end of a pass each
// centroid is replaced by the mean of its accumulator. This is Lloyd's
// algorithm with the assignment step fused into a single streaming scan.
//
// A [Predictor] applies the same assignment rule against fixed centroids and
// never mutates them.
package kmeans
