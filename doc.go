// Package unsupseg discovers recurring acoustic patterns in unlabeled speech
// features.
//
// Input is a frame batch: segments of log-mel frames, one frame per line,
// each segment introduced by a header line and closed by ".". The package
// embeds segments into fixed-length vectors and clusters them, or learns
// convolutional filters directly from the best-matching patches.
//
// # Quick Start
//
// Cluster max-pooled correlation embeddings with streaming k-means:
//
//	basis, _ := framebatch.LoadFile("basis.batch")
//	frames := make([][][]float64, len(basis))
//	for i, s := range basis {
//	    frames[i] = s.Frames
//	}
//	bank, _ := tensor.FromFilterBank(frames)
//
//	ix, _ := framebatch.OpenIndex("train.batch")
//	defer ix.Close()
//
//	res, err := unsupseg.Cluster(ctx, ix, embed.NewConv(bank), unsupseg.ClusterConfig{
//	    K:             50,
//	    Iterations:    10,
//	    OutputCenters: "centers",
//	}, unsupseg.WithReport(os.Stdout))
//
// Assign new data to the learned centers:
//
//	centers, _ := persistence.LoadCenters("centers", 0)
//	res, err := unsupseg.Predict(ctx, ix.Cursor(), embed.NewConv(bank), centers)
//
// # Drivers
//
//   - Cluster: streaming k-means over unit-length embeddings, checkpointed after every pass
//   - Predict: nearest-center assignment against fixed centers
//   - LearnFilters: one pass of patch k-means re-estimating a filter bank
//   - SelectMembers: threshold scan writing the best matches of one filter
//   - Score and Distances: similarity of every segment to a target segment
//   - RandomSegments and InitFilters: bootstrap data for the above
//
// # Errors
//
// Segments that cannot be embedded (ErrShape, ErrDegenerateNorm,
// ErrEmptySequence) are skipped, logged and counted; they do not consume a
// sample ordinal. Every other error aborts the run before final output is
// written. Outputs and checkpoints are replaced atomically.
package unsupseg
