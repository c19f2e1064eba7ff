package unsupseg

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/hupe1980/unsupseg/distance"
	"github.com/hupe1980/unsupseg/embed"
	"github.com/hupe1980/unsupseg/framebatch"
	"github.com/hupe1980/unsupseg/internal/kmeans"
	"github.com/hupe1980/unsupseg/persistence"
)

const (
	// DefaultCheckpointPath is where centers are rewritten after every pass.
	DefaultCheckpointPath = "centers-tmp"

	// DefaultSeed seeds the shuffle and random segment drivers.
	DefaultSeed int64 = 1
)

// PassResult summarizes one completed clustering pass.
type PassResult = kmeans.PassResult

// ClusterReport is the per-cluster summary of a prediction run.
type ClusterReport = kmeans.ClusterReport

// ClusterConfig configures Cluster.
type ClusterConfig struct {
	// K is the number of clusters.
	K int
	// Iterations is the number of full passes over the frame batch.
	Iterations int
	// Initial holds up to K centroids from a previous run. Missing
	// centroids are seeded from the first samples of pass 1.
	Initial [][]float64
	// OutputCenters receives the final centroids. Required.
	OutputCenters string
	// CheckpointPath receives the centroids after every pass.
	// Empty selects DefaultCheckpointPath.
	CheckpointPath string
	// Shuffle permutes the sample order once before pass 1. The caller's
	// index keeps its order.
	Shuffle bool
	// Seed seeds the shuffle. Zero selects DefaultSeed.
	Seed int64
}

// ClusterResult is the outcome of Cluster.
type ClusterResult struct {
	Centroids [][]float64
	Passes    []PassResult
	// Skipped is the number of segments skipped in the last pass.
	Skipped int
}

// Cluster runs streaming k-means over the L2-normalized embeddings of every
// segment in ix.
//
// For each accepted sample the report receives
//
//	sample: <n>
//	id: <cluster>
//	running loss: <mean distance so far>
//
// followed by a blank line, and every pass ends with "loss: <mean distance>".
// Centroids are written atomically to the checkpoint path after each pass
// and to OutputCenters after the last one.
func Cluster(ctx context.Context, ix *framebatch.Index, emb embed.Embedder, cfg ClusterConfig, optFns ...Option) (*ClusterResult, error) {
	if cfg.OutputCenters == "" {
		return nil, fmt.Errorf("%w: output centers", ErrMissingArgument)
	}
	if cfg.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", cfg.Iterations)
	}
	stream, err := kmeans.NewStream(cfg.K, cfg.Initial)
	if err != nil {
		return nil, err
	}
	if d := stream.Dim(); d != 0 && d != emb.Dim() {
		return nil, &ErrDimensionMismatch{Expected: emb.Dim(), Actual: d}
	}

	checkpoint := cfg.CheckpointPath
	if checkpoint == "" {
		checkpoint = DefaultCheckpointPath
	}
	if cfg.Shuffle {
		seed := cfg.Seed
		if seed == 0 {
			seed = DefaultSeed
		}
		ix = ix.Shuffled(rand.New(rand.NewSource(seed)))
	}

	r := newRunner("cluster", optFns)
	base := r.log
	res := &ClusterResult{}

	for range cfg.Iterations {
		if err := stream.BeginPass(); err != nil {
			return nil, err
		}
		r.skipped = 0
		r.log = base.WithPass(stream.Pass())
		start := time.Now()

		_, err := r.each(ctx, ix.Cursor(), func(n int, seg framebatch.Segment) error {
			vec, err := embedUnit(emb, seg.Frames)
			if err != nil {
				return err
			}
			a, err := stream.Observe(vec)
			if err != nil {
				return err
			}
			r.reportf("sample: %d\nid: %d\nrunning loss: %g\n\n", n, a.Cluster, stream.RunningLoss())
			return nil
		})
		if err != nil {
			return nil, err
		}

		pass, err := stream.EndPass()
		if err != nil {
			return nil, err
		}
		r.reportf("loss: %g\n", pass.MeanLoss())
		r.metrics.RecordPass(pass.Samples, pass.MeanLoss(), len(pass.Empty), time.Since(start))
		r.log.LogPass(ctx, pass.Pass, pass.Samples, pass.MeanLoss(), pass.Empty)
		res.Passes = append(res.Passes, pass)

		centers := stream.Centroids()
		if err := r.save(ctx, checkpoint, func(w io.Writer) error {
			return persistence.WriteCenters(w, centers)
		}); err != nil {
			return nil, fmt.Errorf("checkpoint: %w", err)
		}
	}

	r.log = base
	res.Centroids = stream.Finish()
	res.Skipped = r.skipped
	if err := r.save(ctx, cfg.OutputCenters, func(w io.Writer) error {
		return persistence.WriteCenters(w, res.Centroids)
	}); err != nil {
		return nil, fmt.Errorf("output centers: %w", err)
	}
	return res, nil
}

// embedUnit embeds frames and normalizes the result to unit length.
func embedUnit(emb embed.Embedder, frames [][]float64) ([]float64, error) {
	v, err := emb.Embed(frames)
	if err != nil {
		return nil, err
	}
	if err := distance.NormalizeL2InPlace(v); err != nil {
		return nil, err
	}
	return v, nil
}
