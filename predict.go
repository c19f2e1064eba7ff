package unsupseg

import (
	"context"

	"github.com/hupe1980/unsupseg/embed"
	"github.com/hupe1980/unsupseg/framebatch"
	"github.com/hupe1980/unsupseg/internal/kmeans"
)

// PredictResult is the outcome of Predict.
type PredictResult struct {
	// Assignments holds the cluster of every accepted sample, by ordinal.
	Assignments []int
	Clusters    []ClusterReport
	Skipped     int
}

// Predict assigns every segment of src to the nearest of centers without
// updating them. The report receives "sample: <n>", "id: <cluster>" and a
// blank line per accepted sample, then "cluster <k>: <mean distance>" for
// every cluster. Clusters without members report a mean of zero.
func Predict(ctx context.Context, src framebatch.Source, emb embed.Embedder, centers [][]float64, optFns ...Option) (*PredictResult, error) {
	p, err := kmeans.NewPredictor(centers)
	if err != nil {
		return nil, err
	}
	if d := len(centers[0]); d != emb.Dim() {
		return nil, &ErrDimensionMismatch{Expected: emb.Dim(), Actual: d}
	}

	r := newRunner("predict", optFns)
	res := &PredictResult{}

	_, err = r.each(ctx, src, func(n int, seg framebatch.Segment) error {
		vec, err := embedUnit(emb, seg.Frames)
		if err != nil {
			return err
		}
		a, err := p.Assign(vec)
		if err != nil {
			return err
		}
		res.Assignments = append(res.Assignments, a.Cluster)
		r.reportf("sample: %d\nid: %d\n\n", n, a.Cluster)
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Clusters = p.Report()
	for _, c := range res.Clusters {
		r.reportf("cluster %d: %g\n", c.Cluster, c.MeanDistance)
	}
	res.Skipped = r.skipped
	return res, nil
}
