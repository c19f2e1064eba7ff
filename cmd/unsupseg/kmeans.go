package main

import (
	"github.com/hupe1980/unsupseg"
	"github.com/hupe1980/unsupseg/persistence"
	"github.com/spf13/cobra"
)

type kmeansFlags struct {
	frameBatch    string
	basisBatch    string
	k             int
	centers       string
	outputCenters string
	iter          int
	seed          int64
	shuffle       bool
	checkpoint    string
}

// newKMeansCmd builds conv-embed-kmeans and dtw-embed-kmeans.
func newKMeansCmd(a *app, e embedding) *cobra.Command {
	var f kmeansFlags

	cmd := &cobra.Command{
		Use:   e.prefix() + "-embed-kmeans",
		Short: "Cluster " + e.prefix() + " embeddings with streaming k-means",
		Long: `Run --iter passes of streaming k-means over the unit-length embeddings of
every segment. Centroids missing from --centers are seeded from the first
samples of the first pass. The centroids are written to --checkpoint after
every pass and to --output-centers at the end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			emb, err := e.embedder(f.basisBatch)
			if err != nil {
				return err
			}

			var initial [][]float64
			if f.centers != "" {
				if initial, err = persistence.LoadCenters(f.centers, emb.Dim()); err != nil {
					return err
				}
			}

			ix, err := openIndex(f.frameBatch)
			if err != nil {
				return err
			}
			defer ix.Close()

			_, err = unsupseg.Cluster(cmd.Context(), ix, emb, unsupseg.ClusterConfig{
				K:              f.k,
				Iterations:     f.iter,
				Initial:        initial,
				OutputCenters:  f.outputCenters,
				CheckpointPath: f.checkpoint,
				Shuffle:        f.shuffle,
				Seed:           f.seed,
			}, a.opts...)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.frameBatch, "frame-batch", "", "Frame batch of segments to cluster")
	flags.StringVar(&f.basisBatch, "basis-batch", "", "Frame batch of basis segments")
	flags.IntVar(&f.k, "k", 0, "Number of clusters")
	flags.StringVar(&f.centers, "centers", "", "Initial centers file")
	flags.StringVar(&f.outputCenters, "output-centers", "", "File receiving the final centers")
	flags.IntVar(&f.iter, "iter", 0, "Number of passes over the frame batch")
	flags.Int64Var(&f.seed, "seed", unsupseg.DefaultSeed, "Shuffle seed")
	flags.BoolVar(&f.shuffle, "shuffle", false, "Shuffle the sample order once before the first pass")
	flags.StringVar(&f.checkpoint, "checkpoint", unsupseg.DefaultCheckpointPath, "File receiving the centers after every pass")
	for _, name := range []string{"frame-batch", "basis-batch", "k", "output-centers", "iter"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// newKMeansPredictCmd builds conv-embed-kmeans-predict and
// dtw-embed-kmeans-predict.
func newKMeansPredictCmd(a *app, e embedding) *cobra.Command {
	var frameBatch, basisBatch, centers string

	cmd := &cobra.Command{
		Use:   e.prefix() + "-embed-kmeans-predict",
		Short: "Assign " + e.prefix() + " embeddings to the nearest center",
		Long: `Assign every segment to its nearest center and print the sample ordinal and
cluster id, followed by the mean distance of each cluster.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			emb, err := e.embedder(basisBatch)
			if err != nil {
				return err
			}
			c, err := persistence.LoadCenters(centers, emb.Dim())
			if err != nil {
				return err
			}
			src, closer, err := openSource(frameBatch)
			if err != nil {
				return err
			}
			defer closer.Close()

			_, err = unsupseg.Predict(cmd.Context(), src, emb, c, a.opts...)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&frameBatch, "frame-batch", "", "Frame batch of segments to assign")
	flags.StringVar(&basisBatch, "basis-batch", "", "Frame batch of basis segments")
	flags.StringVar(&centers, "centers", "", "Centers file")
	for _, name := range []string{"frame-batch", "basis-batch", "centers"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
