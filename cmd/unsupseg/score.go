package main

import (
	"fmt"

	"github.com/hupe1980/unsupseg"
	"github.com/hupe1980/unsupseg/embed"
	"github.com/spf13/cobra"
)

type embedFlags struct {
	frameBatch string
	basisBatch string
	target     string
}

// newEmbedCmd builds conv-embed and dtw-embed.
func newEmbedCmd(a *app, e embedding) *cobra.Command {
	var f embedFlags

	cmd := &cobra.Command{
		Use:   e.prefix() + "-embed",
		Short: "Score segments against a target in " + e.prefix() + " embedding space",
		Long: fmt.Sprintf(`Embed the target and every segment of the frame batch as %s,
normalize to unit length and print the dot product with the target as "dist: <score>".`, e.describe()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			emb, err := e.embedder(f.basisBatch)
			if err != nil {
				return err
			}
			target, err := loadTarget(f.target)
			if err != nil {
				return err
			}
			src, closer, err := openSource(f.frameBatch)
			if err != nil {
				return err
			}
			defer closer.Close()

			_, err = unsupseg.Score(cmd.Context(), src, emb, target, a.opts...)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.frameBatch, "frame-batch", "", "Frame batch of segments to score")
	flags.StringVar(&f.basisBatch, "basis-batch", "", "Frame batch of basis segments")
	flags.StringVar(&f.target, "target", "", "Frame batch whose first segment is the target")
	for _, name := range []string{"frame-batch", "basis-batch", "target"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newDTWCmd(a *app) *cobra.Command {
	var (
		frameBatch string
		target     string
		targetNorm bool
	)

	cmd := &cobra.Command{
		Use:   "dtw",
		Short: "Print the DTW distance of every segment to a target",
		Long: `Align every segment of the frame batch with the target by dynamic time
warping and print the alignment cost as "dist: <distance>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := loadTarget(target)
			if err != nil {
				return err
			}
			src, closer, err := openSource(frameBatch)
			if err != nil {
				return err
			}
			defer closer.Close()

			oracle := embed.DTWOracle{NormalizeByTarget: targetNorm}
			_, err = unsupseg.Distances(cmd.Context(), src, oracle, t, a.opts...)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&frameBatch, "frame-batch", "", "Frame batch of segments to align")
	flags.StringVar(&target, "target", "", "Frame batch whose first segment is the target")
	flags.BoolVar(&targetNorm, "target-norm", false, "Divide each distance by the target length")
	_ = cmd.MarkFlagRequired("frame-batch")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
