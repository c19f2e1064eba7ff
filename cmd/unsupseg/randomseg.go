package main

import (
	"github.com/hupe1980/unsupseg"
	"github.com/spf13/cobra"
)

func newRandomSegCmd(a *app) *cobra.Command {
	var (
		frameBatch string
		cfg        unsupseg.RandomSegConfig
	)

	cmd := &cobra.Command{
		Use:   "random-seg",
		Short: "Sample random excerpts from a frame batch",
		Long: `Write --nsegs excerpts to stdout as a frame batch. Excerpt n is cut from
segment n modulo the batch size with a duration drawn from --duration.`,
		Example:     `  unsupseg random-seg --frame-batch train.logmel --nsegs 1000 --duration 20,30,40 > basis.logmel`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationOutput: outputFrameBatch},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ix, err := openIndex(frameBatch)
			if err != nil {
				return err
			}
			defer ix.Close()

			_, err = unsupseg.RandomSegments(cmd.Context(), ix, cfg, a.stdout, a.opts...)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&frameBatch, "frame-batch", "", "Frame batch to sample from")
	flags.IntVar(&cfg.Count, "nsegs", 0, "Number of excerpts")
	flags.IntSliceVar(&cfg.Durations, "duration", nil, "Comma-separated excerpt lengths in frames")
	flags.Int64Var(&cfg.Seed, "seed", unsupseg.DefaultSeed, "Random seed")
	for _, name := range []string{"frame-batch", "nsegs", "duration"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
