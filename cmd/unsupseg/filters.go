package main

import (
	"github.com/hupe1980/unsupseg"
	"github.com/hupe1980/unsupseg/patch"
	"github.com/hupe1980/unsupseg/persistence"
	"github.com/spf13/cobra"
)

func newLearnCmd(a *app) *cobra.Command {
	var (
		frameBatch  string
		param       string
		outputParam string
		k           int
	)

	cmd := &cobra.Command{
		Use:   "conv-kmeans-learn",
		Short: "Learn conv filters with one k-means step over best-matching patches",
		Long: `For every segment find the best-matching patch of each filter. Each filter is
replaced by the mean of its --k closest patches over the whole batch and the
filter bank is written to --output-param.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters, err := persistence.LoadParam(param)
			if err != nil {
				return err
			}
			src, closer, err := openSource(frameBatch)
			if err != nil {
				return err
			}
			defer closer.Close()

			_, err = unsupseg.LearnFilters(cmd.Context(), src, filters, unsupseg.LearnConfig{
				K:           k,
				OutputParam: outputParam,
			}, a.opts...)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&frameBatch, "frame-batch", "", "Frame batch of training segments")
	flags.StringVar(&param, "param", "", "Filter bank to start from")
	flags.StringVar(&outputParam, "output-param", "", "File receiving the learned filter bank")
	flags.IntVar(&k, "k", patch.DefaultK, "Patches averaged per filter")
	for _, name := range []string{"frame-batch", "param", "output-param"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newSelectCmd(a *app) *cobra.Command {
	var (
		frameBatch string
		param      string
		cluster    int
		k          int
	)

	cmd := &cobra.Command{
		Use:   "conv-kmeans-predict",
		Short: "Print the segments that match one filter best",
		Long: `Score every segment by its best patch distance to each filter, take the --k-th
smallest score of filter --cluster as a threshold and write the segments
strictly below it to stdout as a frame batch.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationOutput: outputFrameBatch},
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters, err := persistence.LoadParam(param)
			if err != nil {
				return err
			}
			ix, err := openIndex(frameBatch)
			if err != nil {
				return err
			}
			defer ix.Close()

			_, err = unsupseg.SelectMembers(cmd.Context(), ix, filters, unsupseg.SelectConfig{
				K:       k,
				Channel: cluster,
				Output:  a.stdout,
			}, a.opts...)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&frameBatch, "frame-batch", "", "Frame batch of segments to select from")
	flags.StringVar(&param, "param", "", "Filter bank")
	flags.IntVar(&cluster, "cluster", 0, "Filter whose members are printed")
	flags.IntVar(&k, "k", patch.DefaultK, "Rank of the selection threshold")
	for _, name := range []string{"frame-batch", "param", "cluster"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newFiltersInitCmd(a *app) *cobra.Command {
	var (
		frameBatch  string
		outputParam string
		cfg         unsupseg.InitConfig
	)

	cmd := &cobra.Command{
		Use:   "conv-filters-init",
		Short: "Initialize a filter bank from random patches",
		Long: `Copy --channels random --height × --width patches out of the frame batch into a
filter bank and write it to --output-param, ready for conv-kmeans-learn.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ix, err := openIndex(frameBatch)
			if err != nil {
				return err
			}
			defer ix.Close()

			cfg.OutputParam = outputParam
			_, err = unsupseg.InitFilters(cmd.Context(), ix, cfg, a.opts...)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&frameBatch, "frame-batch", "", "Frame batch to sample patches from")
	flags.StringVar(&outputParam, "output-param", "", "File receiving the filter bank")
	flags.IntVar(&cfg.Height, "height", 0, "Filter height in frames")
	flags.IntVar(&cfg.Width, "width", 0, "Filter width in features")
	flags.IntVar(&cfg.Channels, "channels", 0, "Number of filters")
	flags.Int64Var(&cfg.Seed, "seed", unsupseg.DefaultSeed, "Random seed")
	for _, name := range []string{"frame-batch", "output-param", "height", "width", "channels"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
