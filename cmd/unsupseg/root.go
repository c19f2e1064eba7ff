package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/hupe1980/unsupseg"
	"github.com/hupe1980/unsupseg/metrics/prom"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// annotationOutput marks commands whose stdout is a frame batch. They do not
// echo the command line so their output stays parseable.
const annotationOutput = "unsupseg/output"

const outputFrameBatch = "frame-batch"

// errUsage is returned after usage has been printed for a bare invocation.
var errUsage = errors.New("usage")

// app holds the state of one invocation.
type app struct {
	argv   []string
	stdout io.Writer
	stderr io.Writer

	configPath      string
	logLevel        string
	logFormat       string
	publishURL      string
	metricsTextfile string

	collector *prom.Collector
	opts      []unsupseg.Option
}

// run executes the command line in argv and returns the process exit code.
func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	a := &app{argv: argv, stdout: stdout, stderr: stderr}

	root := newRootCmd(a)
	root.SetArgs(argv[1:])
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if werr := a.writeMetrics(); werr != nil && err == nil {
		err = werr
	}
	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "unsupseg",
		Short: "Unsupervised acoustic pattern discovery",
		Long: `unsupseg embeds variable-length speech segments into fixed-length vectors,
clusters them with streaming k-means, learns convolutional filters from
recurring spectro-temporal patches and samples random excerpts.

Every driver reads frame batches: text files of "<header>" lines followed by
frame rows and terminated by ".". Files ending in .zst, .gz or .lz4 are
decompressed transparently.`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			cmd.SilenceUsage = true
			return errUsage
		},
		PersistentPreRunE: a.setup,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML file supplying values for flags not given on the command line")
	pf.StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", string(unsupseg.LogText), "Log record format (text, json)")
	pf.StringVar(&a.publishURL, "publish", "", "Publish written files to file:///dir, s3://bucket/prefix or minio://host/bucket/prefix")
	pf.StringVar(&a.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file when the run ends")

	root.AddCommand(
		newEmbedCmd(a, convEmbed),
		newEmbedCmd(a, dtwEmbed),
		newDTWCmd(a),
		newKMeansCmd(a, convEmbed),
		newKMeansCmd(a, dtwEmbed),
		newKMeansPredictCmd(a, convEmbed),
		newKMeansPredictCmd(a, dtwEmbed),
		newLearnCmd(a),
		newSelectCmd(a),
		newFiltersInitCmd(a),
		newRandomSegCmd(a),
	)
	return root
}

// setup runs before every subcommand. It fills unset flags from --config,
// validates required flags and builds the run options.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if !cmd.HasParent() || cmd.Name() == "help" {
		return nil
	}
	if a.configPath != "" {
		if err := applyConfig(cmd, a.configPath); err != nil {
			return err
		}
	}
	if err := cmd.ValidateRequiredFlags(); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", a.logLevel, err)
	}
	logger, err := unsupseg.NewFormatLogger(a.stderr, unsupseg.LogFormat(a.logFormat), level)
	if err != nil {
		return fmt.Errorf("invalid --log-format: %w", err)
	}

	report := a.stdout
	if writesFrameBatch(cmd) {
		report = a.stderr
	} else {
		fmt.Fprintln(a.stdout, strings.Join(a.argv, " "))
	}

	a.opts = []unsupseg.Option{
		unsupseg.WithLogger(logger),
		unsupseg.WithReport(report),
		unsupseg.WithProgress(a.stderr),
	}

	if a.publishURL != "" {
		store, err := openStore(cmd.Context(), a.publishURL)
		if err != nil {
			return fmt.Errorf("--publish: %w", err)
		}
		a.opts = append(a.opts, unsupseg.WithPublisher(store))
	}

	if a.metricsTextfile != "" {
		a.collector = prom.NewCollector()
		a.opts = append(a.opts, unsupseg.WithMetricsCollector(a.collector))
	}
	return nil
}

func (a *app) writeMetrics() error {
	if a.collector == nil {
		return nil
	}
	if err := a.collector.WriteTextfile(a.metricsTextfile); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

func writesFrameBatch(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationOutput] == outputFrameBatch
}

// applyConfig sets every flag of cmd that was not given on the command line
// and has a key in the YAML mapping at path. Keys naming flags of other
// commands are ignored so one file can serve several drivers.
func applyConfig(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := cmd.Flags().Set(name, configValue(values[name])); err != nil {
			return fmt.Errorf("config %s: %w", name, err)
		}
	}
	return nil
}

func configValue(v any) string {
	list, ok := v.([]any)
	if !ok {
		return fmt.Sprint(v)
	}
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = fmt.Sprint(item)
	}
	return strings.Join(parts, ",")
}
