package unsupseg

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/hupe1980/unsupseg/blobstore"
	ifs "github.com/hupe1980/unsupseg/internal/fs"
)

type options struct {
	logger  *Logger
	metrics MetricsCollector

	report   io.Writer // sample ids, running and per-pass loss
	progress io.Writer // throttled "sample: n" lines

	fs    ifs.FileSystem
	store blobstore.Store
	runID string
}

// Option configures a driver run.
type Option func(*options)

// WithMetricsCollector records samples, passes and writes in mc.
// A nil collector disables metrics.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) { o.metrics = mc }
}

// WithLogger sets the structured logger. A nil logger disables logging.
//
//	logger, _ := unsupseg.NewFormatLogger(os.Stderr, unsupseg.LogJSON, slog.LevelInfo)
//	_, err := unsupseg.Cluster(ctx, ix, emb, cfg, unsupseg.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithLogLevel logs text records at or above level to stderr.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger, _ = NewFormatLogger(os.Stderr, LogText, level)
	}
}

// WithReport sets the destination of the textual report. The report is
// discarded by default.
func WithReport(w io.Writer) Option {
	return func(o *options) { o.report = w }
}

// WithProgress sets the destination of the progress counter written during
// long scans.
func WithProgress(w io.Writer) Option {
	return func(o *options) { o.progress = w }
}

// WithFileSystem replaces the file system used for checkpoints and outputs.
func WithFileSystem(fsys ifs.FileSystem) Option {
	return func(o *options) { o.fs = fsys }
}

// WithPublisher uploads every file the run writes to store once the local
// write succeeded. Objects are named after the base name of the file.
func WithPublisher(store blobstore.Store) Option {
	return func(o *options) { o.store = store }
}

// WithRunID sets the run identifier attached to log records. Runs without
// one get a random UUID.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

func applyOptions(optFns []Option) options {
	var o options
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	o.metrics = orDefault[MetricsCollector](o.metrics, NoopMetricsCollector{})
	o.report = orDefault[io.Writer](o.report, io.Discard)
	o.progress = orDefault[io.Writer](o.progress, io.Discard)
	o.fs = orDefault(o.fs, ifs.Default)
	o.runID = orDefault(o.runID, uuid.NewString())
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	o.logger = o.logger.WithRunID(o.runID)
	return o
}
