package unsupseg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Logger is the structured logger shared by the drivers. Records belong on
// stderr; stdout carries the report.
type Logger struct {
	*slog.Logger
}

// LogFormat is the record encoding used by NewFormatLogger.
type LogFormat string

const (
	LogText LogFormat = "text"
	LogJSON LogFormat = "json"
)

// NewLogger wraps handler. A nil handler discards every record.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.DiscardHandler
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewFormatLogger writes records at or above level to w in the given format.
// The empty format selects LogText.
func NewFormatLogger(w io.Writer, format LogFormat, level slog.Level) (*Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case LogText, "":
		return NewLogger(slog.NewTextHandler(w, opts)), nil
	case LogJSON:
		return NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// NoopLogger returns a Logger that drops everything.
func NoopLogger() *Logger { return NewLogger(nil) }

func (l *Logger) with(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// WithRunID tags every record with the run identifier.
func (l *Logger) WithRunID(id string) *Logger { return l.with("run_id", id) }

// WithOp tags every record with the driver name.
func (l *Logger) WithOp(op string) *Logger { return l.with("op", op) }

// WithPass tags every record with a pass number.
func (l *Logger) WithPass(pass int) *Logger { return l.with("pass", pass) }

// LogSkip records a segment that could not be embedded.
func (l *Logger) LogSkip(ctx context.Context, sample int, header string, err error) {
	l.WarnContext(ctx, "sample skipped", "sample", sample, "header", header, "error", err)
}

// LogPass records the end of a pass. Empty clusters raise it to a warning.
func (l *Logger) LogPass(ctx context.Context, pass, samples int, loss float64, empty []int) {
	attrs := []any{"pass", pass, "samples", samples, "loss", loss}
	if len(empty) == 0 {
		l.InfoContext(ctx, "pass completed", attrs...)
		return
	}
	l.WarnContext(ctx, "pass completed with empty clusters", append(attrs, "empty", empty, "error", ErrEmptyCluster)...)
}

// LogCheckpoint records an atomic write of a checkpoint or output file.
func (l *Logger) LogCheckpoint(ctx context.Context, filename string, err error) {
	l.outcome(ctx, slog.LevelDebug, "checkpoint saved", "checkpoint failed", "filename", filename, err)
}

// LogPublish records an upload to the blob store.
func (l *Logger) LogPublish(ctx context.Context, name string, err error) {
	l.outcome(ctx, slog.LevelInfo, "published", "publish failed", "name", name, err)
}

func (l *Logger) outcome(ctx context.Context, level slog.Level, ok, failed, key, value string, err error) {
	if err != nil {
		l.ErrorContext(ctx, failed, key, value, "error", err)
		return
	}
	l.Log(ctx, level, ok, key, value)
}
