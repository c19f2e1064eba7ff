package unsupseg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/hupe1980/unsupseg/blobstore"
	"github.com/hupe1980/unsupseg/framebatch"
	"github.com/hupe1980/unsupseg/persistence"
	"golang.org/x/time/rate"
)

const progressInterval = 250 * time.Millisecond

// runner carries the per-run options shared by every driver.
type runner struct {
	options
	log      *Logger
	sometime rate.Sometimes
	skipped  int
}

func newRunner(op string, optFns []Option) *runner {
	o := applyOptions(optFns)
	return &runner{
		options:  o,
		log:      o.logger.WithOp(op),
		sometime: rate.Sometimes{First: 1, Interval: progressInterval},
	}
}

func (r *runner) reportf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.report, format, args...)
}

func (r *runner) tick(n int) {
	r.sometime.Do(func() {
		_, _ = fmt.Fprintf(r.progress, "sample: %d\r", n)
	})
}

// each feeds every segment of src to fn. The ordinal passed to fn counts
// accepted samples only: a skippable error from fn is logged and the segment
// does not consume an ordinal. Any other error stops the scan.
func (r *runner) each(ctx context.Context, src framebatch.Source, fn func(ordinal int, seg framebatch.Segment) error) (int, error) {
	n, read := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		seg, err := src.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}

		start := time.Now()
		err = fn(n, seg)
		r.metrics.RecordSample(time.Since(start), err)
		read++
		if err != nil {
			if !IsSkippable(err) {
				return n, fmt.Errorf("segment %d (%s): %w", read-1, seg.Header, err)
			}
			r.skipped++
			r.log.LogSkip(ctx, read-1, seg.Header, err)
			continue
		}
		r.tick(n)
		n++
	}
}

// save writes path atomically and publishes it when a store is configured.
func (r *runner) save(ctx context.Context, path string, write func(io.Writer) error) error {
	start := time.Now()
	err := persistence.SaveToFile(r.fs, path, write)
	r.metrics.RecordCheckpoint(time.Since(start), err)
	r.log.LogCheckpoint(ctx, path, err)
	if err != nil {
		return err
	}
	return r.publish(ctx, path)
}

func (r *runner) publish(ctx context.Context, path string) error {
	if r.store == nil {
		return nil
	}
	name := filepath.Base(path)
	start := time.Now()
	err := blobstore.PublishFile(ctx, r.store, name, path)
	r.metrics.RecordPublish(time.Since(start), err)
	r.log.LogPublish(ctx, name, err)
	if err != nil {
		return fmt.Errorf("publish %s: %w", name, err)
	}
	return nil
}
