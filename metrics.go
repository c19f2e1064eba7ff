package unsupseg

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// See metrics/prom for a Prometheus implementation.
type MetricsCollector interface {
	// RecordSample is called after each sample is embedded or scanned.
	// err is non-nil when the sample was skipped.
	RecordSample(duration time.Duration, err error)

	// RecordPass is called after each clustering or filter-learning pass.
	// empty is the number of clusters that received no samples.
	RecordPass(samples int, loss float64, empty int, duration time.Duration)

	// RecordCheckpoint is called after each checkpoint or final output write.
	RecordCheckpoint(duration time.Duration, err error)

	// RecordPublish is called after each upload to the blob store.
	RecordPublish(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSample(time.Duration, error)           {}
func (NoopMetricsCollector) RecordPass(int, float64, int, time.Duration) {}
func (NoopMetricsCollector) RecordCheckpoint(time.Duration, error)       {}
func (NoopMetricsCollector) RecordPublish(time.Duration, error)          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	SampleCount      atomic.Int64
	SampleSkipped    atomic.Int64
	SampleTotalNanos atomic.Int64
	PassCount        atomic.Int64
	EmptyClusters    atomic.Int64
	lastLoss         atomic.Uint64
	CheckpointCount  atomic.Int64
	CheckpointErrors atomic.Int64
	PublishCount     atomic.Int64
	PublishErrors    atomic.Int64
}

// RecordSample implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSample(duration time.Duration, err error) {
	b.SampleCount.Add(1)
	b.SampleTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SampleSkipped.Add(1)
	}
}

// RecordPass implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPass(samples int, loss float64, empty int, duration time.Duration) {
	b.PassCount.Add(1)
	b.EmptyClusters.Add(int64(empty))
	b.lastLoss.Store(math.Float64bits(loss))
}

// RecordCheckpoint implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCheckpoint(duration time.Duration, err error) {
	b.CheckpointCount.Add(1)
	if err != nil {
		b.CheckpointErrors.Add(1)
	}
}

// RecordPublish implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPublish(duration time.Duration, err error) {
	b.PublishCount.Add(1)
	if err != nil {
		b.PublishErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SampleCount:      b.SampleCount.Load(),
		SampleSkipped:    b.SampleSkipped.Load(),
		SampleAvgNanos:   b.getAvgSampleNanos(),
		PassCount:        b.PassCount.Load(),
		EmptyClusters:    b.EmptyClusters.Load(),
		LastLoss:         math.Float64frombits(b.lastLoss.Load()),
		CheckpointCount:  b.CheckpointCount.Load(),
		CheckpointErrors: b.CheckpointErrors.Load(),
		PublishCount:     b.PublishCount.Load(),
		PublishErrors:    b.PublishErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSampleNanos() int64 {
	count := b.SampleCount.Load()
	if count == 0 {
		return 0
	}
	return b.SampleTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SampleCount      int64
	SampleSkipped    int64
	SampleAvgNanos   int64
	PassCount        int64
	EmptyClusters    int64
	LastLoss         float64
	CheckpointCount  int64
	CheckpointErrors int64
	PublishCount     int64
	PublishErrors    int64
}
