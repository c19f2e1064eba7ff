// Package prom exports unsupseg run metrics through Prometheus.
//
// Batch runs are short-lived, so the collector is meant to be written to a
// node_exporter textfile at the end of a run rather than scraped:
//
//	c := prom.NewCollector()
//	_, err := unsupseg.Cluster(ctx, ix, emb, cfg, unsupseg.WithMetricsCollector(c))
//	_ = c.WriteTextfile("/var/lib/node_exporter/unsupseg.prom")
package prom

import (
	"time"

	"github.com/hupe1980/unsupseg"
	"github.com/prometheus/client_golang/prometheus"
)

var _ unsupseg.MetricsCollector = (*Collector)(nil)

// Collector implements unsupseg.MetricsCollector on a private registry.
type Collector struct {
	registry *prometheus.Registry

	sampleLatency *prometheus.HistogramVec
	samples       *prometheus.CounterVec
	passes        prometheus.Counter
	passLoss      prometheus.Gauge
	passSeconds   prometheus.Histogram
	emptyClusters prometheus.Counter
	checkpoints   *prometheus.CounterVec
	publishes     *prometheus.CounterVec
}

// NewCollector creates a Collector with all metrics registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		sampleLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "unsupseg_sample_latency_seconds",
			Help:    "Time spent embedding or scanning one sample",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"status"}),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "unsupseg_samples_total",
			Help: "Samples processed, by status",
		}, []string{"status"}),
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unsupseg_passes_total",
			Help: "Completed clustering or filter-learning passes",
		}),
		passLoss: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "unsupseg_pass_loss",
			Help: "Mean loss of the most recent pass",
		}),
		passSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "unsupseg_pass_duration_seconds",
			Help:    "Duration of a pass",
			Buckets: prometheus.DefBuckets,
		}),
		emptyClusters: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unsupseg_empty_clusters_total",
			Help: "Clusters left unchanged because they received no samples",
		}),
		checkpoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "unsupseg_checkpoints_total",
			Help: "Checkpoint and output writes, by status",
		}, []string{"status"}),
		publishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "unsupseg_publishes_total",
			Help: "Uploads to the blob store, by status",
		}, []string{"status"}),
	}

	c.registry.MustRegister(
		c.sampleLatency,
		c.samples,
		c.passes,
		c.passLoss,
		c.passSeconds,
		c.emptyClusters,
		c.checkpoints,
		c.publishes,
	)
	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func status(err error, failure string) string {
	if err != nil {
		return failure
	}
	return "success"
}

// RecordSample implements unsupseg.MetricsCollector.
func (c *Collector) RecordSample(d time.Duration, err error) {
	s := status(err, "skipped")
	c.sampleLatency.WithLabelValues(s).Observe(d.Seconds())
	c.samples.WithLabelValues(s).Inc()
}

// RecordPass implements unsupseg.MetricsCollector.
func (c *Collector) RecordPass(samples int, loss float64, empty int, d time.Duration) {
	c.passes.Inc()
	c.passLoss.Set(loss)
	c.passSeconds.Observe(d.Seconds())
	c.emptyClusters.Add(float64(empty))
}

// RecordCheckpoint implements unsupseg.MetricsCollector.
func (c *Collector) RecordCheckpoint(_ time.Duration, err error) {
	c.checkpoints.WithLabelValues(status(err, "error")).Inc()
}

// RecordPublish implements unsupseg.MetricsCollector.
func (c *Collector) RecordPublish(_ time.Duration, err error) {
	c.publishes.WithLabelValues(status(err, "error")).Inc()
}

// WriteTextfile writes the current metrics in the text exposition format,
// replacing path atomically.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
