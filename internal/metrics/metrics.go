// Package metrics exposes classification counters and latencies as
// Prometheus collectors on a private registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cwbudde/algo-eeg/eeg/band"
)

const namespace = "brainstate"

// Recorder implements classifier.Recorder on top of Prometheus collectors.
type Recorder struct {
	registry *prometheus.Registry

	classifications *prometheus.CounterVec
	errors          *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Successful classifications by band and input path.",
		}, []string{"band", "path"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classification_errors_total",
			Help:      "Rejected classification requests by input path and error kind.",
		}, []string{"path", "kind"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classification_seconds",
			Help:      "Time spent classifying one request.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"path"}),
	}

	r.registry.MustRegister(r.classifications, r.errors, r.latency)

	return r
}

// ObserveClassification counts a successful classification.
func (r *Recorder) ObserveClassification(path string, name band.Name, elapsed time.Duration) {
	r.classifications.WithLabelValues(string(name), path).Inc()
	r.latency.WithLabelValues(path).Observe(elapsed.Seconds())
}

// ObserveError counts a rejected request.
func (r *Recorder) ObserveError(path, kind string) {
	r.errors.WithLabelValues(path, kind).Inc()
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteToTextfile writes the current values in the node-exporter textfile
// format.
func (r *Recorder) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
