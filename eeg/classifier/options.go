package classifier

import (
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-eeg/eeg/band"
)

// DefaultSamplingRateHz is used when a request carries no sampling rate.
const DefaultSamplingRateHz = 256

// Classification paths reported to a Recorder.
const (
	PathFrequency = "frequency"
	PathWaveform  = "waveform"
)

// Recorder receives one observation per classification attempt.
type Recorder interface {
	ObserveClassification(path string, name band.Name, elapsed time.Duration)
	ObserveError(path, kind string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveClassification(string, band.Name, time.Duration) {}
func (nopRecorder) ObserveError(string, string) {}

// Option configures a Classifier.
type Option func(*Classifier)

// WithTable replaces the default band table.
func WithTable(t *band.Table) Option {
	return func(c *Classifier) {
		c.table = t
	}
}

// WithSamplingRate sets the rate assumed for waveforms submitted without one.
func WithSamplingRate(hz int) Option {
	return func(c *Classifier) {
		c.samplingRate = hz
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder installs a metrics hook.
func WithRecorder(r Recorder) Option {
	return func(c *Classifier) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithWorkers bounds the number of concurrent requests in ClassifyBatch.
// Zero or negative means one worker per CPU.
func WithWorkers(n int) Option {
	return func(c *Classifier) {
		c.workers = n
	}
}
