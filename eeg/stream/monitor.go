// Package stream classifies a continuous EEG sample feed at a fixed update
// interval over a sliding window of recent samples.
package stream

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cwbudde/algo-eeg/eeg/classifier"
	"github.com/cwbudde/algo-eeg/eeg/preprocess"
)

// Defaults for a Monitor.
const (
	DefaultWindow         = 2 * time.Second
	DefaultUpdateInterval = time.Second
)

// ErrInvalidConfig is returned by NewMonitor for unusable timing options.
var ErrInvalidConfig = errors.New("stream: invalid configuration")

// Update is one classification of the window, emitted every update
// interval. Err is set when the window could not be classified.
type Update struct {
	Seq     uint64
	Samples int
	Result  classifier.Result
	Err     error
}

// Handler receives updates in Seq order. It runs on the goroutine calling
// Push while the monitor is locked and must not call back into the monitor.
type Handler func(Update)

// Option configures a Monitor.
type Option func(*Monitor)

// WithWindow sets the length of signal classified on each update.
func WithWindow(d time.Duration) Option {
	return func(m *Monitor) { m.window = d }
}

// WithUpdateInterval sets how much new signal triggers an update.
func WithUpdateInterval(d time.Duration) Option {
	return func(m *Monitor) { m.interval = d }
}

// WithSamplingRate sets the feed's sampling rate. The default is the
// classifier's default rate.
func WithSamplingRate(hz int) Option {
	return func(m *Monitor) { m.rate = hz }
}

// Monitor buffers samples from one source and classifies the most recent
// window each time an update interval's worth of samples has arrived.
type Monitor struct {
	clf      *classifier.Classifier
	handler  Handler
	window   time.Duration
	interval time.Duration
	rate     int

	mu      sync.Mutex
	buf     []float64
	size    int
	hop     int
	pending int
	seq     uint64
}

// NewMonitor returns a Monitor that classifies with clf and reports to h.
func NewMonitor(clf *classifier.Classifier, h Handler, opts ...Option) (*Monitor, error) {
	if clf == nil || h == nil {
		return nil, fmt.Errorf("%w: classifier and handler are required", ErrInvalidConfig)
	}

	m := &Monitor{
		clf:      clf,
		handler:  h,
		window:   DefaultWindow,
		interval: DefaultUpdateInterval,
		rate:     clf.SamplingRate(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.interval <= 0 || m.window < m.interval {
		return nil, fmt.Errorf("%w: window %v must not be shorter than update interval %v",
			ErrInvalidConfig, m.window, m.interval)
	}

	if m.rate <= preprocess.MinSamplingRateHz {
		return nil, fmt.Errorf("%w: sampling rate %d Hz", ErrInvalidConfig, m.rate)
	}

	m.size = samplesIn(m.window, m.rate)
	m.hop = samplesIn(m.interval, m.rate)

	if m.size <= preprocess.PadLen || m.hop < 1 {
		return nil, fmt.Errorf("%w: window of %d samples is too short", ErrInvalidConfig, m.size)
	}

	m.buf = make([]float64, 0, m.size)

	return m, nil
}

func samplesIn(d time.Duration, rate int) int {
	return int(d.Seconds() * float64(rate))
}

// WindowSamples returns the window length in samples.
func (m *Monitor) WindowSamples() int { return m.size }

// HopSamples returns the update interval in samples.
func (m *Monitor) HopSamples() int { return m.hop }

// Push appends samples to the window and emits one update for every
// completed update interval. It returns the number of updates emitted.
func (m *Monitor) Push(samples ...float64) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	emitted := 0

	for len(samples) > 0 {
		take := min(m.hop-m.pending, len(samples))
		m.appendSamples(samples[:take])
		samples = samples[take:]
		m.pending += take

		if m.pending == m.hop {
			m.pending = 0
			m.emit()
			emitted++
		}
	}

	return emitted
}

// Reset discards buffered samples. Sequence numbers continue.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.buf = m.buf[:0]
	m.pending = 0
}

func (m *Monitor) appendSamples(s []float64) {
	if over := len(m.buf) + len(s) - m.size; over > 0 {
		kept := copy(m.buf, m.buf[over:])
		m.buf = m.buf[:kept]
	}

	m.buf = append(m.buf, s...)
}

func (m *Monitor) emit() {
	m.seq++

	res, err := m.clf.ProcessSignal(m.buf, m.rate)
	m.handler(Update{
		Seq:     m.seq,
		Samples: len(m.buf),
		Result:  res,
		Err:     err,
	})
}
