package classifier

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-eeg/eeg"
	"github.com/cwbudde/algo-eeg/eeg/band"
	"github.com/cwbudde/algo-eeg/eeg/bandpower"
	"github.com/cwbudde/algo-eeg/eeg/preprocess"
	"github.com/cwbudde/algo-eeg/eeg/spectral"
)

// ErrInvalidConfig is returned by New for unusable options.
var ErrInvalidConfig = errors.New("classifier: invalid configuration")

// Request is one classification input. Exactly one of FrequencyHz and
// Waveform must be set. SamplingRateHz applies to Waveform only; zero means
// the classifier's default rate and a negative value is invalid.
type Request struct {
	FrequencyHz    *float64  `json:"frequency_hz,omitempty"`
	Waveform       []float64 `json:"waveform,omitempty"`
	SamplingRateHz int       `json:"sampling_rate_hz,omitempty"`
}

// FrequencyRequest returns a scalar request.
func FrequencyRequest(hz float64) Request {
	return Request{FrequencyHz: &hz}
}

// WaveformRequest returns a waveform request.
func WaveformRequest(samples []float64, samplingRateHz int) Request {
	return Request{Waveform: samples, SamplingRateHz: samplingRateHz}
}

// Result is the outcome of a successful classification. For scalar input
// DominantFrequencyHz echoes the input and BandPowers is nil. For waveform
// input BandPowers holds one percentage per band, summing to 100 or all 0.
type Result struct {
	Band                band.Name             `json:"band"`
	DominantFrequencyHz *float64              `json:"dominant_frequency_hz,omitempty"`
	BandPowers          map[band.Name]float64 `json:"band_powers,omitempty"`
}

// Classifier is the brain-state classification facade.
type Classifier struct {
	table        *band.Table
	samplingRate int
	workers      int
	pre          *preprocess.Preprocessor
	logger       *zap.Logger
	recorder     Recorder
}

// New returns a Classifier using the default band table and a 256 Hz
// default sampling rate unless overridden.
func New(opts ...Option) (*Classifier, error) {
	c := &Classifier{
		table:        band.Default(),
		samplingRate: DefaultSamplingRateHz,
		pre:          preprocess.New(),
		logger:       zap.NewNop(),
		recorder:     nopRecorder{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.table == nil {
		return nil, fmt.Errorf("%w: nil band table", ErrInvalidConfig)
	}

	if c.samplingRate <= preprocess.MinSamplingRateHz {
		return nil, fmt.Errorf("%w: default sampling rate %d Hz: %w",
			ErrInvalidConfig, c.samplingRate, eeg.ErrInvalidSamplingRate)
	}

	if c.workers <= 0 {
		c.workers = runtime.GOMAXPROCS(0)
	}

	return c, nil
}

// Table returns the band table in use.
func (c *Classifier) Table() *band.Table { return c.table }

// SamplingRate returns the default sampling rate in Hz.
func (c *Classifier) SamplingRate() int { return c.samplingRate }

// Workers returns the ClassifyBatch concurrency limit.
func (c *Classifier) Workers() int { return c.workers }

// ClassifyFrequency returns the band containing freqHz. Out-of-range input
// saturates to the last band.
func (c *Classifier) ClassifyFrequency(freqHz float64) band.Name {
	start := time.Now()
	name := c.table.Classify(freqHz)
	c.recorder.ObserveClassification(PathFrequency, name, time.Since(start))

	c.logger.Debug("classified frequency",
		zap.Float64("frequency_hz", freqHz),
		zap.String("band", string(name)),
	)

	return name
}

// StateInfo returns the metadata of the band called name.
func (c *Classifier) StateInfo(name band.Name) (band.Band, bool) {
	return c.table.Info(name)
}

// ProcessSignal classifies a raw waveform. A zero samplingRateHz selects the
// default rate; negative rates are rejected like any other rate at or below
// 100 Hz.
func (c *Classifier) ProcessSignal(waveform []float64, samplingRateHz int) (Result, error) {
	if samplingRateHz == 0 {
		samplingRateHz = c.samplingRate
	}

	start := time.Now()

	res, err := c.processSignal(waveform, samplingRateHz)
	if err != nil {
		kind := eeg.Kind(err)
		c.recorder.ObserveError(PathWaveform, kind)
		c.logger.Warn("waveform rejected",
			zap.Int("samples", len(waveform)),
			zap.Int("sampling_rate_hz", samplingRateHz),
			zap.String("error_kind", kind),
			zap.Error(err),
		)

		return Result{}, err
	}

	c.recorder.ObserveClassification(PathWaveform, res.Band, time.Since(start))
	c.logger.Debug("classified waveform",
		zap.Int("samples", len(waveform)),
		zap.Int("sampling_rate_hz", samplingRateHz),
		zap.Float64("dominant_hz", *res.DominantFrequencyHz),
		zap.String("band", string(res.Band)),
	)

	return res, nil
}

func (c *Classifier) processSignal(waveform []float64, samplingRateHz int) (Result, error) {
	filtered, err := c.pre.Filter(waveform, samplingRateHz)
	if err != nil {
		return Result{}, err
	}

	psd, err := spectral.Analyze(filtered, samplingRateHz)
	if err != nil {
		return Result{}, err
	}

	powers, err := bandpower.Calculate(c.table, psd.Frequencies, psd.Power)
	if err != nil {
		return Result{}, err
	}

	dominant := psd.DominantHz

	return Result{
		Band:                c.table.Classify(dominant),
		DominantFrequencyHz: &dominant,
		BandPowers:          powers,
	}, nil
}

// Classify validates req and dispatches it to the scalar or waveform path.
func (c *Classifier) Classify(req Request) (Result, error) {
	hasFreq, hasWave := req.FrequencyHz != nil, req.Waveform != nil

	switch {
	case hasFreq && hasWave:
		return Result{}, c.reject(PathFrequency, fmt.Errorf("%w: both frequency and waveform given", eeg.ErrInvalidInput))
	case !hasFreq && !hasWave:
		return Result{}, c.reject(PathFrequency, fmt.Errorf("%w: neither frequency nor waveform given", eeg.ErrInvalidInput))
	case hasWave:
		return c.ProcessSignal(req.Waveform, req.SamplingRateHz)
	}

	f := *req.FrequencyHz
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Result{}, c.reject(PathFrequency, fmt.Errorf("%w: frequency %g", eeg.ErrInvalidInput, f))
	}

	return Result{
		Band:                c.ClassifyFrequency(f),
		DominantFrequencyHz: &f,
	}, nil
}

func (c *Classifier) reject(path string, err error) error {
	kind := eeg.Kind(err)
	c.recorder.ObserveError(path, kind)
	c.logger.Warn("request rejected", zap.String("error_kind", kind), zap.Error(err))

	return err
}
