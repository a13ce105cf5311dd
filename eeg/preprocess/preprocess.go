// Package preprocess removes drift and high-frequency noise from a raw EEG
// record with a fixed zero-phase Butterworth band-pass.
package preprocess

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-eeg/dsp/filter/biquad"
	"github.com/cwbudde/algo-eeg/dsp/filter/design"
	"github.com/cwbudde/algo-eeg/dsp/filter/zerophase"
	"github.com/cwbudde/algo-eeg/eeg"
)

// Fixed pass band and prototype order.
const (
	LowCutHz  = 0.5
	HighCutHz = 50.0
	Order     = 4
)

// PadLen is the number of odd-extension samples added at each end of the
// record. Records must be strictly longer than PadLen.
const PadLen = 3 * (2*Order + 1)

// MinSamplingRateHz is the largest rejected rate: at or below it the upper
// cutoff reaches Nyquist.
const MinSamplingRateHz = int(2 * HighCutHz)

// Preprocessor filters records and caches the designed cascade per sampling
// rate. The zero value is ready to use and safe for concurrent use.
type Preprocessor struct {
	cache sync.Map // int -> []biquad.Coefficients
}

// New returns a Preprocessor.
func New() *Preprocessor {
	return &Preprocessor{}
}

// Filter returns the band-passed copy of waveform, same length as the input.
//
// Errors wrap eeg.ErrInvalidSamplingRate for rates <= 100 Hz,
// eeg.ErrInsufficientSamples for records of PadLen samples or fewer, and
// eeg.ErrInvalidInput for non-finite samples.
func (p *Preprocessor) Filter(waveform []float64, samplingRateHz int) ([]float64, error) {
	sections, err := p.Sections(samplingRateHz)
	if err != nil {
		return nil, err
	}

	if len(waveform) <= PadLen {
		return nil, fmt.Errorf("%w: %d samples, need more than %d",
			eeg.ErrInsufficientSamples, len(waveform), PadLen)
	}

	for i, v := range waveform {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: waveform[%d] = %g", eeg.ErrInvalidInput, i, v)
		}
	}

	out, err := zerophase.Filter(sections, waveform)
	if errors.Is(err, zerophase.ErrTooShort) {
		return nil, fmt.Errorf("%w: %w", eeg.ErrInsufficientSamples, err)
	}

	return out, err
}

// Sections returns the biquad cascade used at samplingRateHz.
func (p *Preprocessor) Sections(samplingRateHz int) ([]biquad.Coefficients, error) {
	if samplingRateHz <= MinSamplingRateHz {
		return nil, fmt.Errorf("%w: %d Hz, need more than %d Hz",
			eeg.ErrInvalidSamplingRate, samplingRateHz, MinSamplingRateHz)
	}

	if v, ok := p.cache.Load(samplingRateHz); ok {
		return v.([]biquad.Coefficients), nil
	}

	sections, err := design.ButterworthBandpass(LowCutHz, HighCutHz, Order, float64(samplingRateHz))
	if err != nil {
		return nil, fmt.Errorf("%w: %d Hz: %w", eeg.ErrInvalidSamplingRate, samplingRateHz, err)
	}

	v, _ := p.cache.LoadOrStore(samplingRateHz, sections)

	return v.([]biquad.Coefficients), nil
}

var defaultPreprocessor Preprocessor

// Filter filters waveform with a shared package-level Preprocessor.
func Filter(waveform []float64, samplingRateHz int) ([]float64, error) {
	return defaultPreprocessor.Filter(waveform, samplingRateHz)
}
