// Package spectral computes the one-sided power spectrum of a filtered EEG
// record and picks its dominant frequency.
package spectral

import (
	"fmt"

	"github.com/cwbudde/algo-eeg/dsp/spectrum"
	"github.com/cwbudde/algo-eeg/eeg"
)

// Spectrum is the strictly positive half of a record's power spectrum.
// Frequencies and Power have equal length; bin k sits at k*fs/n Hz.
type Spectrum struct {
	DominantHz  float64
	Frequencies []float64
	Power       []float64
}

// Analyze transforms the whole record without windowing or zero padding and
// keeps bins 1 .. (n-1)/2. The dominant frequency is the bin of maximum
// power, ties resolving to the lowest frequency. An all-zero record reports
// the first retained bin.
func Analyze(filtered []float64, samplingRateHz int) (Spectrum, error) {
	if samplingRateHz <= 0 {
		return Spectrum{}, fmt.Errorf("%w: %d Hz", eeg.ErrInvalidSamplingRate, samplingRateHz)
	}

	if len(filtered) < 3 {
		return Spectrum{}, fmt.Errorf("%w: %d samples leave no positive-frequency bins",
			eeg.ErrInsufficientSamples, len(filtered))
	}

	full, err := spectrum.RealFFT(filtered)
	if err != nil {
		return Spectrum{}, fmt.Errorf("%w: %w", eeg.ErrInvalidInput, err)
	}

	freqs, bins := spectrum.PositiveBins(full, float64(samplingRateHz))
	power := spectrum.Power(bins)

	return Spectrum{
		DominantHz:  freqs[spectrum.PeakIndex(power)],
		Frequencies: freqs,
		Power:       power,
	}, nil
}

// Resolution returns the bin spacing in Hz for a record of n samples.
func Resolution(n, samplingRateHz int) float64 {
	if n <= 0 {
		return 0
	}

	return float64(samplingRateHz) / float64(n)
}
