package eeg

import "errors"

var (
	// ErrInvalidInput reports a malformed request: neither or both of
	// frequency and waveform, or non-finite values.
	ErrInvalidInput = errors.New("eeg: invalid input")
	// ErrInvalidSamplingRate reports a sampling rate that cannot carry the
	// fixed 50 Hz upper filter cutoff.
	ErrInvalidSamplingRate = errors.New("eeg: invalid sampling rate")
	// ErrInsufficientSamples reports a waveform too short for stable
	// zero-phase filtering.
	ErrInsufficientSamples = errors.New("eeg: insufficient samples")
)

// Error kinds returned by Kind.
const (
	KindInvalidInput        = "invalid_input"
	KindInvalidSamplingRate = "invalid_sampling_rate"
	KindInsufficientSamples = "insufficient_samples"
	KindUnknown             = "unknown"
)

// Kind maps err to a stable tag. It returns "" for a nil error and
// KindUnknown for errors outside the taxonomy.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrInvalidSamplingRate):
		return KindInvalidSamplingRate
	case errors.Is(err, ErrInsufficientSamples):
		return KindInsufficientSamples
	default:
		return KindUnknown
	}
}
