// Package classifier maps a scalar frequency or a raw EEG waveform to one of
// the bands of a [band.Table].
//
// Both entry points converge on the same threshold lookup. The waveform path
// filters the record (0.5-50 Hz zero-phase Butterworth), takes its power
// spectrum, classifies the dominant frequency and reports per-band power
// shares alongside the result.
//
// A [Classifier] holds only immutable configuration and may be shared by
// any number of goroutines.
package classifier
