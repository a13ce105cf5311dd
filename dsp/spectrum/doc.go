// Package spectrum turns a real-valued record into a one-sided power
// spectrum.
//
// [RealFFT] transforms the whole record without windowing or zero padding,
// so bin k sits at exactly k*sampleRate/n. Power-of-two lengths run on an
// algo-fft plan; any other length falls back to a Bluestein/mixed-radix
// transform, which keeps the bin grid tied to the record length.
// [PositiveBins], [Power] and [PeakIndex] extract the strictly positive
// frequencies, their squared magnitudes and the strongest bin.
package spectrum
