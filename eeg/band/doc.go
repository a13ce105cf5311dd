// Package band defines the ordered table of EEG frequency bands and the
// threshold lookup that maps a frequency to a band.
//
// A [Table] is immutable once [NewTable] has validated it, so one table can
// be shared by any number of goroutines. Ranges are half-open: a band
// contains f when LowerHz <= f < UpperHz. Gaps between bands are allowed.
//
// Lookup saturates: a frequency that matches no band (above the table, in a
// gap, or NaN) is assigned to the last band. This keeps the classifier total
// but silently maps out-of-range input to the highest state. Negative
// frequencies are clamped to 0 Hz.
package band
