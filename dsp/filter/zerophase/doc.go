// Package zerophase runs a biquad cascade forward and then backward over a
// finite record, so the result has the squared magnitude response of the
// cascade and no phase shift.
//
// Edges are handled like the classic filtfilt scheme: the record is extended
// by an odd reflection of PadLen samples at each end and every pass starts
// from the steady-state delay-line contents for its first sample. Both
// measures keep start-up transients out of the returned samples.
package zerophase
