// Package eeg holds the error taxonomy shared by the brain-state
// classification stages.
//
// The stages live in sub-packages, leaves first:
//
//   - band: the immutable table of named frequency bands
//   - preprocess: fixed 0.5-50 Hz zero-phase band-pass filtering
//   - spectral: power spectrum and dominant frequency
//   - bandpower: per-band power shares in percent
//   - classifier: the facade that ties the stages together
//   - stream: update-interval driven classification of a live sample feed
//
// Every failure is reported synchronously as one of the sentinel errors
// below, wrapped with context. Use errors.Is to test for them and [Kind] to
// obtain a stable tag for external protocols.
package eeg
