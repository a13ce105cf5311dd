// Package design provides the IIR coefficient designer behind the EEG noise
// filter.
//
// [ButterworthBandpass] maps an analog Butterworth prototype onto a band-pass
// response (lowpass-to-bandpass substitution s -> (s^2 + w0^2) / (s*bw)) and
// discretizes it with the bilinear transform. Both band edges are pre-warped,
// so the -3 dB points land exactly on the requested cutoffs. The result is a
// cascade of biquad sections consumable by dsp/filter/biquad.
package design
