// Package biquad provides the second-order section runtime used by the
// preprocessing filters.
//
// A [Section] runs Direct Form II Transposed processing for one set of
// [Coefficients]. A [Chain] cascades sections for higher-order designs and
// can be primed with steady-state initial conditions, which the zero-phase
// filter relies on to suppress start-up transients.
//
// Coefficient design lives in dsp/filter/design.
package biquad
