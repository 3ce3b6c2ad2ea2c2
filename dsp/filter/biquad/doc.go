// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Sections can be cascaded
// via [Chain] for 24 dB/octave and steeper slopes.
//
// Coefficients may be replaced on every sample with [Section.SetCoefficients]
// while the delay line keeps running, which is what modulated filters need.
// Coefficient design lives in dsp/filter/design.
package biquad
