// Package design provides biquad coefficient designers.
//
// The designers follow the RBJ audio-EQ cookbook and return
// [biquad.Coefficients] for the dsp/filter/biquad runtime. They are cheap
// enough to call once per sample, which is how modulated filters use them.
//
// Unlike a general-purpose designer, the valid cutoff range includes the
// Nyquist frequency itself, since callers clamp cutoffs to sampleRate/2.
package design
