// Package oscillator provides band-limited single-cycle lookup tables for
// phase-driven oscillators.
//
// A [Tables] value holds, for every waveform, one table per band of notes.
// Each table only contains harmonics that stay below Nyquist for the highest
// note of its band, so reading it at any phase increment inside the band is
// alias-free. Tables are synthesized once with an inverse FFT and are
// read-only afterwards, so one set may be shared by every voice running at
// the same sample rate.
package oscillator
