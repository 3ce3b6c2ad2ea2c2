// Package spectrum turns FFT bins and raw sample blocks into magnitudes.
//
// It does not run an FFT itself. Magnitude reduces bins from any FFT backend
// and Goertzel evaluates one frequency directly from time-domain samples.
package spectrum
