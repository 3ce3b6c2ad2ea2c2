package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-voice/dsp/core"
	"github.com/cwbudde/algo-voice/dsp/spectrum"
)

var (
	// ErrEmptyResponse is returned for a zero-length impulse response.
	ErrEmptyResponse = errors.New("response: empty impulse response")
	// ErrInvalidSampleRate is returned for non-positive sample rates.
	ErrInvalidSampleRate = errors.New("response: invalid sample rate")
)

// Impulse feeds a unit impulse followed by n-1 zeros through fn and returns
// the n outputs.
func Impulse(fn func(x float64) float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		x := 0.0
		if i == 0 {
			x = 1
		}
		out[i] = fn(x)
	}
	return out
}

// Energy returns the sum of squares of ir.
func Energy(ir []float64) float64 {
	return f64.DotProduct(ir, ir)
}

// Gain returns the magnitude of ir's transform at exactly freq Hz, without
// the bin interpolation of Spectrum.At.
func Gain(ir []float64, freq, sampleRate float64) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyResponse
	}
	if !(sampleRate > 0) {
		return 0, ErrInvalidSampleRate
	}
	g, err := spectrum.MagnitudeAt(ir, freq, sampleRate)
	if err != nil {
		return 0, fmt.Errorf("response: %w", err)
	}
	return g, nil
}

// Spectrum is a one-sided magnitude response.
type Spectrum struct {
	// Magnitude holds linear magnitudes for bins 0..N/2.
	Magnitude  []float64
	SampleRate float64
	// Resolution is the bin spacing in Hz.
	Resolution float64
}

// Magnitude transforms ir with a zero-padded power-of-two FFT of at least
// len(ir) points.
func Magnitude(ir []float64, sampleRate float64) (*Spectrum, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyResponse
	}
	if !(sampleRate > 0) {
		return nil, ErrInvalidSampleRate
	}

	size := nextPowerOf2(len(ir))
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, size)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	return &Spectrum{
		Magnitude:  spectrum.Magnitude(out[:size/2+1]),
		SampleRate: sampleRate,
		Resolution: sampleRate / float64(size),
	}, nil
}

// At returns the linearly interpolated magnitude at freq Hz. Frequencies
// outside [0, Nyquist] are clamped.
func (s *Spectrum) At(freq float64) float64 {
	pos := core.Clamp(freq/s.Resolution, 0, float64(len(s.Magnitude)-1))
	i := int(pos)
	if i >= len(s.Magnitude)-1 {
		return s.Magnitude[len(s.Magnitude)-1]
	}
	frac := pos - float64(i)
	return s.Magnitude[i] + frac*(s.Magnitude[i+1]-s.Magnitude[i])
}

// AtDB returns At(freq) in decibels.
func (s *Spectrum) AtDB(freq float64) float64 {
	return core.LinearToDB(s.At(freq))
}

// Peak returns the frequency and linear magnitude of the largest bin.
func (s *Spectrum) Peak() (freq, magnitude float64) {
	idx := s.peakIndex()
	return float64(idx) * s.Resolution, s.Magnitude[idx]
}

func (s *Spectrum) peakIndex() int {
	return floats.MaxIdx(s.Magnitude)
}

// Crossing returns the lowest frequency above the peak at which the
// response has fallen by dB relative to the peak (dB is negative, e.g. -3).
// It returns NaN if the response never falls that far.
func (s *Spectrum) Crossing(dB float64) float64 {
	start := s.peakIndex()
	threshold := s.Magnitude[start] * core.DBToLinear(dB)

	for k := start + 1; k < len(s.Magnitude); k++ {
		if s.Magnitude[k] <= threshold {
			prev := s.Magnitude[k-1]
			frac := 0.0
			if prev != s.Magnitude[k] {
				frac = (prev - threshold) / (prev - s.Magnitude[k])
			}
			return (float64(k-1) + frac) * s.Resolution
		}
	}
	return math.NaN()
}

// Bands samples the response at n log-spaced frequencies from lo to hi Hz
// and returns the frequencies and magnitudes in dB.
func (s *Spectrum) Bands(lo, hi float64, n int) (freqs, dB []float64) {
	if n < 1 {
		return nil, nil
	}
	freqs = make([]float64, n)
	if n == 1 {
		freqs[0] = lo
	} else {
		floats.LogSpan(freqs, lo, hi)
	}
	dB = make([]float64, n)
	for i, f := range freqs {
		dB[i] = s.AtDB(f)
	}
	return freqs, dB
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
