package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates a single DFT term over every sample processed since the
// last Reset. Feeding it an impulse response yields the filter's gain at the
// target frequency without a full transform.
type Goertzel struct {
	coeff  float64
	s0, s1 float64
}

// NewGoertzel returns an analyzer for frequency Hz, which must lie in
// [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}
	if !(frequency >= 0 && frequency <= sampleRate/2) {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and %v: %v", sampleRate/2, frequency)
	}
	return &Goertzel{coeff: 2 * math.Cos(2*math.Pi*frequency/sampleRate)}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1 = 0, 0
}

// ProcessBlock accumulates input.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1, coeff := g.s0, g.s1, g.coeff
	for _, x := range input {
		s0, s1 = x+coeff*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
}

// Power returns |X|^2.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X|, clamping rounding noise below zero power.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}
	return math.Sqrt(p)
}

// MagnitudeAt runs a fresh Goertzel over input and returns |X| at frequency.
func MagnitudeAt(input []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}
	g.ProcessBlock(input)
	return g.Magnitude(), nil
}
