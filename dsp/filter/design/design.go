package design

import (
	"math"

	"github.com/cwbudde/algo-voice/dsp/filter/biquad"
)

// ButterworthQ is the quality factor of a maximally flat second-order
// section (1/sqrt(2)).
const ButterworthQ = 0.70710678118655

// Func designs one biquad section from a cutoff/centre frequency in Hz, a
// quality factor and the sample rate.
type Func func(freq, q, sampleRate float64) biquad.Coefficients

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	cw, sw, ok := trig(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	alpha := sw / (2 * normalizedQ(q))

	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Highpass designs a highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	cw, sw, ok := trig(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	alpha := sw / (2 * normalizedQ(q))

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := (1 + cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Bandpass designs a bandpass biquad with 0 dB gain at the centre
// frequency; q sets the bandwidth.
func Bandpass(freq, q, sampleRate float64) biquad.Coefficients {
	cw, sw, ok := trig(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	alpha := sw / (2 * normalizedQ(q))

	b0 := alpha
	b1 := 0.0
	b2 := -alpha
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Notch designs a notch biquad centred at freq (Hz).
func Notch(freq, q, sampleRate float64) biquad.Coefficients {
	cw, sw, ok := trig(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	alpha := sw / (2 * normalizedQ(q))

	b0 := 1.0
	b1 := -2 * cw
	b2 := 1.0
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// trig returns cos(w0) and sin(w0) for 0 < freq <= sampleRate/2.
func trig(freq, sampleRate float64) (cw, sw float64, ok bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, 0, false
	}

	if freq <= 0 || freq > sampleRate/2 || math.IsNaN(freq) {
		return 0, 0, false
	}

	w0 := 2 * math.Pi * freq / sampleRate
	return math.Cos(w0), math.Sin(w0), true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return ButterworthQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
