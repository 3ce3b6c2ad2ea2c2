package core

import "math"

const (
	// ConcertPitchHz is the frequency of MIDI note 69 (A4).
	ConcertPitchHz = 440.0
	// ConcertPitchNote is the MIDI note number of A4.
	ConcertPitchNote = 69.0
)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// FlushDenormals returns 0 for magnitudes below 1e-30 and x otherwise.
// Recursive filters call it on their state so decaying tails reach exact
// zero instead of lingering in the subnormal range.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// NoteToHz converts a (fractional) MIDI note number to Hz in 12-TET tuning
// around A4 = 440 Hz.
func NoteToHz(note float64) float64 {
	return ConcertPitchHz * math.Pow(2, (note-ConcertPitchNote)/12)
}

// HzToNote converts a frequency in Hz to a fractional MIDI note number.
// Returns NaN for non-positive frequencies.
func HzToNote(hz float64) float64 {
	if hz <= 0 {
		return math.NaN()
	}

	return ConcertPitchNote + 12*math.Log2(hz/ConcertPitchHz)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
