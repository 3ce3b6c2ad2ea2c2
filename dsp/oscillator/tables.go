package oscillator

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-voice/dsp/core"
)

const (
	defaultTableSize         = 2048
	defaultSemitonesPerTable = 6
	maxNote                  = 128
)

// ErrInvalidSampleRate is returned when tables are requested for a
// non-positive sample rate.
var ErrInvalidSampleRate = errors.New("oscillator: sample rate must be positive")

// Wave identifies a table-backed waveform.
type Wave int

const (
	WaveSawUp Wave = iota
	WaveTriangle
	WaveSquare
	numWaves
)

// Tables is a set of band-limited lookup tables built for one sample rate.
type Tables struct {
	sampleRate        float64
	size              int
	semitonesPerTable float64
	waves             [numWaves][][]float64
}

type config struct {
	size              int
	semitonesPerTable int
}

// Option configures NewTables.
type Option func(*config)

// WithTableSize sets the single-cycle length. It is rounded up to a power
// of two; the default is 2048.
func WithTableSize(n int) Option {
	return func(cfg *config) {
		if n >= 16 {
			cfg.size = nextPowerOf2(n)
		}
	}
}

// WithSemitonesPerTable sets how many notes share one table. Smaller bands
// keep more harmonics in the lower notes of each band at the cost of memory.
func WithSemitonesPerTable(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.semitonesPerTable = n
		}
	}
}

// NewTables synthesizes saw, triangle and square tables for sampleRate.
func NewTables(sampleRate float64, opts ...Option) (*Tables, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, ErrInvalidSampleRate
	}

	cfg := config{size: defaultTableSize, semitonesPerTable: defaultSemitonesPerTable}
	for _, o := range opts {
		o(&cfg)
	}

	plan, err := algofft.NewPlan64(cfg.size)
	if err != nil {
		return nil, fmt.Errorf("oscillator: failed to create FFT plan: %w", err)
	}

	t := &Tables{
		sampleRate:        sampleRate,
		size:              cfg.size,
		semitonesPerTable: float64(cfg.semitonesPerTable),
	}

	s := synth{
		plan: plan,
		spec: make([]complex128, cfg.size),
		time: make([]complex128, cfg.size),
	}

	// A unit sine calibrates scale and sign of the inverse transform.
	calib, err := s.render(1, func(k int) float64 {
		if k == 1 {
			return 1
		}
		return 0
	})
	if err != nil {
		return nil, err
	}
	s.scale = 1 / calib[cfg.size/4]

	numBands := (maxNote + cfg.semitonesPerTable - 1) / cfg.semitonesPerTable
	for w := range numWaves {
		t.waves[w] = make([][]float64, numBands)
	}

	for band := range numBands {
		topNote := float64((band + 1) * cfg.semitonesPerTable)
		harmonics := int(sampleRate / 2 / core.NoteToHz(topNote))
		harmonics = max(1, min(harmonics, cfg.size/2-1))

		for w := range numWaves {
			table, err := s.render(harmonics, amplitudes(Wave(w)))
			if err != nil {
				return nil, err
			}
			t.waves[w][band] = table
		}
	}

	return t, nil
}

// amplitudes returns the sine-series amplitude of harmonic k for a wave
// spanning [-1, 1].
func amplitudes(w Wave) func(k int) float64 {
	switch w {
	case WaveSawUp:
		// 2*phase - 1
		return func(k int) float64 {
			return -2 / (math.Pi * float64(k))
		}
	case WaveTriangle:
		return func(k int) float64 {
			if k%2 == 0 {
				return 0
			}
			sign := 1.0
			if (k/2)%2 == 1 {
				sign = -1
			}
			return sign * 8 / (math.Pi * math.Pi * float64(k*k))
		}
	case WaveSquare:
		return func(k int) float64 {
			if k%2 == 0 {
				return 0
			}
			return 4 / (math.Pi * float64(k))
		}
	default:
		return func(int) float64 { return 0 }
	}
}

type synth struct {
	plan  *algofft.Plan[complex128]
	spec  []complex128
	time  []complex128
	scale float64
}

// render builds one table from sine-series amplitudes of harmonics 1..n.
func (s *synth) render(n int, amp func(k int) float64) ([]float64, error) {
	size := len(s.spec)
	for i := range s.spec {
		s.spec[i] = 0
	}

	half := float64(size) / 2
	for k := 1; k <= n; k++ {
		a := amp(k) * half
		s.spec[k] = complex(0, -a)
		s.spec[size-k] = complex(0, a)
	}

	if err := s.plan.Inverse(s.time, s.spec); err != nil {
		return nil, fmt.Errorf("oscillator: inverse FFT failed: %w", err)
	}

	scale := s.scale
	if scale == 0 {
		scale = 1
	}

	table := make([]float64, size)
	for i := range table {
		table[i] = real(s.time[i]) * scale
	}
	return table, nil
}

// SampleRate returns the rate the tables were built for.
func (t *Tables) SampleRate() float64 { return t.sampleRate }

// Size returns the single-cycle table length.
func (t *Tables) Size() int { return t.size }

// NumBands returns the number of note bands per waveform.
func (t *Tables) NumBands() int { return len(t.waves[WaveSawUp]) }

// Lookup reads waveform w for note at phase (cycles, wrapped into [0, 1))
// with linear interpolation.
func (t *Tables) Lookup(w Wave, note, phase float64) float64 {
	return interpolate(t.table(w, note), phase)
}

// Sine returns sin(2*pi*phase); a sine has no harmonics to limit.
func (t *Tables) Sine(_, phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

// SawUp returns a rising band-limited sawtooth.
func (t *Tables) SawUp(note, phase float64) float64 {
	return t.Lookup(WaveSawUp, note, phase)
}

// SawDown returns a falling band-limited sawtooth.
func (t *Tables) SawDown(note, phase float64) float64 {
	return -t.Lookup(WaveSawUp, note, phase)
}

// Triangle returns a band-limited triangle starting at zero and peaking at
// phase 0.25.
func (t *Tables) Triangle(note, phase float64) float64 {
	return t.Lookup(WaveTriangle, note, phase)
}

// Square returns a band-limited 50% square wave.
func (t *Tables) Square(note, phase float64) float64 {
	return t.Lookup(WaveSquare, note, phase)
}

// Pulse returns a band-limited pulse that is high for the last pw of each
// cycle, built from the difference of two phase-shifted saws.
func (t *Tables) Pulse(note, phase, pw float64) float64 {
	pw = core.Clamp(pw, 0, 1)
	table := t.table(WaveSawUp, note)
	return interpolate(table, phase) - interpolate(table, phase+pw) + 2*pw - 1
}

func (t *Tables) table(w Wave, note float64) []float64 {
	bands := t.waves[w]
	band := 0
	if note > 0 {
		band = min(int(note/t.semitonesPerTable), len(bands)-1)
	}
	return bands[band]
}

func interpolate(table []float64, phase float64) float64 {
	phase -= math.Floor(phase)
	pos := phase * float64(len(table))
	i := int(pos)
	if i >= len(table) {
		i = 0
	}
	frac := pos - float64(i)
	j := i + 1
	if j == len(table) {
		j = 0
	}
	return table[i] + (table[j]-table[i])*frac
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
