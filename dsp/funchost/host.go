package funchost

import (
	"fmt"
	"math/rand/v2"

	"github.com/cwbudde/algo-voice/dsp/core"
)

// Host owns the call-site-indexed states of one voice.
type Host struct {
	// Tables shapes oscillator phases into waveforms. It must be built for
	// the host's sample rate and is required by AddOscillatorFunctions. The
	// host does not own it.
	Tables WaveTables

	sampleRate float64
	states     map[int]State
	rng        *rand.Rand
}

type hostConfig struct {
	sampleRate float64
	seed       uint64
	seeded     bool
	tables     WaveTables
}

// Option configures New.
type Option func(*hostConfig)

// WithSampleRate sets the initial sample rate (default 44100).
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *hostConfig) {
		if sampleRate > 0 {
			cfg.sampleRate = sampleRate
		}
	}
}

// WithSeed makes oscillator start phases, rand() and noise() reproducible.
func WithSeed(seed uint64) Option {
	return func(cfg *hostConfig) {
		cfg.seed = seed
		cfg.seeded = true
	}
}

// WithTables sets the oscillator lookup tables.
func WithTables(t WaveTables) Option {
	return func(cfg *hostConfig) { cfg.tables = t }
}

// New returns an empty host.
func New(opts ...Option) *Host {
	cfg := hostConfig{sampleRate: core.DefaultSampleRate}
	for _, o := range opts {
		o(&cfg)
	}

	if !cfg.seeded {
		cfg.seed = rand.Uint64()
	}

	return &Host{
		Tables:     cfg.tables,
		sampleRate: cfg.sampleRate,
		states:     make(map[int]State),
		rng:        rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15)),
	}
}

// SampleRate returns the rate new states are created with.
func (h *Host) SampleRate() float64 { return h.sampleRate }

// SetSampleRate stores sampleRate for future states, pushes it to every
// existing one and resets them. Filter memory built at the old rate is
// discarded.
func (h *Host) SetSampleRate(sampleRate float64) {
	h.sampleRate = sampleRate
	for _, st := range h.states {
		st.SetSampleRate(sampleRate)
		st.Reset()
	}
}

// Reset resets every state, e.g. on note retrigger.
func (h *Host) Reset() {
	for _, st := range h.states {
		st.Reset()
	}
}

// Len returns the number of allocated call-site states.
func (h *Host) Len() int { return len(h.states) }

// State returns the state stored at index, if any.
func (h *Host) State(index int) (State, bool) {
	st, ok := h.states[index]
	return st, ok
}

// Osc returns the oscillator state for call site index, creating it on
// first use. It panics if the index already holds a different kind.
func (h *Host) Osc(index int) *OscState {
	return getOrCreate(h, index, KindOsc, func() *OscState {
		return newOscState(h.sampleRate, h.rng)
	})
}

// Filter returns the filter state of the given kind for call site index,
// creating it on first use. It panics if the index already holds a
// different kind.
func (h *Host) Filter(index int, kind Kind) *FilterState {
	return getOrCreate(h, index, kind, func() *FilterState {
		return newFilterState(kind, h.sampleRate)
	})
}

func getOrCreate[T State](h *Host, index int, kind Kind, create func() T) T {
	if st, ok := h.states[index]; ok {
		if st.Kind() != kind {
			panic(fmt.Sprintf("funchost: call site %d holds %s state, requested %s", index, st.Kind(), kind))
		}
		return st.(T)
	}

	st := create()
	h.states[index] = st
	return st
}
