package voice

import "github.com/cwbudde/algo-voice/dsp/core"

// FilterUnits selects how filter functions interpret their cutoff argument.
type FilterUnits int

const (
	// FilterNote takes the cutoff as a MIDI note number.
	FilterNote FilterUnits = iota
	// FilterHz takes the cutoff in Hz.
	FilterHz
)

type config struct {
	core.ProcessorConfig
	processor []core.ProcessorOption

	attack, decay, sustain, release float64

	gain   float64
	seed   uint64
	seeded bool
	units  FilterUnits
}

// Option configures New.
type Option func(*config)

func defaultConfig() config {
	return config{
		attack:  0.005,
		decay:   0.1,
		sustain: 0.8,
		release: 0.2,
		gain:    1,
	}
}

// WithProcessorOptions applies shared processing options such as
// core.WithSampleRate and core.WithBlockSize.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(cfg *config) {
		cfg.processor = append(cfg.processor, opts...)
	}
}

// WithEnvelope sets attack, decay and release times in seconds and the
// sustain level.
func WithEnvelope(attack, decay, sustain, release float64) Option {
	return func(cfg *config) {
		cfg.attack = attack
		cfg.decay = decay
		cfg.sustain = sustain
		cfg.release = release
	}
}

// WithGain sets the linear output gain.
func WithGain(gain float64) Option {
	return func(cfg *config) { cfg.gain = gain }
}

// WithSeed makes oscillator start phases and noise reproducible.
func WithSeed(seed uint64) Option {
	return func(cfg *config) {
		cfg.seed = seed
		cfg.seeded = true
	}
}

// WithFilterUnits selects the cutoff units of the filter functions.
func WithFilterUnits(units FilterUnits) Option {
	return func(cfg *config) { cfg.units = units }
}
