package voice

import (
	"fmt"

	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-voice/dsp/core"
	"github.com/cwbudde/algo-voice/dsp/envelope"
	"github.com/cwbudde/algo-voice/dsp/funchost"
	"github.com/cwbudde/algo-voice/dsp/oscillator"
	"github.com/cwbudde/algo-voice/expr/luaexpr"
)

// Voice is one expression-driven synth voice. It is not safe for concurrent
// use.
type Voice struct {
	cfg config

	env     *envelope.ADSR
	host    *funchost.Host
	eval    *luaexpr.Evaluator
	program *luaexpr.Program

	note     float64
	velocity float64
	elapsed  int

	envBuf []float64
}

// New compiles expr into a new idle voice.
func New(expr string, opts ...Option) (*Voice, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.ProcessorConfig = core.ApplyProcessorOptions(cfg.processor...)

	tables, err := oscillator.NewTables(cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("voice: %w", err)
	}

	hostOpts := []funchost.Option{
		funchost.WithSampleRate(cfg.SampleRate),
		funchost.WithTables(tables),
	}
	if cfg.seeded {
		hostOpts = append(hostOpts, funchost.WithSeed(cfg.seed))
	}

	v := &Voice{
		cfg:    cfg,
		env:    envelope.New(cfg.SampleRate),
		host:   funchost.New(hostOpts...),
		eval:   luaexpr.New(),
		envBuf: core.EnsureLen(nil, cfg.BlockSize),
	}
	v.configureEnvelope()

	v.host.AddConstants(v.eval)
	v.host.AddUtilities(v.eval)
	v.host.AddOscillatorFunctions(v.eval)
	if cfg.units == FilterHz {
		v.host.AddEffectFilterFunctions(v.eval)
	} else {
		v.host.AddSynthFilterFunctions(v.eval)
	}

	if err := v.setVariables(); err != nil {
		v.eval.Close()
		return nil, fmt.Errorf("voice: %w", err)
	}
	v.program, err = v.eval.Compile(expr)
	if err != nil {
		v.eval.Close()
		return nil, fmt.Errorf("voice: %w", err)
	}

	return v, nil
}

// Close releases the expression engine.
func (v *Voice) Close() {
	v.eval.Close()
}

func (v *Voice) configureEnvelope() {
	v.env.SetAttack(v.cfg.attack)
	v.env.SetDecay(v.cfg.decay)
	v.env.SetSustainLevel(v.cfg.sustain)
	v.env.SetRelease(v.cfg.release)
}

// SampleRate returns the rendering sample rate.
func (v *Voice) SampleRate() float64 { return v.cfg.SampleRate }

// SetSampleRate rebuilds the oscillator tables and pushes the new rate to
// the envelope and every call-site state.
func (v *Voice) SetSampleRate(sampleRate float64) error {
	tables, err := oscillator.NewTables(sampleRate)
	if err != nil {
		return fmt.Errorf("voice: %w", err)
	}

	v.cfg.SampleRate = sampleRate
	v.host.Tables = tables
	v.host.SetSampleRate(sampleRate)
	v.env.SetSampleRate(sampleRate)
	v.configureEnvelope()
	return nil
}

// Expression returns the source the voice was compiled from.
func (v *Voice) Expression() string { return v.program.Source() }

// Note returns the current note.
func (v *Voice) Note() float64 { return v.note }

// Envelope exposes the voice envelope.
func (v *Voice) Envelope() *envelope.ADSR { return v.env }

// Host exposes the call-site state host.
func (v *Voice) Host() *funchost.Host { return v.host }

// Active reports whether the envelope is still sounding.
func (v *Voice) Active() bool { return v.env.Stage != envelope.StageIdle }

// Prewarm evaluates the expression once so every call-site state exists
// before rendering starts, then resets the states.
func (v *Voice) Prewarm() error {
	if err := v.setVariables(); err != nil {
		return fmt.Errorf("voice: prewarm: %w", err)
	}
	if _, err := v.program.Eval(); err != nil {
		return fmt.Errorf("voice: prewarm: %w", err)
	}
	v.host.Reset()
	return nil
}

// NoteOn starts a note. Call-site states are reset; the envelope restarts
// its attack from the current level.
func (v *Voice) NoteOn(note, velocity float64) {
	v.note = note
	v.velocity = velocity
	v.elapsed = 0
	v.host.Reset()
	v.env.Stage = envelope.StageAttack
}

// NoteOff moves a sounding voice into release.
func (v *Voice) NoteOff() {
	if v.env.Stage != envelope.StageIdle {
		v.env.Stage = envelope.StageRelease
	}
}

// Render overwrites dst with the next len(dst) samples. An idle voice
// renders silence without evaluating the expression.
func (v *Voice) Render(dst []float64) error {
	for start := 0; start < len(dst); start += v.cfg.BlockSize {
		end := min(start+v.cfg.BlockSize, len(dst))
		if err := v.renderBlock(dst[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (v *Voice) renderBlock(dst []float64) error {
	if !v.Active() {
		core.Zero(dst)
		return nil
	}

	env := core.EnsureLen(v.envBuf, len(dst))
	v.env.ProcessBlock(env)

	for i := range dst {
		if err := v.setVariables(); err != nil {
			return fmt.Errorf("voice: %w", err)
		}
		y, err := v.program.Eval()
		if err != nil {
			return fmt.Errorf("voice: %w", err)
		}
		dst[i] = y * env[i]
		v.elapsed++
	}

	if v.cfg.gain != 1 {
		f64.Scale(dst, dst, v.cfg.gain)
	}
	return nil
}

func (v *Voice) setVariables() error {
	if err := v.eval.SetVariable("note", v.note); err != nil {
		return err
	}
	if err := v.eval.SetVariable("velocity", v.velocity); err != nil {
		return err
	}
	return v.eval.SetVariable("t", float64(v.elapsed)/v.cfg.SampleRate)
}
