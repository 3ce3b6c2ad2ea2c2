package funchost

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-voice/dsp/core"
	"github.com/cwbudde/algo-voice/dsp/filter/biquad"
	"github.com/cwbudde/algo-voice/dsp/filter/design"
)

const (
	// MinCutoff is the lowest cutoff a filter state will design for.
	MinCutoff = 8.0
	// MaxCutoff is the highest cutoff; Nyquist lowers it further.
	MaxCutoff = 20000.0
	// MinQ is the smallest quality factor passed to the designers.
	MinQ = 1e-7
)

// State is the lifecycle shared by all per-call-site states. The set of
// implementations is closed: [*OscState] and [*FilterState].
type State interface {
	Kind() Kind
	SetSampleRate(sampleRate float64)
	Reset()

	sealed()
}

// OscState is the phase accumulator behind one oscillator call site.
type OscState struct {
	sampleRate float64
	rng        *rand.Rand

	phase     float64
	lastNote  float64
	frequency float64
	delta     float64
}

func newOscState(sampleRate float64, rng *rand.Rand) *OscState {
	return &OscState{
		sampleRate: sampleRate,
		rng:        rng,
		phase:      rng.Float64(),
		lastNote:   math.NaN(),
		frequency:  -1,
		delta:      -1,
	}
}

func (*OscState) sealed() {}

// Kind returns KindOsc.
func (*OscState) Kind() Kind { return KindOsc }

// SetSampleRate changes the rate and forces the increment to be recomputed
// on the next Advance.
func (s *OscState) SetSampleRate(sampleRate float64) {
	s.sampleRate = sampleRate
	s.lastNote = math.NaN()
}

// Reset re-seeds the phase at a random point of the cycle.
func (s *OscState) Reset() {
	s.phase = s.rng.Float64()
}

// Advance moves the phase on by one sample of note and returns it. The
// note-to-frequency conversion only runs when note differs from the
// previous call.
func (s *OscState) Advance(note float64) float64 {
	if note != s.lastNote {
		s.lastNote = note

		s.frequency = core.NoteToHz(note)
		period := 1 / s.frequency
		periodInSamples := period * s.sampleRate
		s.delta = 1 / periodInSamples
	}

	s.phase += s.delta
	if s.phase > 1 {
		s.phase -= 1
	}

	return s.phase
}

// Phase returns the current phase in cycles.
func (s *OscState) Phase() float64 { return s.phase }

// Delta returns the per-sample phase increment for the last note.
func (s *OscState) Delta() float64 { return s.delta }

// Frequency returns the frequency of the last note in Hz.
func (s *OscState) Frequency() float64 { return s.frequency }

// FilterState is the memory of one 12 dB (one biquad) or 24 dB (two
// cascaded biquads) filter call site.
type FilterState struct {
	kind       Kind
	sampleRate float64
	design     design.Func
	chain      *biquad.Chain
}

func newFilterState(kind Kind, sampleRate float64) *FilterState {
	info := kinds[kind]
	if info.stages == 0 {
		panic(fmt.Sprintf("funchost: %s is not a filter kind", kind))
	}

	return &FilterState{
		kind:       kind,
		sampleRate: sampleRate,
		design:     info.design,
		chain:      biquad.NewChain(make([]biquad.Coefficients, info.stages)),
	}
}

func (*FilterState) sealed() {}

// Kind returns the filter topology.
func (s *FilterState) Kind() Kind { return s.kind }

// SetSampleRate changes the design rate. Coefficients are redesigned on
// every Process, so the new Nyquist limit applies from the next sample.
func (s *FilterState) SetSampleRate(sampleRate float64) {
	s.sampleRate = sampleRate
}

// Reset clears the delay lines.
func (s *FilterState) Reset() {
	s.chain.Reset()
}

// Process filters one sample. freq is clamped to
// [MinCutoff, min(MaxCutoff, sampleRate/2)] and q to at least MinQ, and the
// coefficients are redesigned from them on every call so modulated
// parameters take effect immediately. In the 24 dB kinds the second section
// is fixed at Butterworth Q.
func (s *FilterState) Process(v, freq, q float64) float64 {
	s.configure(freq, q)
	y := s.chain.ProcessSample(v)
	s.flushDenormals()

	return core.FlushDenormals(y)
}

// ProcessBlock filters buf in-place with freq and q held for the whole
// block. Clamping and the cascade match Process.
func (s *FilterState) ProcessBlock(buf []float64, freq, q float64) {
	s.configure(freq, q)
	s.chain.ProcessBlock(buf)
	s.flushDenormals()
}

func (s *FilterState) configure(freq, q float64) {
	freq = core.Clamp(freq, MinCutoff, math.Min(MaxCutoff, s.sampleRate/2))
	q = math.Max(MinQ, q)

	s.chain.SetSectionCoefficients(0, s.design(freq, q, s.sampleRate))
	if s.chain.NumSections() == 2 {
		s.chain.SetSectionCoefficients(1, s.design(freq, design.ButterworthQ, s.sampleRate))
	}
}

// flushDenormals zeroes vanishing delay-line values so release tails end
// in exact silence.
func (s *FilterState) flushDenormals() {
	for i := range s.chain.NumSections() {
		sec := s.chain.Section(i)
		st := sec.State()
		sec.SetState([2]float64{core.FlushDenormals(st[0]), core.FlushDenormals(st[1])})
	}
}

// Stages returns the number of biquad sections (1 or 2).
func (s *FilterState) Stages() int { return s.chain.NumSections() }

// Section exposes section i for inspection.
func (s *FilterState) Section(i int) *biquad.Section { return s.chain.Section(i) }
