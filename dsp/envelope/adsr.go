package envelope

import (
	"github.com/go-audio/audio"
)

// Stage is the active segment of the envelope.
type Stage int

const (
	StageIdle Stage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return "unknown"
	}
}

// ADSR is a linear attack/decay/sustain/release envelope.
//
// Durations are converted to per-sample increments when they are set, so
// the sample rate must be configured first. Durations must be positive;
// zero or negative values produce infinite or negative increments.
type ADSR struct {
	// Stage is owned by the caller for triggering: set StageAttack on
	// note-on and StageRelease on note-off.
	Stage Stage

	sampleRate   float64
	output       float64
	attackDelta  float64
	decayDelta   float64
	releaseDelta float64
	sustainLevel float64
}

// New returns an idle envelope at the given sample rate with all stage
// parameters unset.
func New(sampleRate float64) *ADSR {
	return &ADSR{sampleRate: sampleRate}
}

// SetSampleRate sets the rate used by subsequent duration setters.
// Increments derived from earlier durations are not recomputed.
func (e *ADSR) SetSampleRate(sampleRate float64) { e.sampleRate = sampleRate }

// SampleRate returns the configured sample rate.
func (e *ADSR) SampleRate() float64 { return e.sampleRate }

// SetAttack sets the time in seconds to rise from 0 to 1.
func (e *ADSR) SetAttack(seconds float64) {
	e.attackDelta = 1 / (seconds * e.sampleRate)
}

// SetDecay sets the time in seconds to fall a full unit toward the sustain
// level.
func (e *ADSR) SetDecay(seconds float64) {
	e.decayDelta = 1 / (seconds * e.sampleRate)
}

// SetRelease sets the time in seconds to fall a full unit toward zero.
func (e *ADSR) SetRelease(seconds float64) {
	e.releaseDelta = 1 / (seconds * e.sampleRate)
}

// SetSustainLevel sets the sustain plateau. Expected in [0, 1]; not clamped.
func (e *ADSR) SetSustainLevel(level float64) { e.sustainLevel = level }

// SustainLevel returns the sustain plateau.
func (e *ADSR) SustainLevel() float64 { return e.sustainLevel }

// Output returns the most recent envelope value.
func (e *ADSR) Output() float64 { return e.output }

// Process advances the envelope by one sample and returns the new output.
func (e *ADSR) Process() float64 {
	switch e.Stage {
	case StageIdle, StageSustain:
	case StageAttack:
		e.output += e.attackDelta
		if e.output >= 1 {
			e.output = 1
			e.Stage = StageDecay
		}
	case StageDecay:
		e.output -= e.decayDelta
		if e.output <= e.sustainLevel {
			e.output = e.sustainLevel
			e.Stage = StageSustain
		}
	case StageRelease:
		e.output -= e.releaseDelta
		if e.output <= 0 {
			e.output = 0
			e.Stage = StageIdle
		}
	}

	return e.output
}

// ProcessBlock writes one envelope value per element of dst.
func (e *ADSR) ProcessBlock(dst []float64) {
	for i := range dst {
		dst[i] = e.Process()
	}
}

// ProcessBuffer writes numSamples envelope values into channel 0 of the
// interleaved buffer, starting at frame startSample. Other channels are
// left untouched. Panics if the range exceeds the buffer, like a slice
// index would.
func (e *ADSR) ProcessBuffer(buf *audio.FloatBuffer, startSample, numSamples int) {
	stride := channelStride(buf)
	idx := startSample * stride
	for range numSamples {
		buf.Data[idx] = e.Process()
		idx += stride
	}
}

// ProcessFullBuffer processes every frame of buf into channel 0.
func (e *ADSR) ProcessFullBuffer(buf *audio.FloatBuffer) {
	e.ProcessBuffer(buf, 0, len(buf.Data)/channelStride(buf))
}

// Reset forces the envelope idle at zero output. Durations and the sustain
// level are kept.
func (e *ADSR) Reset() {
	e.Stage = StageIdle
	e.output = 0
}

func channelStride(buf *audio.FloatBuffer) int {
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return 1
	}
	return buf.Format.NumChannels
}
