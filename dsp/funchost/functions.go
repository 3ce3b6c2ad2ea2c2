package funchost

import (
	"math"

	"github.com/cwbudde/algo-voice/dsp/core"
)

// Func is a registered function. callSite identifies the textual
// invocation; args holds exactly the declared arity of numeric arguments
// and must not be retained.
type Func func(callSite int, args []float64) float64

// Evaluator is the expression engine the host registers into.
type Evaluator interface {
	DefineConstant(name string, value float64)
	DefineFunction(name string, arity int, fn Func)
}

// WaveTables shapes a phase in cycles into a band-limited waveform for the
// given note. *oscillator.Tables implements it.
type WaveTables interface {
	Sine(note, phase float64) float64
	Triangle(note, phase float64) float64
	SawUp(note, phase float64) float64
	SawDown(note, phase float64) float64
	Square(note, phase float64) float64
	Pulse(note, phase, pw float64) float64
}

// AddConstants defines pi, e and sqrt2.
func (h *Host) AddConstants(ev Evaluator) {
	ev.DefineConstant("pi", math.Pi)
	ev.DefineConstant("e", math.E)
	ev.DefineConstant("sqrt2", math.Sqrt2)
}

// AddUtilities defines stateless helpers: hz, hzToNote, min, max, clamp,
// sign and rand. The names leave note free for use as a variable.
func (h *Host) AddUtilities(ev Evaluator) {
	ev.DefineFunction("hz", 1, func(_ int, a []float64) float64 {
		return core.NoteToHz(a[0])
	})
	ev.DefineFunction("hzToNote", 1, func(_ int, a []float64) float64 {
		return core.HzToNote(a[0])
	})
	ev.DefineFunction("min", 2, func(_ int, a []float64) float64 {
		return math.Min(a[0], a[1])
	})
	ev.DefineFunction("max", 2, func(_ int, a []float64) float64 {
		return math.Max(a[0], a[1])
	})
	ev.DefineFunction("clamp", 3, func(_ int, a []float64) float64 {
		return core.Clamp(a[0], a[1], a[2])
	})
	ev.DefineFunction("sign", 1, func(_ int, a []float64) float64 {
		switch {
		case a[0] > 0:
			return 1
		case a[0] < 0:
			return -1
		default:
			return 0
		}
	})
	ev.DefineFunction("rand", 0, func(int, []float64) float64 {
		return h.rng.Float64()
	})
}

// AddOscillatorFunctions defines sine, triangle, sawUp, sawDown and square
// taking a note, pulse taking a note and a pulse width, and noise. Each
// oscillator call site keeps its own phase. Panics if Tables is nil.
func (h *Host) AddOscillatorFunctions(ev Evaluator) {
	if h.Tables == nil {
		panic("funchost: oscillator functions need lookup tables")
	}

	shapes := []struct {
		name  string
		shape func(note, phase float64) float64
	}{
		{"sine", h.Tables.Sine},
		{"triangle", h.Tables.Triangle},
		{"sawUp", h.Tables.SawUp},
		{"sawDown", h.Tables.SawDown},
		{"square", h.Tables.Square},
	}
	for _, s := range shapes {
		shape := s.shape
		ev.DefineFunction(s.name, 1, func(id int, a []float64) float64 {
			note := a[0]
			return shape(note, h.Osc(id).Advance(note))
		})
	}

	ev.DefineFunction("pulse", 2, func(id int, a []float64) float64 {
		note := a[0]
		return h.Tables.Pulse(note, h.Osc(id).Advance(note), a[1])
	})
	ev.DefineFunction("noise", 0, func(int, []float64) float64 {
		return h.rng.Float64()*2 - 1
	})
}

// AddSynthFilterFunctions defines the filters as name(v, note, q) with the
// cutoff given as a MIDI note.
func (h *Host) AddSynthFilterFunctions(ev Evaluator) {
	for _, kind := range FilterKinds() {
		ev.DefineFunction(kind.String(), 3, func(id int, a []float64) float64 {
			return h.Filter(id, kind).Process(a[0], core.NoteToHz(a[1]), a[2])
		})
	}
}

// AddEffectFilterFunctions defines the filters as name(v, freq, q) with the
// cutoff in Hz.
func (h *Host) AddEffectFilterFunctions(ev Evaluator) {
	for _, kind := range FilterKinds() {
		ev.DefineFunction(kind.String(), 3, func(id int, a []float64) float64 {
			return h.Filter(id, kind).Process(a[0], a[1], a[2])
		})
	}
}
