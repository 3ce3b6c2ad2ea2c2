package funchost

import "github.com/cwbudde/algo-voice/dsp/filter/design"

// Kind identifies the variant of a per-call-site state.
type Kind uint8

const (
	KindOsc Kind = iota
	KindHP12
	KindHP24
	KindBP12
	KindBP24
	KindLP12
	KindLP24
	KindNotch12
	KindNotch24
	numKinds
)

type kindInfo struct {
	name   string
	design design.Func
	stages int
}

var kinds = [numKinds]kindInfo{
	KindOsc:     {name: "osc"},
	KindHP12:    {name: "hp12", design: design.Highpass, stages: 1},
	KindHP24:    {name: "hp24", design: design.Highpass, stages: 2},
	KindBP12:    {name: "bp12", design: design.Bandpass, stages: 1},
	KindBP24:    {name: "bp24", design: design.Bandpass, stages: 2},
	KindLP12:    {name: "lp12", design: design.Lowpass, stages: 1},
	KindLP24:    {name: "lp24", design: design.Lowpass, stages: 2},
	KindNotch12: {name: "notch12", design: design.Notch, stages: 1},
	KindNotch24: {name: "notch24", design: design.Notch, stages: 2},
}

// String returns the function name the kind is registered under.
func (k Kind) String() string {
	if k >= numKinds {
		return "unknown"
	}
	return kinds[k].name
}

// IsFilter reports whether k is one of the filter kinds.
func (k Kind) IsFilter() bool {
	return k > KindOsc && k < numKinds
}

// Is24dB reports whether k cascades two biquad sections.
func (k Kind) Is24dB() bool {
	return k.IsFilter() && kinds[k].stages == 2
}

// FilterKinds lists every filter kind in registration order.
func FilterKinds() []Kind {
	out := make([]Kind, 0, numKinds-1)
	for k := KindHP12; k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// ParseFilterKind resolves a filter function name such as "lp24".
func ParseFilterKind(name string) (Kind, bool) {
	for k := KindHP12; k < numKinds; k++ {
		if kinds[k].name == name {
			return k, true
		}
	}
	return 0, false
}
