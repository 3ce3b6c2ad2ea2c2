// Package kernel holds the block-processing loops for biquad sections and
// picks one for the running CPU.
package kernel

import "github.com/cwbudde/algo-vecmath/cpu"

// Coefficients are biquad transfer coefficients (a0 normalized to 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Func filters buf in-place with one section starting from delay state
// (d0, d1) and returns the final state.
type Func func(c Coefficients, d0, d1 float64, buf []float64) (float64, float64)

// Kernel is a block loop and the instruction set it is tuned for.
type Kernel struct {
	Name  string
	Level cpu.SIMDLevel
	Run   Func
}

// kernels is ordered from most to least demanding; the last entry runs
// everywhere.
var kernels = []Kernel{
	{Name: "unrolled2", Level: cpu.SIMDSSE2, Run: processUnrolled2},
	{Name: "scalar", Level: cpu.SIMDNone, Run: processScalar},
}

// Select returns the first kernel the CPU can use.
func Select(features cpu.Features) Kernel {
	return selectFrom(kernels, features)
}

// Names lists the kernels in selection order.
func Names() []string {
	names := make([]string, len(kernels))
	for i, k := range kernels {
		names[i] = k.Name
	}
	return names
}

func selectFrom(list []Kernel, features cpu.Features) Kernel {
	for _, k := range list {
		if usable(features, k.Level) {
			return k
		}
	}
	return list[len(list)-1]
}

func usable(features cpu.Features, level cpu.SIMDLevel) bool {
	switch {
	case level == cpu.SIMDNone:
		return true
	case features.ForceGeneric:
		return false
	case level == cpu.SIMDSSE2:
		return features.HasSSE2
	case level == cpu.SIMDAVX2:
		return features.HasAVX2
	default:
		return false
	}
}
