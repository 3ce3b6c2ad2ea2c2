package kernel

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		features cpu.Features
		want     string
	}{
		{"sse2", cpu.Features{HasSSE2: true}, "unrolled2"},
		{"avx2 implies table order", cpu.Features{HasSSE2: true, HasAVX2: true}, "unrolled2"},
		{"none", cpu.Features{}, "scalar"},
		{"forced generic", cpu.Features{HasSSE2: true, ForceGeneric: true}, "scalar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Select(tt.features).Name; got != tt.want {
				t.Fatalf("Select() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectFromFallsBackToLast(t *testing.T) {
	list := []Kernel{
		{Name: "avx2", Level: cpu.SIMDAVX2},
		{Name: "sse2", Level: cpu.SIMDSSE2},
	}
	if got := selectFrom(list, cpu.Features{}).Name; got != "sse2" {
		t.Fatalf("selectFrom() = %q, want sse2", got)
	}
	if got := selectFrom(list, cpu.Features{HasAVX2: true}).Name; got != "avx2" {
		t.Fatalf("selectFrom() = %q, want avx2", got)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "unrolled2" || names[1] != "scalar" {
		t.Fatalf("unexpected kernel order %v", names)
	}
}

func TestKernelsAgree(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2}

	a := append([]float64(nil), input...)
	b := append([]float64(nil), input...)
	ad0, ad1 := processScalar(c, 0, 0, a)
	bd0, bd1 := processUnrolled2(c, 0, 0, b)

	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-15 {
			t.Fatalf("sample %d: scalar=%v unrolled=%v", i, a[i], b[i])
		}
	}
	if ad0 != bd0 || ad1 != bd1 {
		t.Fatalf("state mismatch: scalar=(%v,%v) unrolled=(%v,%v)", ad0, ad1, bd0, bd1)
	}
}
