package biquad

import (
	"math"
	"testing"
)

// twoSectionCoeffs returns two biquad sections for a 4th-order cascade.
func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func TestNewChain(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	if c.NumSections() != 2 {
		t.Fatalf("NumSections: got %d, want 2", c.NumSections())
	}
	if c.Order() != 4 {
		t.Fatalf("Order: got %d, want 4", c.Order())
	}
	if c.Gain() != 1 {
		t.Fatalf("default gain: got %v, want 1", c.Gain())
	}

	if g := NewChain(twoSectionCoeffs(), WithGain(0.5)).Gain(); g != 0.5 {
		t.Fatalf("gain: got %v, want 0.5", g)
	}
}

func TestChain_ProcessSample_MatchesManualCascade(t *testing.T) {
	coeffs := twoSectionCoeffs()
	c := NewChain(coeffs)
	s1 := NewSection(coeffs[0])
	s2 := NewSection(coeffs[1])

	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}
	for i, x := range input {
		got := c.ProcessSample(x)
		want := s2.ProcessSample(s1.ProcessSample(x))
		if !almostEqual(got, want, eps) {
			t.Errorf("sample %d: chain=%.15f, manual=%.15f", i, got, want)
		}
	}
}

func TestChain_ProcessBlock_MatchesSample(t *testing.T) {
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}

	ref := NewChain(twoSectionCoeffs(), WithGain(0.5))
	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = ref.ProcessSample(x)
	}

	c := NewChain(twoSectionCoeffs(), WithGain(0.5))
	block := append([]float64(nil), input...)
	c.ProcessBlock(block)

	for i := range block {
		if !almostEqual(block[i], want[i], eps) {
			t.Errorf("sample %d: block=%.15f, sample=%.15f", i, block[i], want[i])
		}
	}
}

func TestChain_SetSectionCoefficients_PreservesState(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.ProcessSample(1)
	before := c.State()

	c.SetSectionCoefficients(1, Coefficients{B0: 1})
	after := c.State()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("section %d state changed: %v -> %v", i, before[i], after[i])
		}
	}
	if c.Section(1).B0 != 1 {
		t.Fatalf("coefficients not applied: %+v", c.Section(1).Coefficients)
	}
}

func TestChain_Reset(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.ProcessSample(1)
	c.ProcessSample(0.3)
	c.Reset()

	for i, st := range c.State() {
		if st != [2]float64{0, 0} {
			t.Fatalf("section %d not reset: %v", i, st)
		}
	}
}

func TestChain_StabilityLongRun(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.ProcessSample(1)

	var y float64
	for range 10000 {
		y = c.ProcessSample(0)
	}
	if math.Abs(y) > 1e-100 {
		t.Fatalf("output did not decay: %v", y)
	}
}
