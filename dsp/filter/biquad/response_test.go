package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMagnitudeSquared_MatchesResponse(t *testing.T) {
	c := refCoeffs()
	for _, f := range []float64{0, 100, 1000, 5000, 12000, 23999} {
		h := c.Response(f, 48000)
		want := real(h)*real(h) + imag(h)*imag(h)
		got := c.MagnitudeSquared(f, 48000)
		if !almostEqual(got, want, 1e-10) {
			t.Errorf("f=%v: MagnitudeSquared=%v, |H|^2=%v", f, got, want)
		}
	}
}

func TestChain_Response_ProductOfSections(t *testing.T) {
	coeffs := twoSectionCoeffs()
	c := NewChain(coeffs)
	for _, f := range []float64{50, 500, 5000} {
		want := coeffs[0].Response(f, 48000) * coeffs[1].Response(f, 48000)
		got := c.Response(f, 48000)
		if cmplx.Abs(got-want) > 1e-12 {
			t.Errorf("f=%v: got %v, want %v", f, got, want)
		}
		if db := c.MagnitudeDB(f, 48000); !almostEqual(db, 20*math.Log10(cmplx.Abs(want)), 1e-9) {
			t.Errorf("f=%v: MagnitudeDB=%v", f, db)
		}
	}
}

func TestStable(t *testing.T) {
	tests := []struct {
		name string
		c    Coefficients
		want bool
	}{
		{name: "reference", c: refCoeffs(), want: true},
		{name: "pole on unit circle", c: Coefficients{B0: 1, A1: 2, A2: 1}, want: false},
		{name: "outside", c: Coefficients{B0: 1, A2: 1.5}, want: false},
		{name: "nan", c: Coefficients{A1: math.NaN()}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Stable(); got != tt.want {
				t.Fatalf("Stable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFinite(t *testing.T) {
	c := refCoeffs()
	if !c.Finite() {
		t.Fatal("reference coefficients should be finite")
	}
	c.B2 = math.Inf(1)
	if c.Finite() {
		t.Fatal("Inf coefficient reported finite")
	}
}

func TestSection_ImpulseResponse(t *testing.T) {
	s := NewSection(refCoeffs())
	s.ProcessSample(0.7)
	saved := s.State()

	ir := s.ImpulseResponse(4)
	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i := range want {
		if !almostEqual(ir[i], want[i], eps) {
			t.Errorf("ir[%d] = %v, want %v", i, ir[i], want[i])
		}
	}
	if s.State() != saved {
		t.Fatal("ImpulseResponse modified section state")
	}
	if s.ImpulseResponse(0) != nil {
		t.Fatal("expected nil for n=0")
	}
}

func TestChain_ImpulseResponse_IsConvolution(t *testing.T) {
	coeffs := twoSectionCoeffs()
	h1 := NewSection(coeffs[0]).ImpulseResponse(32)
	h2 := NewSection(coeffs[1]).ImpulseResponse(32)
	got := NewChain(coeffs).ImpulseResponse(32)

	for n := range got {
		var want float64
		for k := 0; k <= n; k++ {
			want += h1[k] * h2[n-k]
		}
		if !almostEqual(got[n], want, 1e-12) {
			t.Errorf("n=%d: chain=%v, h1*h2=%v", n, got[n], want)
		}
	}
}
