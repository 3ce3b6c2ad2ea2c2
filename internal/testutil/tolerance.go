package testutil

import (
	"math"
	"testing"
)

// RequireClose fails t at the first index where got and want are more than
// tol apart. A length mismatch fails immediately.
func RequireClose(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i, g := range got {
		if d := math.Abs(g - want[i]); d > tol || math.IsNaN(d) {
			t.Fatalf("sample %d: got %v, want %v (off by %v, tol %v)", i, g, want[i], d, tol)
		}
	}
}

// RequireBounded fails t if any sample is NaN or exceeds limit in magnitude.
func RequireBounded(t *testing.T, data []float64, limit float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.Abs(v) > limit {
			t.Fatalf("sample %d: %v outside ±%v", i, v, limit)
		}
	}
}

// RequireFinite fails t on NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	RequireBounded(t, data, math.MaxFloat64)
}
