package testutil

import (
	"math"
	"testing"
)

func TestRequireCloseAcceptsWithinTolerance(t *testing.T) {
	RequireClose(t, []float64{1, 2, 3}, []float64{1, 2.05, 2.95}, 0.1)
	RequireClose(t, nil, []float64{}, 0)
}

func TestRequireBoundedAcceptsLimit(t *testing.T) {
	RequireBounded(t, []float64{-1, 0.5, 1}, 1)
}

func TestRequireFiniteAcceptsExtremes(t *testing.T) {
	RequireFinite(t, []float64{-math.MaxFloat64, 0, math.SmallestNonzeroFloat64, math.MaxFloat64})
}
