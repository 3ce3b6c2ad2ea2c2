package funchost

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOscInitialPhaseIsRandomInUnitInterval(t *testing.T) {
	h := newTestHost()
	seen := map[float64]bool{}
	for i := range 32 {
		p := h.Osc(i).Phase()
		require.GreaterOrEqual(t, p, 0.0)
		require.Less(t, p, 1.0)
		seen[p] = true
	}
	assert.Greater(t, len(seen), 1, "phases should not all coincide")
}

func TestOscSeedIsReproducible(t *testing.T) {
	a := New(WithSeed(42)).Osc(0).Phase()
	b := New(WithSeed(42)).Osc(0).Phase()
	assert.Equal(t, a, b)
}

func TestOscHeldNoteUsesConstantStep(t *testing.T) {
	h := newTestHost()
	osc := h.Osc(0)

	osc.Advance(60)
	delta := osc.Delta()
	assert.InDelta(t, 261.6255653005986/sr, delta, 1e-15)
	assert.InDelta(t, 261.6255653005986, osc.Frequency(), 1e-9)

	prev := osc.Phase()
	for i := range 2000 {
		p := osc.Advance(60)
		require.Equal(t, delta, osc.Delta(), "increment recomputed at sample %d", i)

		step := p - prev
		if step < 0 {
			step += 1
		}
		require.InDelta(t, delta, step, 1e-12, "sample %d", i)
		prev = p
	}
}

func TestOscNoteChangeRecomputesImmediately(t *testing.T) {
	h := newTestHost()
	osc := h.Osc(0)

	osc.Advance(69)
	require.InDelta(t, 440/sr, osc.Delta(), 1e-15)

	before := osc.Phase()
	after := osc.Advance(81)
	assert.InDelta(t, 880/sr, osc.Delta(), 1e-15)

	step := after - before
	if step < 0 {
		step += 1
	}
	assert.InDelta(t, 880/sr, step, 1e-12)
}

func TestOscPhaseWrapsIntoUnitInterval(t *testing.T) {
	h := newTestHost()
	osc := h.Osc(0)

	wraps := 0
	prev := osc.Phase()
	for range 10000 {
		p := osc.Advance(100)
		require.Greater(t, p, 0.0)
		require.LessOrEqual(t, p, 1.0)
		if p < prev {
			wraps++
		}
		prev = p
	}

	// note 100 is ~2637 Hz: about 598 cycles in 10000 samples.
	cycles := 10000 * osc.Frequency() / sr
	assert.InDelta(t, cycles, float64(wraps), 1.5)
	assert.False(t, math.IsInf(osc.Phase(), 0))
}

func TestOscResetReseedsPhase(t *testing.T) {
	h := newTestHost()
	osc := h.Osc(0)
	osc.Advance(60)
	before := osc.Phase()

	h.Reset()
	assert.NotEqual(t, before, osc.Phase())
	assert.GreaterOrEqual(t, osc.Phase(), 0.0)
	assert.Less(t, osc.Phase(), 1.0)
}
