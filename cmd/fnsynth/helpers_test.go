package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-voice/dsp/funchost"
	"github.com/cwbudde/algo-voice/internal/testutil"
	"github.com/cwbudde/algo-voice/measure/response"
)

func testSettings() settings {
	return settings{
		expr:       "sine(note)",
		note:       69,
		velocity:   1,
		duration:   0.1,
		sampleRate: 8000,
		attack:     0.01,
		decay:      0.01,
		sustain:    0.5,
		release:    0.02,
		gain:       1,
		seed:       7,
	}
}

func TestRenderNote_LengthAndTail(t *testing.T) {
	s := testSettings()
	samples, err := renderNote(s)
	require.NoError(t, err)

	held := int(s.duration * s.sampleRate)
	tail := int(s.release * releaseTailFactor * s.sampleRate)
	assert.Len(t, samples, held+tail)
	// The release has finished well before the end of the tail.
	for _, v := range samples[len(samples)-40:] {
		assert.Equal(t, 0.0, v)
	}
	st := analyze(samples)
	assert.Greater(t, st.peak, 0.5)
	assert.LessOrEqual(t, st.peak, 1.0+1e-9)
}

func TestRenderNote_BadExpression(t *testing.T) {
	s := testSettings()
	s.expr = "sine(("
	_, err := renderNote(s)
	require.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	st := analyze([]float64{1, -1, 1, -1})
	assert.InDelta(t, 1.0, st.peak, 0)
	assert.InDelta(t, 1.0, st.rms, 1e-12)
	assert.Equal(t, signalStats{}, analyze(nil))
}

func TestToIntBuffer_ClipsAndScales(t *testing.T) {
	buf, err := toIntBuffer([]float64{0, 0.5, 2, -2}, 44100, 16)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 16384, 32767, -32767}, buf.Data)
	assert.Equal(t, 1, buf.Format.NumChannels)

	_, err = toIntBuffer([]float64{0}, 44100, 12)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported bit depth")
}

func TestWriteWAV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	samples := []float64{0, 0.25, -0.25, 1}
	require.NoError(t, writeWAV(path, samples, 8000, 16))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, 8000, buf.Format.SampleRate)
	assert.Equal(t, []int{0, 8192, -8192, 32767}, buf.Data)
}

func TestWriteWAV_BadPath(t *testing.T) {
	err := writeWAV("/nonexistent/dir/out.wav", []float64{0}, 8000, 16)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestEncodeFloat32LE(t *testing.T) {
	b := encodeFloat32LE([]float64{0.5, -1})
	require.Len(t, b, 8)
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(b[0:])))
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(b[4:])))
}

func TestSessionHandle_Commands(t *testing.T) {
	sess := &session{settings: testSettings()}

	msg, quit, err := sess.handle(":note 60")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, "note = 60", msg)
	assert.Equal(t, 60.0, sess.settings.note)

	_, _, err = sess.handle(":save x.wav")
	require.Error(t, err)

	_, _, err = sess.handle(":dur abc")
	require.Error(t, err)

	_, _, err = sess.handle(":bogus")
	require.Error(t, err)

	msg, _, err = sess.handle("sine(note) * 0.5")
	require.NoError(t, err)
	assert.Contains(t, msg, "samples")
	require.NotNil(t, sess.last)

	path := filepath.Join(t.TempDir(), "repl.wav")
	msg, _, err = sess.handle(":save " + path)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path, msg)

	_, quit, err = sess.handle(":quit")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestCollectFunctions(t *testing.T) {
	entries := collectFunctions()

	names := make(map[string]catalogEntry, len(entries))
	for _, e := range entries {
		names[e.name] = e
	}
	for _, want := range []string{"pi", "hz", "sine", "pulse", "noise", "lp24", "notch12"} {
		assert.Contains(t, names, want)
	}
	assert.Equal(t, "pulse(note, pw)", signature(names["pulse"]))
	assert.Equal(t, "lp24(v, note, q)", signature(names["lp24"]))
	assert.Equal(t, "clamp(x, lo, hi)", signature(names["clamp"]))

	var out bytes.Buffer
	printFunctions(&out)
	assert.Contains(t, out.String(), "oscillator")
}

func TestPrintResponse(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printResponse(&out, funchost.KindLP12, 1000, 0.70710678118655, 48000))

	text := out.String()
	assert.Contains(t, text, "lp12")
	assert.Contains(t, text, "dB at 0 Hz")
	assert.Contains(t, text, "-3.0 dB at 1000 Hz")
	assert.Equal(t, responseBands+3, strings.Count(text, "\n"))
}

func TestImpulseResponseMatchesPerSample(t *testing.T) {
	for _, kind := range []funchost.Kind{funchost.KindLP24, funchost.KindBP12, funchost.KindHP24} {
		got := impulseResponse(kind, 700, 2, 44100)
		require.Len(t, got, responseLength)

		filter := funchost.New(funchost.WithSampleRate(44100)).Filter(0, kind)
		want := response.Impulse(func(x float64) float64 {
			return filter.Process(x, 700, 2)
		}, responseLength)
		testutil.RequireClose(t, got, want, 1e-12)
	}
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(-80))
	assert.Equal(t, barWidth, len([]rune(bar(0))))
	assert.Equal(t, barWidth/2, len([]rune(bar(barFloorDB/2))))
}
