package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-voice/synth/voice"
)

const (
	wavFormatPCM = 1

	// releaseTailFactor extends rendering past the release time so the
	// envelope reaches idle even when the release starts above 1.
	releaseTailFactor = 1.5

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0
)

// renderNote plays one note for s.duration seconds, releases it and renders
// until the envelope is idle or the tail budget is spent.
func renderNote(s settings) ([]float64, error) {
	v, err := voice.New(s.expr, s.voiceOptions()...)
	if err != nil {
		return nil, err
	}
	defer v.Close()

	if err := v.Prewarm(); err != nil {
		return nil, err
	}

	held := int(s.duration * s.sampleRate)
	tail := int(s.release * releaseTailFactor * s.sampleRate)
	out := make([]float64, held+tail)

	v.NoteOn(s.note, s.velocity)
	if err := v.Render(out[:held]); err != nil {
		return nil, err
	}
	v.NoteOff()
	if err := v.Render(out[held:]); err != nil {
		return nil, err
	}
	return out, nil
}

type signalStats struct {
	peak float64
	rms  float64
}

func analyze(samples []float64) signalStats {
	if len(samples) == 0 {
		return signalStats{}
	}
	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s))
	}
	return signalStats{
		peak: peak,
		rms:  math.Sqrt(f64.DotProduct(samples, samples) / float64(len(samples))),
	}
}

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16:
		return maxInt16, nil
	case 24:
		return maxInt24, nil
	case 32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}
}

// toIntBuffer converts mono float samples to clipped PCM integers.
func toIntBuffer(samples []float64, sampleRate, bitDepth int) (*audio.IntBuffer, error) {
	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		s = math.Max(-1, math.Min(1, s))
		data[i] = int(math.Round(s * scale))
	}

	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}, nil
}

func writeWAV(path string, samples []float64, sampleRate, bitDepth int) error {
	buf, err := toIntBuffer(samples, sampleRate, bitDepth)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 1, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode WAV: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return f.Close()
}
