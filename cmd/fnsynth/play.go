package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	bytesPerFloat32 = 4
	pollInterval    = 10 * time.Millisecond
)

// audioPlayer plays rendered mono buffers on the default output device.
type audioPlayer struct {
	ctx *oto.Context
}

func newAudioPlayer(sampleRate int) (*audioPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &audioPlayer{ctx: ctx}, nil
}

// play blocks until samples have been played.
func (p *audioPlayer) play(samples []float64) {
	player := p.ctx.NewPlayer(bytes.NewReader(encodeFloat32LE(samples)))
	defer func() { _ = player.Close() }()

	player.Play()
	for player.IsPlaying() {
		time.Sleep(pollInterval)
	}
}

func encodeFloat32LE(samples []float64) []byte {
	buf := make([]byte, len(samples)*bytesPerFloat32)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*bytesPerFloat32:], math.Float32bits(float32(s)))
	}
	return buf
}
