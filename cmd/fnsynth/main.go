// Command fnsynth renders, plays and inspects expression-driven synth voices.
//
// Usage:
//
//	fnsynth [flags]
//
// Examples:
//
//	fnsynth -expr "lp24(sawUp(note), note + 30, 2)" -note 45 -out bass.wav
//	fnsynth -expr "sine(note) * 0.5" -play
//	fnsynth -repl -play
//	fnsynth -response lp24 -freq 1000 -q 0.707
//	fnsynth -list
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cwbudde/algo-voice/dsp/core"
	"github.com/cwbudde/algo-voice/dsp/filter/biquad"
	"github.com/cwbudde/algo-voice/dsp/filter/design"
	"github.com/cwbudde/algo-voice/dsp/funchost"
	"github.com/cwbudde/algo-voice/synth/voice"
)

const (
	defaultExpr     = "lp24(sawUp(note), note + 36, 1) * 0.5"
	defaultBitDepth = 16
)

// settings collects everything needed to build and render a voice.
type settings struct {
	expr       string
	note       float64
	velocity   float64
	duration   float64
	sampleRate float64
	attack     float64
	decay      float64
	sustain    float64
	release    float64
	gain       float64
	hzFilters  bool
	seed       uint64
}

func (s settings) voiceOptions() []voice.Option {
	opts := []voice.Option{
		voice.WithProcessorOptions(core.WithSampleRate(s.sampleRate)),
		voice.WithEnvelope(s.attack, s.decay, s.sustain, s.release),
		voice.WithGain(s.gain),
	}
	if s.hzFilters {
		opts = append(opts, voice.WithFilterUnits(voice.FilterHz))
	}
	if s.seed != 0 {
		opts = append(opts, voice.WithSeed(s.seed))
	}
	return opts
}

func main() {
	var s settings
	flag.StringVar(&s.expr, "expr", defaultExpr, "per-sample expression")
	flag.Float64Var(&s.note, "note", 57, "MIDI note number")
	flag.Float64Var(&s.velocity, "velocity", 1, "note velocity (0..1)")
	flag.Float64Var(&s.duration, "dur", 1, "held duration in seconds (release tail is added)")
	flag.Float64Var(&s.sampleRate, "sr", core.DefaultSampleRate, "sample rate in Hz")
	flag.Float64Var(&s.attack, "attack", 0.005, "attack time in seconds")
	flag.Float64Var(&s.decay, "decay", 0.2, "decay time in seconds")
	flag.Float64Var(&s.sustain, "sustain", 0.7, "sustain level (0..1)")
	flag.Float64Var(&s.release, "release", 0.3, "release time in seconds")
	flag.Float64Var(&s.gain, "gain", 1, "linear output gain")
	flag.BoolVar(&s.hzFilters, "hz", false, "filter cutoffs in Hz instead of MIDI notes")
	flag.Uint64Var(&s.seed, "seed", 0, "random seed for oscillator phases and noise (0 = random)")

	out := flag.String("out", "", "write the rendered note to this WAV file")
	bitDepth := flag.Int("bits", defaultBitDepth, "WAV bit depth (16, 24 or 32)")
	play := flag.Bool("play", false, "play the rendered note on the default audio device")
	replMode := flag.Bool("repl", false, "read expressions interactively")
	responseKind := flag.String("response", "", "print the magnitude response of a filter kind")
	freq := flag.Float64("freq", 1000, "filter cutoff in Hz for -response")
	q := flag.Float64("q", design.ButterworthQ, "filter Q for -response")
	list := flag.Bool("list", false, "list the available functions")
	verbose := flag.Bool("v", false, "verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fnsynth [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders a note from a per-sample expression.\n")
		fmt.Fprintf(os.Stderr, "Variables: note, velocity, t. Filter cutoffs are MIDI notes unless -hz is set.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fnsynth -expr \"lp24(sawUp(note), note + 30, 2)\" -out bass.wav\n")
		fmt.Fprintf(os.Stderr, "  fnsynth -repl -play\n")
		fmt.Fprintf(os.Stderr, "  fnsynth -response bp12 -freq 2000 -q 4\n")
	}
	flag.Parse()

	if *list {
		printFunctions(os.Stdout)
		return
	}

	if *responseKind != "" {
		kind, ok := funchost.ParseFilterKind(strings.ToLower(*responseKind))
		if !ok {
			log.Fatalf("unknown filter kind %q (use -list to see available)", *responseKind)
		}
		if *verbose {
			log.Printf("biquad block kernel: %s", biquad.BlockKernel())
		}
		if err := printResponse(os.Stdout, kind, *freq, *q, s.sampleRate); err != nil {
			log.Fatalf("response: %v", err)
		}
		return
	}

	var player *audioPlayer
	if *play {
		var err error
		player, err = newAudioPlayer(int(s.sampleRate))
		if err != nil {
			log.Fatalf("audio: %v", err)
		}
	}

	if *replMode {
		if err := repl(s, player); err != nil {
			log.Fatalf("repl: %v", err)
		}
		return
	}

	samples, err := renderNote(s)
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	if *verbose {
		st := analyze(samples)
		log.Printf("Rendered %d samples at %.0f Hz: peak %.3f, RMS %.3f", len(samples), s.sampleRate, st.peak, st.rms)
	}

	if *out != "" {
		if err := writeWAV(*out, samples, int(s.sampleRate), *bitDepth); err != nil {
			log.Fatalf("write: %v", err)
		}
		if *verbose {
			log.Printf("Wrote %s", *out)
		}
	}

	if player != nil {
		player.play(samples)
	}

	if *out == "" && player == nil {
		st := analyze(samples)
		fmt.Printf("%d samples, peak %.3f, RMS %.3f (use -out or -play)\n", len(samples), st.peak, st.rms)
	}
}
