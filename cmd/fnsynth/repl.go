package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

const replHelp = `Enter an expression to render it with the current settings.
Commands:
  :note N        set the MIDI note
  :dur S         set the held duration in seconds
  :vel V         set the velocity
  :save FILE     write the last rendering to a WAV file
  :help          show this text
  :quit          leave`

// session is the mutable state of one REPL run.
type session struct {
	settings settings
	player   *audioPlayer
	last     []float64
}

func repl(s settings, player *audioPlayer) error {
	rl, err := readline.New("fn> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	sess := &session{settings: s, player: player}
	fmt.Println(replHelp)

	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if err != nil {
			fmt.Println(err)
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		msg, quit, err := sess.handle(line)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		if msg != "" {
			fmt.Println(msg)
		}
		if quit {
			return nil
		}
	}
}

// handle runs one REPL line and returns the text to print.
func (sess *session) handle(line string) (string, bool, error) {
	if !strings.HasPrefix(line, ":") {
		return sess.render(line)
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return replHelp, false, nil
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "quit", "q", "exit":
		return "", true, nil
	case "help", "h":
		return replHelp, false, nil
	case "note", "dur", "vel":
		if len(args) != 1 {
			return "", false, fmt.Errorf(":%s expects one number", cmd)
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return "", false, fmt.Errorf(":%s: %w", cmd, err)
		}
		switch cmd {
		case "note":
			sess.settings.note = v
		case "dur":
			sess.settings.duration = v
		case "vel":
			sess.settings.velocity = v
		}
		return fmt.Sprintf("%s = %g", cmd, v), false, nil
	case "save":
		if len(args) != 1 {
			return "", false, errors.New(":save expects a file name")
		}
		if sess.last == nil {
			return "", false, errors.New("nothing rendered yet")
		}
		if err := writeWAV(args[0], sess.last, int(sess.settings.sampleRate), defaultBitDepth); err != nil {
			return "", false, err
		}
		return "wrote " + args[0], false, nil
	default:
		return "", false, fmt.Errorf("unknown command :%s", cmd)
	}
}

func (sess *session) render(expr string) (string, bool, error) {
	s := sess.settings
	s.expr = expr

	samples, err := renderNote(s)
	if err != nil {
		return "", false, err
	}
	sess.settings.expr = expr
	sess.last = samples

	if sess.player != nil {
		sess.player.play(samples)
	}

	st := analyze(samples)
	return fmt.Sprintf("%d samples, peak %.3f, RMS %.3f", len(samples), st.peak, st.rms), false, nil
}
