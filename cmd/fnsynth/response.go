package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-voice/dsp/core"
	"github.com/cwbudde/algo-voice/dsp/funchost"
	"github.com/cwbudde/algo-voice/measure/response"
)

const (
	responseLength = 16384
	responseBands  = 24
	barWidth       = 40
	barFloorDB     = -60.0
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	freqStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(10).Align(lipgloss.Right)
	dbStyle    = lipgloss.NewStyle().Width(9).Align(lipgloss.Right)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cutStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

type responseRow struct {
	freq float64
	db   float64
}

// impulseResponse runs an impulse through a single call-site filter in one
// block.
func impulseResponse(kind funchost.Kind, freq, q, sampleRate float64) []float64 {
	host := funchost.New(funchost.WithSampleRate(sampleRate))
	ir := make([]float64, responseLength)
	ir[0] = 1
	host.Filter(0, kind).ProcessBlock(ir, freq, q)
	return ir
}

func responseRows(spec *response.Spectrum, bands int) []responseRow {
	hi := min(20000, spec.SampleRate/2)
	freqs, db := spec.Bands(20, hi, bands)
	rows := make([]responseRow, len(freqs))
	for i := range freqs {
		rows[i] = responseRow{freq: freqs[i], db: db[i]}
	}
	return rows
}

// bar maps a dB value onto [0, barWidth] cells.
func bar(db float64) string {
	if db <= barFloorDB {
		return ""
	}
	n := int((db - barFloorDB) / -barFloorDB * barWidth)
	return strings.Repeat("█", min(n, barWidth))
}

func printResponse(w io.Writer, kind funchost.Kind, freq, q, sampleRate float64) error {
	ir := impulseResponse(kind, freq, q, sampleRate)
	spec, err := response.Magnitude(ir, sampleRate)
	if err != nil {
		return err
	}
	gain, err := response.Gain(ir, min(freq, sampleRate/2), sampleRate)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  f=%.0f Hz  Q=%.3f  sr=%.0f Hz", kind, freq, q, sampleRate)))
	b.WriteString("\n")

	for _, r := range responseRows(spec, responseBands) {
		style := barStyle
		if r.db < -3 && r.db > -9 {
			style = cutStyle
		}
		b.WriteString(freqStyle.Render(fmt.Sprintf("%.0f Hz", r.freq)))
		b.WriteString(dbStyle.Render(fmt.Sprintf("%.1f dB", r.db)))
		b.WriteString(" ")
		b.WriteString(style.Render(bar(r.db)))
		b.WriteString("\n")
	}

	peakFreq, peak := spec.Peak()
	fmt.Fprintf(&b, "peak %.1f dB at %.0f Hz\n", core.LinearToDB(peak), peakFreq)
	fmt.Fprintf(&b, "%.1f dB at %.0f Hz\n", core.LinearToDB(gain), freq)

	_, err = io.WriteString(w, b.String())
	return err
}
