package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/cwbudde/algo-voice/dsp/funchost"
)

type catalogEntry struct {
	group string
	name  string
	arity int
	value float64
}

// catalog records registrations instead of evaluating them.
type catalog struct {
	group   string
	entries []catalogEntry
}

func (c *catalog) DefineConstant(name string, value float64) {
	c.entries = append(c.entries, catalogEntry{group: c.group, name: name, arity: -1, value: value})
}

func (c *catalog) DefineFunction(name string, arity int, _ funchost.Func) {
	c.entries = append(c.entries, catalogEntry{group: c.group, name: name, arity: arity})
}

// nopTables satisfies the oscillator registration without building tables.
type nopTables struct{}

func (nopTables) Sine(_, _ float64) float64 { return 0 }
func (nopTables) Triangle(_, _ float64) float64 { return 0 }
func (nopTables) SawUp(_, _ float64) float64 { return 0 }
func (nopTables) SawDown(_, _ float64) float64 { return 0 }
func (nopTables) Square(_, _ float64) float64 { return 0 }
func (nopTables) Pulse(_, _, _ float64) float64 { return 0 }

func collectFunctions() []catalogEntry {
	host := funchost.New(funchost.WithTables(nopTables{}))
	c := &catalog{}

	c.group = "constant"
	host.AddConstants(c)
	c.group = "utility"
	host.AddUtilities(c)
	c.group = "oscillator"
	host.AddOscillatorFunctions(c)
	c.group = "filter"
	host.AddSynthFilterFunctions(c)

	sort.SliceStable(c.entries, func(i, j int) bool {
		if c.entries[i].group != c.entries[j].group {
			return c.entries[i].group < c.entries[j].group
		}
		return c.entries[i].name < c.entries[j].name
	})
	return c.entries
}

func signature(e catalogEntry) string {
	switch {
	case e.arity < 0:
		return fmt.Sprintf("%s = %.6g", e.name, e.value)
	case e.group == "filter":
		return e.name + "(v, note, q)"
	}
	args := []string{"", "x", "x, y", "x, lo, hi"}
	if e.group == "oscillator" {
		args = []string{"", "note", "note, pw"}
	}
	if e.arity < len(args) {
		return fmt.Sprintf("%s(%s)", e.name, args[e.arity])
	}
	return fmt.Sprintf("%s/%d", e.name, e.arity)
}

func printFunctions(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Group\tSignature\n")
	_, _ = fmt.Fprintf(tw, "-----\t---------\n")
	for _, e := range collectFunctions() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", e.group, signature(e))
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintln(w, "\nVariables: note, velocity, t. With -hz, filters take (v, hz, q).")
}
