// Package voice renders a single monophonic voice from a per-sample
// expression.
//
// A [Voice] compiles the expression once against its own function host, so
// every oscillator and filter call in the expression keeps private state.
// The expression sees the variables note, velocity and t (seconds since the
// last note-on) and its result is shaped by an ADSR envelope.
package voice
