// Package funchost keeps the per-call-site state behind stateful functions
// used in per-sample expressions.
//
// An expression compiler assigns every textual function invocation a stable
// integer call-site index. Each time the invocation is evaluated the
// registered function receives that index and the [Host] hands back the
// same state object: an oscillator phase accumulator or the delay lines of
// a 12 or 24 dB/octave filter. Identity is the index, never the arguments,
// so filter memory survives from one sample to the next.
//
// States are allocated lazily the first time an index is seen. Callers that
// run the host on a real-time thread evaluate their expressions once up
// front so every state exists before playback starts.
//
// A Host is used by one voice on one goroutine. Voices own independent hosts.
package funchost
