// Package envelope provides a linear ADSR envelope generator.
//
// [ADSR] is a capability-only primitive: it never triggers itself. The
// owning voice sets [ADSR.Stage] to [StageAttack] on note-on and to
// [StageRelease] on note-off, then calls [ADSR.Process] once per sample (or
// one of the buffer forms once per block).
package envelope
