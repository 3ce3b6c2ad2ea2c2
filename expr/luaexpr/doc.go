// Package luaexpr evaluates per-sample numeric expressions with an embedded
// Lua interpreter.
//
// Functions registered through [Evaluator.DefineFunction] receive a call-site
// index identifying their textual occurrence. [Evaluator.Compile] assigns the
// indices by rewriting each call so that, for example,
//
//	lp24(sawUp(note), note + 24, 0.7) + sine(note)
//
// is evaluated as
//
//	lp24(0, sawUp(1, note), note + 24, 0.7) + sine(2, note)
//
// Indices are unique across all programs compiled by one evaluator, which
// lets a single function host serve several programs without state collisions.
package luaexpr
