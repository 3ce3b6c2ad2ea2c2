package envelope_test

import (
	"fmt"

	"github.com/cwbudde/algo-voice/dsp/envelope"
)

func ExampleADSR() {
	env := envelope.New(1000)
	env.SetAttack(0.004)
	env.SetDecay(0.004)
	env.SetSustainLevel(0.5)
	env.SetRelease(0.002)

	env.Stage = envelope.StageAttack
	for range 6 {
		fmt.Printf("%.2f %s\n", env.Process(), env.Stage)
	}

	env.Stage = envelope.StageRelease
	for range 2 {
		fmt.Printf("%.2f %s\n", env.Process(), env.Stage)
	}
	// Output:
	// 0.25 attack
	// 0.50 attack
	// 0.75 attack
	// 1.00 decay
	// 0.75 decay
	// 0.50 sustain
	// 0.00 idle
	// 0.00 idle
}
