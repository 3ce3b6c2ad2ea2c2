// Package response measures the impulse and magnitude response of
// per-sample processing functions such as the filters of a function host.
//
// # Usage
//
//	ir := response.Impulse(func(x float64) float64 {
//		return host.Filter(0, funchost.KindLP12).Process(x, 1000, 0.707)
//	}, 4096)
//	spec, err := response.Magnitude(ir, 48000)
//	fmt.Printf("-3 dB point near %.0f Hz\n", spec.Crossing(-3))
package response
