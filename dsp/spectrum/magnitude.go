package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

type splitBuf struct {
	data []float64
}

var splitPool = sync.Pool{
	New: func() any { return &splitBuf{} },
}

// split copies the real and imaginary parts of in into pooled scratch.
func split(in []complex128) (re, im []float64, buf *splitBuf) {
	buf = splitPool.Get().(*splitBuf)
	n := len(in)
	if cap(buf.data) < 2*n {
		buf.data = make([]float64, 2*n)
	}
	re, im = buf.data[:n], buf.data[n:2*n]
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, buf
}

// Magnitude returns |X[k]| for each bin. Only the output slice is allocated
// once the scratch pool is warm.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	re, im, buf := split(in)
	vecmath.Magnitude(out, re, im)
	splitPool.Put(buf)
	return out
}
