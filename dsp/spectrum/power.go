package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

// BinFrequency returns the frequency in Hz of bin k of an n-point DFT.
func BinFrequency(k, n int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(n)
}

// PositiveBins returns the strictly positive frequency bins of a full
// n-point spectrum (k = 1 .. (n-1)/2) and their frequencies. The DC bin, the
// Nyquist bin of even lengths and the mirrored negative frequencies are
// dropped. The returned bins alias spec.
func PositiveBins(spec []complex128, sampleRate float64) ([]float64, []complex128) {
	n := len(spec)
	last := (n - 1) / 2
	if last < 1 {
		return nil, nil
	}

	freqs := make([]float64, last)
	for k := 1; k <= last; k++ {
		freqs[k-1] = BinFrequency(k, n, sampleRate)
	}

	return freqs, spec[1 : last+1]
}

// Power returns |X[k]|^2 for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	n := len(in)
	buf := scratchPool.Get().(*scratchBuf)
	if cap(buf.data) < 2*n {
		buf.data = make([]float64, 2*n)
	}
	re, im := buf.data[:n], buf.data[n:2*n]

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, n)
	vecmath.Power(out, re, im)
	scratchPool.Put(buf)

	return out
}

// PeakIndex returns the index of the largest value. Ties resolve to the
// lowest index. Returns -1 for an empty slice.
func PeakIndex(power []float64) int {
	if len(power) == 0 {
		return -1
	}

	return floats.MaxIdx(power)
}
