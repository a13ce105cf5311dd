package spectrum

import (
	"errors"
	"fmt"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/mjibson/go-dsp/fft"
)

// ErrEmpty is returned when a transform is requested for an empty record.
var ErrEmpty = errors.New("spectrum: empty input")

// RealFFT returns the full n-point DFT of x.
func RealFFT(x []float64) ([]complex128, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmpty
	}

	if !isPowerOf2(n) {
		return fft.FFTReal(x), nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan for %d points: %w", n, err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	return out, nil
}

func isPowerOf2(n int) bool {
	return n > 0 && bits.OnesCount(uint(n)) == 1
}
