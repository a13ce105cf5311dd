package zerophase

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-eeg/dsp/filter/biquad"
)

var (
	// ErrNoSections is returned for an empty cascade.
	ErrNoSections = errors.New("zerophase: no filter sections")
	// ErrTooShort is returned when the record is not longer than the padding.
	ErrTooShort = errors.New("zerophase: signal too short")
)

// PadLen returns the odd-extension length used for a cascade of the given
// number of biquad sections: three times the length of the equivalent
// transfer function polynomial.
func PadLen(sections int) int {
	return 3 * (2*sections + 1)
}

// MinLength returns the shortest record Filter accepts for the cascade.
func MinLength(sections int) int {
	return PadLen(sections) + 1
}

// Filter returns the zero-phase filtered copy of x. x is not modified.
func Filter(sections []biquad.Coefficients, x []float64) ([]float64, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}

	pad := PadLen(len(sections))

	n := len(x)
	if n <= pad {
		return nil, fmt.Errorf("%w: %d samples, need at least %d", ErrTooShort, n, pad+1)
	}

	ext := oddExtend(x, pad)
	chain := biquad.NewChain(sections)

	chain.Prime(ext[0])
	chain.ProcessBlock(ext)

	reverse(ext)
	chain.Prime(ext[0])
	chain.ProcessBlock(ext)
	reverse(ext)

	out := make([]float64, n)
	copy(out, ext[pad:pad+n])

	return out, nil
}

// oddExtend mirrors pad samples at each end of x through the end points.
// Requires len(x) > pad.
func oddExtend(x []float64, pad int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*pad)

	first, last := x[0], x[n-1]
	for i := range pad {
		ext[i] = 2*first - x[pad-i]
		ext[pad+n+i] = 2*last - x[n-2-i]
	}

	copy(ext[pad:], x)

	return ext
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
