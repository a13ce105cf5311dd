package design

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-eeg/dsp/filter/biquad"
)

// ErrInvalidParams is returned when a design request cannot produce a
// realizable filter.
var ErrInvalidParams = errors.New("design: invalid parameters")

// ButterworthBandpass designs a band-pass cascade from a Butterworth lowpass
// prototype of the given order. The band-pass has 2*order poles and is
// returned as order biquad sections, each with one zero at DC and one at
// Nyquist, normalized to unity gain at the geometric band centre.
//
// order must be positive and even. Cutoffs must satisfy
// 0 < lowHz < highHz < sampleRate/2.
func ButterworthBandpass(lowHz, highHz float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if order <= 0 || order%2 != 0 {
		return nil, ErrInvalidParams
	}

	if !(sampleRate > 0) || !(lowHz > 0) || !(highHz > lowHz) || highHz >= sampleRate/2 {
		return nil, ErrInvalidParams
	}

	fs2 := 2 * sampleRate
	wl := fs2 * math.Tan(math.Pi*lowHz/sampleRate)
	wh := fs2 * math.Tan(math.Pi*highHz/sampleRate)
	halfBW := complex((wh-wl)/2, 0)
	w0sq := complex(wl*wh, 0)

	// Analog centre mapped back through the bilinear transform.
	centreHz := sampleRate / math.Pi * math.Atan(math.Sqrt(wl*wh)/fs2)

	sections := make([]biquad.Coefficients, 0, order)

	// Upper half-plane prototype poles only. Each yields two band-pass poles
	// whose conjugates come from the mirrored prototype pole.
	for k := range order / 2 {
		theta := math.Pi * float64(2*k+1+order) / float64(2*order)
		p := cmplx.Rect(1, theta)

		pb := p * halfBW
		disc := cmplx.Sqrt(pb*pb - w0sq)

		for _, s := range [2]complex128{pb + disc, pb - disc} {
			z := (complex(fs2, 0) + s) / (complex(fs2, 0) - s)

			c, err := bandpassSection(z, centreHz, sampleRate)
			if err != nil {
				return nil, err
			}

			sections = append(sections, c)
		}
	}

	return sections, nil
}

// bandpassSection builds the biquad with poles z, conj(z) and zeros at
// z = 1 and z = -1, scaled to unity magnitude at centreHz.
func bandpassSection(z complex128, centreHz, sampleRate float64) (biquad.Coefficients, error) {
	c := biquad.Coefficients{
		B0: 1,
		B2: -1,
		A1: -2 * real(z),
		A2: real(z)*real(z) + imag(z)*imag(z),
	}

	mag := cmplx.Abs(c.Response(centreHz, sampleRate))
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		return biquad.Coefficients{}, ErrInvalidParams
	}

	g := 1 / mag
	c.B0 = g
	c.B2 = -g

	return c, nil
}
