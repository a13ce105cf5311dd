package zerophase

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-eeg/dsp/filter/biquad"
	"github.com/cwbudde/algo-eeg/dsp/filter/design"
	"github.com/cwbudde/algo-eeg/internal/testutil"
)

func eegBand(t *testing.T, sr float64) []biquad.Coefficients {
	t.Helper()
	s, err := design.ButterworthBandpass(0.5, 50, 4, sr)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestPadLen(t *testing.T) {
	if got := PadLen(4); got != 27 {
		t.Fatalf("PadLen(4) = %d, want 27", got)
	}
	if got := MinLength(4); got != 28 {
		t.Fatalf("MinLength(4) = %d, want 28", got)
	}
}

func TestFilter_PreservesLengthAndInput(t *testing.T) {
	x := testutil.DeterministicNoise(7, 1, 300)
	orig := append([]float64(nil), x...)

	y, err := Filter(eegBand(t, 256), x)
	if err != nil {
		t.Fatal(err)
	}
	if len(y) != len(x) {
		t.Fatalf("len = %d, want %d", len(y), len(x))
	}
	testutil.RequireFinite(t, y)
	testutil.RequireSliceNearlyEqual(t, x, orig, 0)
}

func TestFilter_PassbandToneUnchanged(t *testing.T) {
	const sr = 256.0
	x := testutil.DeterministicSine(10, sr, 1, 2561)

	y, err := Filter(eegBand(t, sr), x)
	if err != nil {
		t.Fatal(err)
	}

	// No phase shift: once the 0.5 Hz edge transients have decayed the tone
	// passes through unchanged.
	d, _ := testutil.MaxAbsDiff(y[1024:1536], x[1024:1536])
	if d > 0.01 {
		t.Fatalf("max deviation in passband = %v, want < 0.01", d)
	}
}

func TestFilter_NoTimeShift(t *testing.T) {
	const sr = 256.0
	x := testutil.GaussianPulse(512, 250, 4)

	y, err := Filter(eegBand(t, sr), x)
	if err != nil {
		t.Fatal(err)
	}

	if idx := testutil.ArgMaxAbs(y); idx != 250 {
		t.Fatalf("filtered peak at %d, want 250", idx)
	}
}

func TestFilter_RemovesDC(t *testing.T) {
	y, err := Filter(eegBand(t, 256), testutil.DC(5, 200))
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range y {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
}

func TestFilter_Errors(t *testing.T) {
	sections := eegBand(t, 256)

	if _, err := Filter(nil, make([]float64, 100)); !errors.Is(err, ErrNoSections) {
		t.Fatalf("empty cascade: got %v", err)
	}
	if _, err := Filter(sections, make([]float64, 27)); !errors.Is(err, ErrTooShort) {
		t.Fatalf("27 samples: got %v, want ErrTooShort", err)
	}
	if _, err := Filter(sections, make([]float64, 28)); err != nil {
		t.Fatalf("28 samples: unexpected error %v", err)
	}
}

func TestOddExtend(t *testing.T) {
	got := oddExtend([]float64{1, 2, 4, 7}, 2)
	want := []float64{-2, 0, 1, 2, 4, 7, 10, 12}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}
