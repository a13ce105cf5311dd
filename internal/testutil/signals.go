package testutil

import (
	"math"
	"math/rand"
)

// Tone is one sinusoidal component of a synthetic recording.
type Tone struct {
	FreqHz    float64
	Amplitude float64
}

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	return Tones(sampleRate, length, Tone{FreqHz: freqHz, Amplitude: amplitude})
}

// Tones generates the sum of the given sinusoids.
func Tones(sampleRate float64, length int, tones ...Tone) []float64 {
	out := make([]float64, length)
	for _, tone := range tones {
		step := 2 * math.Pi * tone.FreqHz / sampleRate
		for i := range out {
			out[i] += tone.Amplitude * math.Sin(step*float64(i))
		}
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// GaussianPulse generates a Gaussian bump centred on sample center.
func GaussianPulse(length, center int, sigma float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		d := float64(i-center) / sigma
		out[i] = math.Exp(-0.5 * d * d)
	}
	return out
}

// Add returns the element-wise sum of equally long signals.
func Add(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}
	out := make([]float64, len(signals[0]))
	for _, s := range signals {
		for i := range out {
			out[i] += s[i]
		}
	}
	return out
}
