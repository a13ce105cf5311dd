// Package bandpower accounts spectral power per frequency band and reports
// each band's share of the in-band total in percent.
package bandpower

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-eeg/eeg"
	"github.com/cwbudde/algo-eeg/eeg/band"
)

// Calculate sums power over each band's [LowerHz, UpperHz) range and
// normalizes the sums to percent of their total. Bins outside every band
// (gaps and above the table) do not contribute. If the total is zero every
// band reports 0.
//
// The result always holds one entry per band of table.
func Calculate(table *band.Table, frequencies, power []float64) (map[band.Name]float64, error) {
	if len(frequencies) != len(power) {
		return nil, fmt.Errorf("%w: %d frequencies, %d power values",
			eeg.ErrInvalidInput, len(frequencies), len(power))
	}

	bands := table.Bands()
	sums := make([]float64, len(bands))

	for i, f := range frequencies {
		for j, b := range bands {
			if b.Contains(f) {
				sums[j] += power[i]
				break
			}
		}
	}

	out := make(map[band.Name]float64, len(bands))

	total := floats.Sum(sums)
	if total > 0 {
		floats.Scale(100/total, sums)
	} else {
		floats.Scale(0, sums)
	}

	for j, b := range bands {
		out[b.Name] = sums[j]
	}

	return out, nil
}

// Dominant returns the band with the largest share. Ties, including the
// all-zero case, resolve to the lowest band.
func Dominant(powers map[band.Name]float64, table *band.Table) band.Name {
	names := table.Names()

	shares := make([]float64, len(names))
	for i, name := range names {
		shares[i] = powers[name]
	}

	return names[floats.MaxIdx(shares)]
}
