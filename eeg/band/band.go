package band

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTable is returned by NewTable for malformed band definitions.
var ErrInvalidTable = errors.New("band: invalid table")

// Name identifies a band, e.g. "alpha".
type Name string

// Names of the default bands.
const (
	Delta Name = "delta"
	Theta Name = "theta"
	Alpha Name = "alpha"
	Beta  Name = "beta"
	Gamma Name = "gamma"
)

// Band is one half-open frequency range with its display metadata.
type Band struct {
	Name    Name    `json:"name" yaml:"name"`
	LowerHz float64 `json:"lower_hz" yaml:"lower_hz"`
	UpperHz float64 `json:"upper_hz" yaml:"upper_hz"`
	Label   string  `json:"label" yaml:"label"`
	Color   string  `json:"color" yaml:"color"`
}

// Contains reports whether LowerHz <= f < UpperHz.
func (b Band) Contains(f float64) bool {
	return f >= b.LowerHz && f < b.UpperHz
}

// Table is an ordered, validated, immutable set of bands.
type Table struct {
	bands []Band
	index map[Name]int
}

// NewTable validates bands and returns a table. Bands must be non-empty,
// uniquely named, sorted ascending by LowerHz, non-overlapping and have
// 0 <= LowerHz < UpperHz.
func NewTable(bands ...Band) (*Table, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: no bands", ErrInvalidTable)
	}

	t := &Table{
		bands: make([]Band, len(bands)),
		index: make(map[Name]int, len(bands)),
	}

	for i, b := range bands {
		switch {
		case b.Name == "":
			return nil, fmt.Errorf("%w: band %d has no name", ErrInvalidTable, i)
		case math.IsNaN(b.LowerHz) || math.IsNaN(b.UpperHz) || math.IsInf(b.LowerHz, 0):
			return nil, fmt.Errorf("%w: %s has a non-finite bound", ErrInvalidTable, b.Name)
		case b.LowerHz < 0:
			return nil, fmt.Errorf("%w: %s lower bound %g is negative", ErrInvalidTable, b.Name, b.LowerHz)
		case b.LowerHz >= b.UpperHz:
			return nil, fmt.Errorf("%w: %s range [%g, %g) is empty", ErrInvalidTable, b.Name, b.LowerHz, b.UpperHz)
		}

		if _, dup := t.index[b.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate band %q", ErrInvalidTable, b.Name)
		}

		if i > 0 && b.LowerHz < bands[i-1].UpperHz {
			return nil, fmt.Errorf("%w: %s [%g, %g) overlaps or precedes %s",
				ErrInvalidTable, b.Name, b.LowerHz, b.UpperHz, bands[i-1].Name)
		}

		t.bands[i] = b
		t.index[b.Name] = i
	}

	return t, nil
}

// Default returns the five-band table: delta, theta, alpha, beta, gamma.
// There is no band between 12 and 13 Hz; such frequencies saturate to gamma.
func Default() *Table {
	t, err := NewTable(
		Band{Name: Delta, LowerHz: 0, UpperHz: 4, Label: "Sleep/Deep Rest", Color: "#9C27B0"},
		Band{Name: Theta, LowerHz: 4, UpperHz: 8, Label: "Tired/Drowsy", Color: "#3F51B5"},
		Band{Name: Alpha, LowerHz: 8, UpperHz: 12, Label: "Calm/Relaxed", Color: "#4CAF50"},
		Band{Name: Beta, LowerHz: 13, UpperHz: 30, Label: "Alert/Active", Color: "#FF9800"},
		Band{Name: Gamma, LowerHz: 30, UpperHz: 100, Label: "Highly Engaged", Color: "#F44336"},
	)
	if err != nil {
		panic(err)
	}

	return t
}

// Classify returns the first band whose range contains freqHz. Negative
// input is treated as 0 Hz. Unmatched input saturates to the last band.
func (t *Table) Classify(freqHz float64) Name {
	if freqHz < 0 {
		freqHz = 0
	}

	for _, b := range t.bands {
		if b.Contains(freqHz) {
			return b.Name
		}
	}

	return t.bands[len(t.bands)-1].Name
}

// Info returns the band called name. The boolean is false for unknown names.
func (t *Table) Info(name Name) (Band, bool) {
	i, ok := t.index[name]
	if !ok {
		return Band{}, false
	}

	return t.bands[i], true
}

// Has reports whether the table defines name.
func (t *Table) Has(name Name) bool {
	_, ok := t.index[name]
	return ok
}

// Bands returns a copy of the bands in ascending order.
func (t *Table) Bands() []Band {
	out := make([]Band, len(t.bands))
	copy(out, t.bands)

	return out
}

// Names returns the band names in ascending order.
func (t *Table) Names() []Name {
	out := make([]Name, len(t.bands))
	for i, b := range t.bands {
		out[i] = b.Name
	}

	return out
}

// Len returns the number of bands.
func (t *Table) Len() int {
	return len(t.bands)
}
