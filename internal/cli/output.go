package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-eeg/config"
	"github.com/cwbudde/algo-eeg/eeg"
	"github.com/cwbudde/algo-eeg/eeg/band"
	"github.com/cwbudde/algo-eeg/eeg/bandpower"
	"github.com/cwbudde/algo-eeg/eeg/classifier"
)

// record is the external form of one classification.
type record struct {
	Index               *int                  `json:"index,omitempty" yaml:"index,omitempty"`
	Seq                 uint64                `json:"seq,omitempty" yaml:"seq,omitempty"`
	Band                band.Name             `json:"band,omitempty" yaml:"band,omitempty"`
	Label               string                `json:"label,omitempty" yaml:"label,omitempty"`
	Color               string                `json:"color,omitempty" yaml:"color,omitempty"`
	DominantFrequencyHz *float64              `json:"dominant_frequency_hz,omitempty" yaml:"dominant_frequency_hz,omitempty"`
	BandPowers          map[band.Name]float64 `json:"band_powers,omitempty" yaml:"band_powers,omitempty"`
	StrongestBand       band.Name             `json:"strongest_band,omitempty" yaml:"strongest_band,omitempty"`
	Error               string                `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorKind           string                `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
}

func (a *app) newRecord(res classifier.Result, err error) record {
	if err != nil {
		return record{Error: err.Error(), ErrorKind: eeg.Kind(err)}
	}

	r := record{
		Band:                res.Band,
		DominantFrequencyHz: res.DominantFrequencyHz,
		BandPowers:          res.BandPowers,
	}

	if res.BandPowers != nil {
		r.StrongestBand = bandpower.Dominant(res.BandPowers, a.clf.Table())
	}

	if info, ok := a.clf.StateInfo(res.Band); ok {
		r.Label, r.Color = info.Label, info.Color
	}

	return r
}

// writeRecords renders records in the configured output format. JSON output
// is one object per line.
func (a *app) writeRecords(w io.Writer, records []record) error {
	switch a.cfg.Output {
	case config.OutputYAML:
		if len(records) == 1 {
			return writeYAML(w, records[0])
		}

		return writeYAML(w, records)
	case config.OutputTable:
		return a.writeRecordTable(w, records)
	default:
		enc := json.NewEncoder(w)
		for _, r := range records {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}

		return nil
	}
}

func (a *app) writeRecordTable(w io.Writer, records []record) error {
	names := a.clf.Table().Names()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"#", "BAND", "LABEL", "DOMINANT HZ"}
	for _, n := range names {
		header = append(header, strings.ToUpper(string(n))+" %")
	}
	fmt.Fprintln(tw, strings.Join(append(header, "STRONGEST", "ERROR"), "\t"))

	for i, r := range records {
		idx := i
		switch {
		case r.Index != nil:
			idx = *r.Index
		case r.Seq > 0:
			idx = int(r.Seq)
		}

		row := []string{fmt.Sprint(idx), string(r.Band), r.Label, "-"}
		if r.DominantFrequencyHz != nil {
			row[3] = fmt.Sprintf("%.2f", *r.DominantFrequencyHz)
		}

		for _, n := range names {
			if p, ok := r.BandPowers[n]; ok {
				row = append(row, fmt.Sprintf("%.1f", p))
			} else {
				row = append(row, "-")
			}
		}

		strongest := "-"
		if r.StrongestBand != "" {
			strongest = string(r.StrongestBand)
		}

		fmt.Fprintln(tw, strings.Join(append(row, strongest, r.ErrorKind), "\t"))
	}

	return tw.Flush()
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}
