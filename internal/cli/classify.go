package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eeg/eeg"
	"github.com/cwbudde/algo-eeg/eeg/classifier"
)

func (a *app) classifyCommand() *cobra.Command {
	var (
		frequency float64
		input     string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one frequency or waveform request",
		Example: `  brainstate classify --frequency 10.5
  brainstate classify --input request.json
  echo '{"waveform":[...],"sampling_rate_hz":256}' | brainstate classify --input -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hasFreq := cmd.Flags().Changed("frequency")

			var req classifier.Request

			switch {
			case hasFreq && input != "":
				return fmt.Errorf("%w: --frequency and --input are mutually exclusive", eeg.ErrInvalidInput)
			case hasFreq:
				req = classifier.FrequencyRequest(frequency)
			case input != "":
				r, err := a.readRequest(input)
				if err != nil {
					return err
				}
				req = r
			default:
				return fmt.Errorf("%w: one of --frequency or --input is required", eeg.ErrInvalidInput)
			}

			res, err := a.clf.Classify(req)
			if err != nil {
				return err
			}

			return a.writeRecords(cmd.OutOrStdout(), []record{a.newRecord(res, nil)})
		},
	}

	cmd.Flags().Float64Var(&frequency, "frequency", 0, "dominant frequency in Hz")
	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON request file, - for stdin")

	return cmd
}

func (a *app) open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(a.stdin), nil
	}

	return os.Open(path)
}

func (a *app) readRequest(path string) (classifier.Request, error) {
	f, err := a.open(path)
	if err != nil {
		return classifier.Request{}, err
	}
	defer f.Close()

	var req classifier.Request

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, fmt.Errorf("%w: empty request", eeg.ErrInvalidInput)
		}

		return req, fmt.Errorf("%w: decode request: %w", eeg.ErrInvalidInput, err)
	}

	return req, nil
}
