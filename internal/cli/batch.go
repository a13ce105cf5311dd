package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-eeg/eeg"
	"github.com/cwbudde/algo-eeg/eeg/classifier"
)

// maxLineBytes bounds one JSON-lines request; a 60 s waveform at 1 kHz fits.
const maxLineBytes = 4 << 20

func (a *app) batchCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Classify a JSON-lines file of requests concurrently",
		Long: `batch reads one classification request per line and classifies them on a
bounded worker pool. Failed requests are reported in the output and do not
stop the batch.`,
		Example: `  brainstate batch --input requests.jsonl --workers 4 -o table`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.open(input)
			if err != nil {
				return err
			}
			defer f.Close()

			reqs, err := readRequests(f)
			if err != nil {
				return err
			}

			outcomes, err := a.clf.ClassifyBatch(cmd.Context(), reqs)
			if err != nil {
				return err
			}

			records := make([]record, len(outcomes))
			failed := 0

			for i, o := range outcomes {
				records[i] = a.newRecord(o.Result, o.Err)
				records[i].Index = &outcomes[i].Index

				if o.Err != nil {
					failed++
				}
			}

			a.logger.Info("batch complete",
				zap.Int("requests", len(reqs)),
				zap.Int("failed", failed),
				zap.Int("workers", a.clf.Workers()),
			)

			return a.writeRecords(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "JSON-lines request file, - for stdin")
	cmd.Flags().Int("workers", 0, "concurrent classifications (0 = one per CPU)")

	return cmd
}

func readRequests(r io.Reader) ([]classifier.Request, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var reqs []classifier.Request

	for line := 1; sc.Scan(); line++ {
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}

		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()

		var req classifier.Request
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", eeg.ErrInvalidInput, line, err)
		}

		reqs = append(reqs, req)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}

	return reqs, nil
}
