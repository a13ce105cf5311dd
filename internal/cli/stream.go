package cli

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-eeg/config"
	"github.com/cwbudde/algo-eeg/eeg"
	"github.com/cwbudde/algo-eeg/eeg/stream"
)

func (a *app) streamCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Classify a sample feed once per update interval",
		Long: `stream reads whitespace-separated samples and classifies the most recent
window_duration of signal every update_interval, emitting one record per
update.`,
		Example: `  brainstate stream --input recording.txt -o table`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.open(input)
			if err != nil {
				return err
			}
			defer f.Close()

			var (
				records []record
				werr    error
			)

			emit := func(u stream.Update) {
				r := a.newRecord(u.Result, u.Err)
				r.Seq = u.Seq
				records = append(records, r)

				if u.Err != nil {
					a.logger.Warn("window not classified", zap.Uint64("seq", u.Seq), zap.Error(u.Err))
				}
			}

			// JSON lines are written as updates arrive; other formats at the end.
			incremental := a.cfg.Output == config.OutputJSON

			flush := func() {
				if werr == nil && len(records) > 0 {
					werr = a.writeRecords(cmd.OutOrStdout(), records)
				}
				records = records[:0]
			}

			mon, err := stream.NewMonitor(a.clf, emit,
				stream.WithSamplingRate(a.cfg.SamplingRateHz),
				stream.WithWindow(a.cfg.WindowDuration),
				stream.WithUpdateInterval(a.cfg.UpdateInterval),
			)
			if err != nil {
				return err
			}

			sc := bufio.NewScanner(f)
			sc.Split(bufio.ScanWords)

			chunk := make([]float64, 0, mon.HopSamples())
			n := 0

			for sc.Scan() {
				v, err := strconv.ParseFloat(sc.Text(), 64)
				if err != nil {
					return fmt.Errorf("%w: sample %d: %w", eeg.ErrInvalidInput, n, err)
				}
				n++

				chunk = append(chunk, v)
				if len(chunk) == cap(chunk) {
					mon.Push(chunk...)
					chunk = chunk[:0]

					if incremental {
						flush()
					}
				}
			}

			if err := sc.Err(); err != nil {
				return fmt.Errorf("read samples: %w", err)
			}

			mon.Push(chunk...)
			flush()

			a.logger.Info("stream complete", zap.Int("samples", n))

			return werr
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "sample file, - for stdin")

	return cmd
}
