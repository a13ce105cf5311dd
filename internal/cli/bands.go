package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eeg/config"
	"github.com/cwbudde/algo-eeg/eeg"
	"github.com/cwbudde/algo-eeg/eeg/band"
)

func (a *app) bandsCommand() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "bands",
		Short: "List the configured frequency bands",
		Example: `  brainstate bands -o table
  brainstate bands --state alpha`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bands := config.FromTable(a.clf.Table())

			if state != "" {
				b, err := a.lookupState(band.Name(state))
				if err != nil {
					return err
				}

				bands = []config.BandConfig{b}
			}

			w := cmd.OutOrStdout()

			switch a.cfg.Output {
			case config.OutputJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(bands)
			case config.OutputYAML:
				return writeYAML(w, bands)
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tRANGE HZ\tLABEL\tCOLOR")

			for _, b := range bands {
				fmt.Fprintf(tw, "%s\t[%g, %g)\t%s\t%s\n", b.Name, b.LowerHz, b.UpperHz, b.Label, b.Color)
			}

			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "show only the named brain state")

	return cmd
}

// lookupState validates a manually chosen state against the band table.
func (a *app) lookupState(name band.Name) (config.BandConfig, error) {
	if !a.clf.Table().Has(name) {
		return config.BandConfig{}, fmt.Errorf("%w: unknown state %q, want one of %v",
			eeg.ErrInvalidInput, name, a.clf.Table().Names())
	}

	info, _ := a.clf.StateInfo(name)

	return config.BandConfig{
		Name:    string(info.Name),
		LowerHz: info.LowerHz,
		UpperHz: info.UpperHz,
		Label:   info.Label,
		Color:   info.Color,
	}, nil
}

func (a *app) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.cfg.YAML()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)

			return err
		},
	}
}
