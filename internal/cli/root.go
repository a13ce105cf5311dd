// Package cli implements the brainstate command-line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-eeg/config"
	"github.com/cwbudde/algo-eeg/eeg"
	"github.com/cwbudde/algo-eeg/eeg/classifier"
	"github.com/cwbudde/algo-eeg/internal/logging"
	"github.com/cwbudde/algo-eeg/internal/metrics"
)

// Exit codes.
const (
	ExitOK = iota
	ExitFailure
	ExitInvalidInput
	ExitInvalidSamplingRate
	ExitInsufficientSamples
	ExitInvalidConfig
)

// flag name -> configuration key
var boundFlags = map[string]string{
	"log-level":     "log_level",
	"log-format":    "log_format",
	"output":        "output",
	"metrics-file":  "metrics_file",
	"sampling-rate": "sampling_rate_hz",
	"workers":       "workers",
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configFile string
	envFile    string

	v        *viper.Viper
	cfg      *config.Config
	logger   *zap.Logger
	recorder *metrics.Recorder
	clf      *classifier.Classifier
}

// NewRootCommand returns the brainstate command tree reading from stdin and
// writing to stdout and stderr.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	return a.rootCommand()
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "brainstate",
		Short: "Classify EEG signals into brain states",
		Long: `brainstate maps a dominant EEG frequency, or a raw waveform, to one of
the configured frequency bands (delta, theta, alpha, beta, gamma by default).

Waveforms are band-passed between 0.5 and 50 Hz with a zero-phase
Butterworth filter before their power spectrum is analysed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
	}

	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./configs/brainstate.yaml or $HOME/.config/brainstate/brainstate.yaml)")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", logging.FormatJSON, "log format (json, console)")
	pf.StringP("output", "o", config.OutputJSON, "output format (json, yaml, table)")
	pf.String("metrics-file", "", "write Prometheus metrics to this textfile on exit")
	pf.Int("sampling-rate", 256, "default sampling rate in Hz for waveforms without one")

	root.AddCommand(
		a.classifyCommand(),
		a.batchCommand(),
		a.streamCommand(),
		a.bandsCommand(),
		a.configCommand(),
	)

	return root
}

func (a *app) initialize(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}

	v, err := config.NewViper(a.configFile)
	if err != nil {
		return err
	}

	if err := bindFlags(cmd.Flags(), v); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := logging.NewWithWriter(a.stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	table, err := cfg.Table()
	if err != nil {
		return err
	}

	opts := []classifier.Option{
		classifier.WithTable(table),
		classifier.WithSamplingRate(cfg.SamplingRateHz),
		classifier.WithWorkers(cfg.Workers),
		classifier.WithLogger(logger.Named("classifier")),
	}

	if cfg.MetricsFile != "" {
		a.recorder = metrics.NewRecorder()
		opts = append(opts, classifier.WithRecorder(a.recorder))
	}

	clf, err := classifier.New(opts...)
	if err != nil {
		return err
	}

	a.v, a.cfg, a.logger, a.clf = v, cfg, logger, clf

	logger.Debug("configuration loaded",
		zap.String("config_file", v.ConfigFileUsed()),
		zap.Int("sampling_rate_hz", cfg.SamplingRateHz),
		zap.Int("bands", table.Len()),
	)

	return nil
}

// bindFlags binds every known flag present on fs to its configuration key.
func bindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	for name, key := range boundFlags {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}

		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}

	return nil
}

// finish flushes metrics and logs after the command has run.
func (a *app) finish() error {
	var errs []error

	if a.recorder != nil && a.cfg != nil && a.cfg.MetricsFile != "" {
		if err := a.recorder.WriteToTextfile(a.cfg.MetricsFile); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}

	if a.logger != nil {
		if err := logging.Sync(a.logger); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Execute runs the tool with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.rootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if ferr := a.finish(); ferr != nil && err == nil {
		err = ferr
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}

	return ExitCode(err)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, classifier.ErrInvalidConfig):
		return ExitInvalidConfig
	}

	switch eeg.Kind(err) {
	case eeg.KindInvalidInput:
		return ExitInvalidInput
	case eeg.KindInvalidSamplingRate:
		return ExitInvalidSamplingRate
	case eeg.KindInsufficientSamples:
		return ExitInsufficientSamples
	default:
		return ExitFailure
	}
}
