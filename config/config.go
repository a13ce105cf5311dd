// Package config loads the brainstate tool configuration from defaults, an
// optional YAML file, an optional .env file and BRAINSTATE_* environment
// variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-eeg/eeg/band"
	"github.com/cwbudde/algo-eeg/eeg/preprocess"
	"github.com/cwbudde/algo-eeg/internal/logging"
)

// EnvPrefix prefixes every environment variable read by the tool.
const EnvPrefix = "BRAINSTATE"

// Output formats.
const (
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTable = "table"
)

// ErrInvalidConfig is returned by Validate and Load.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the effective tool configuration.
type Config struct {
	SamplingRateHz int           `mapstructure:"sampling_rate_hz" yaml:"sampling_rate_hz"`
	UpdateInterval time.Duration `mapstructure:"update_interval" yaml:"update_interval"`
	WindowDuration time.Duration `mapstructure:"window_duration" yaml:"window_duration"`
	Workers        int           `mapstructure:"workers" yaml:"workers"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat      string        `mapstructure:"log_format" yaml:"log_format"`
	Output         string        `mapstructure:"output" yaml:"output"`
	MetricsFile    string        `mapstructure:"metrics_file" yaml:"metrics_file,omitempty"`
	Bands          []BandConfig  `mapstructure:"bands" yaml:"bands"`
}

// BandConfig describes one band of the classification table.
type BandConfig struct {
	Name    string  `mapstructure:"name" yaml:"name" json:"name"`
	LowerHz float64 `mapstructure:"lower_hz" yaml:"lower_hz" json:"lower_hz"`
	UpperHz float64 `mapstructure:"upper_hz" yaml:"upper_hz" json:"upper_hz"`
	Label   string  `mapstructure:"label" yaml:"label" json:"label"`
	Color   string  `mapstructure:"color" yaml:"color" json:"color"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("sampling_rate_hz", 256)
	v.SetDefault("update_interval", "1s")
	v.SetDefault("window_duration", "2s")
	v.SetDefault("workers", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", logging.FormatJSON)
	v.SetDefault("output", OutputJSON)
	v.SetDefault("metrics_file", "")
}

// NewViper returns a viper instance with defaults and environment binding.
// If configFile is empty the standard locations are searched and a missing
// file is not an error.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}

		return v, nil
	}

	v.SetConfigName("brainstate")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "brainstate"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	return v, nil
}

// LoadDotEnv loads environment variables from path without overriding
// variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("config: load %s: %w", path, err)
	}

	return nil
}

// Load decodes and validates the configuration held by v. An empty band list
// is replaced by the default table.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: unable to decode: %w", ErrInvalidConfig, err)
	}

	if len(cfg.Bands) == 0 {
		cfg.Bands = FromTable(band.Default())
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cfg for values the tool cannot run with.
func Validate(cfg *Config) error {
	if cfg.SamplingRateHz <= preprocess.MinSamplingRateHz {
		return fmt.Errorf("%w: sampling_rate_hz must exceed %d, got %d",
			ErrInvalidConfig, preprocess.MinSamplingRateHz, cfg.SamplingRateHz)
	}

	if cfg.UpdateInterval <= 0 {
		return fmt.Errorf("%w: update_interval must be positive", ErrInvalidConfig)
	}

	if cfg.WindowDuration < cfg.UpdateInterval {
		return fmt.Errorf("%w: window_duration %v is shorter than update_interval %v",
			ErrInvalidConfig, cfg.WindowDuration, cfg.UpdateInterval)
	}

	if cfg.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative", ErrInvalidConfig)
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch cfg.LogFormat {
	case logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("%w: log_format must be json or console, got %q", ErrInvalidConfig, cfg.LogFormat)
	}

	switch cfg.Output {
	case OutputJSON, OutputYAML, OutputTable:
	default:
		return fmt.Errorf("%w: output must be json, yaml or table, got %q", ErrInvalidConfig, cfg.Output)
	}

	if _, err := cfg.Table(); err != nil {
		return err
	}

	return nil
}

// Table builds the band table described by cfg.Bands.
func (c *Config) Table() (*band.Table, error) {
	bands := make([]band.Band, len(c.Bands))
	for i, b := range c.Bands {
		bands[i] = band.Band{
			Name:    band.Name(b.Name),
			LowerHz: b.LowerHz,
			UpperHz: b.UpperHz,
			Label:   b.Label,
			Color:   b.Color,
		}
	}

	t, err := band.NewTable(bands...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return t, nil
}

// FromTable converts a band table to its configuration form.
func FromTable(t *band.Table) []BandConfig {
	bands := t.Bands()
	out := make([]BandConfig, len(bands))

	for i, b := range bands {
		out[i] = BandConfig{
			Name:    string(b.Name),
			LowerHz: b.LowerHz,
			UpperHz: b.UpperHz,
			Label:   b.Label,
			Color:   b.Color,
		}
	}

	return out
}

// YAML renders cfg as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
