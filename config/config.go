// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ik5/samplechain/audio"
	"github.com/ik5/samplechain/chain"
	"github.com/ik5/samplechain/planner"
)

// EnvPrefix is prepended to upper cased keys for environment overrides,
// e.g. SAMPLECHAIN_MAX_SAMPLES_PER_CHAIN.
const EnvPrefix = "SAMPLECHAIN"

type Config struct {
	OutputSampleRate    int     `mapstructure:"output_sample_rate" yaml:"output_sample_rate"`
	OutputBitDepth      int     `mapstructure:"output_bit_depth" yaml:"output_bit_depth"`
	OutputChannels      int     `mapstructure:"output_channels" yaml:"output_channels"`
	EnforcePowerOfTwo   bool    `mapstructure:"enforce_power_of_two" yaml:"enforce_power_of_two"`
	PadStrategy         string  `mapstructure:"pad_strategy" yaml:"pad_strategy"`
	MaxSamplesPerChain  int     `mapstructure:"max_samples_per_chain" yaml:"max_samples_per_chain"`
	Dithering           bool    `mapstructure:"dithering" yaml:"dithering"`
	ResamplingAlgorithm string  `mapstructure:"resampling_algorithm" yaml:"resampling_algorithm"`
	OutputDir           string  `mapstructure:"output_dir" yaml:"output_dir"`
	MetadataDir         string  `mapstructure:"metadata_dir" yaml:"metadata_dir"`
	IncludeMetadata     bool    `mapstructure:"include_metadata" yaml:"include_metadata"`
	NormalizeSlots      bool    `mapstructure:"normalize_slots" yaml:"normalize_slots"`
	NormalizeTargetDB   float64 `mapstructure:"normalize_target_db" yaml:"normalize_target_db"`
	Workers             int     `mapstructure:"workers" yaml:"workers"`
	DisableMP3          bool    `mapstructure:"disable_mp3" yaml:"disable_mp3"`
}

// keys lists every setting so each one can be overridden from the
// environment, including those without a default.
var keys = []string{
	"output_sample_rate",
	"output_bit_depth",
	"output_channels",
	"enforce_power_of_two",
	"pad_strategy",
	"max_samples_per_chain",
	"dithering",
	"resampling_algorithm",
	"output_dir",
	"metadata_dir",
	"include_metadata",
	"normalize_slots",
	"normalize_target_db",
	"workers",
	"disable_mp3",
}

// Default returns the built-in settings. MaxSamplesPerChain has no default
// and is left at zero.
func Default() *Config {
	return &Config{
		OutputSampleRate:    48000,
		OutputBitDepth:      16,
		OutputChannels:      2,
		EnforcePowerOfTwo:   true,
		PadStrategy:         string(chain.PadRepeatLast),
		Dithering:           true,
		ResamplingAlgorithm: audio.AlgorithmKaiserBest,
		OutputDir:           "chains",
		IncludeMetadata:     true,
		NormalizeTargetDB:   -18,
		Workers:             runtime.NumCPU(),
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("output_sample_rate", d.OutputSampleRate)
	v.SetDefault("output_bit_depth", d.OutputBitDepth)
	v.SetDefault("output_channels", d.OutputChannels)
	v.SetDefault("enforce_power_of_two", d.EnforcePowerOfTwo)
	v.SetDefault("pad_strategy", d.PadStrategy)
	v.SetDefault("dithering", d.Dithering)
	v.SetDefault("resampling_algorithm", d.ResamplingAlgorithm)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("include_metadata", d.IncludeMetadata)
	v.SetDefault("normalize_slots", d.NormalizeSlots)
	v.SetDefault("normalize_target_db", d.NormalizeTargetDB)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("disable_mp3", d.DisableMP3)
}

// Load reads the configuration with Read and validates it.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	cfg, err := Read(path, flags)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read merges the configuration sources without validating the result.
// Later sources win: defaults, the YAML file at path, SAMPLECHAIN_*
// environment variables, then flags that were set on the command line. An
// empty path looks for samplechain.yaml in the working directory and in
// $HOME/.config, and is not an error when none exists. flags may be nil.
func Read(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	if err := readFile(v, path); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	cfg.MetadataDir = cfg.MetadataPath()
	return cfg, nil
}

// MetadataPath returns MetadataDir, or <output_dir>/metadata when unset.
func (c *Config) MetadataPath() string {
	if c.MetadataDir != "" {
		return c.MetadataDir
	}
	return filepath.Join(c.OutputDir, "metadata")
}

func readFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w %s: %w", ErrReadConfig, path, err)
		}
		return nil
	}

	v.SetConfigName("samplechain")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrReadConfig, err)
	}
	return nil
}

// Validate reports every setting out of range at once.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidValue}, args...)...))
	}

	switch {
	case c.MaxSamplesPerChain == 0:
		errs = append(errs, ErrMissingMaxSamples)
	case c.MaxSamplesPerChain < 0:
		invalid("max_samples_per_chain %d", c.MaxSamplesPerChain)
	}
	if c.OutputSampleRate <= 0 {
		invalid("output_sample_rate %d", c.OutputSampleRate)
	}
	switch c.OutputBitDepth {
	case 16, 24, 32:
	default:
		invalid("output_bit_depth %d, want 16, 24 or 32", c.OutputBitDepth)
	}
	if c.OutputChannels != 1 && c.OutputChannels != 2 {
		invalid("output_channels %d, want 1 or 2", c.OutputChannels)
	}
	if _, err := chain.ParsePadStrategy(c.PadStrategy); err != nil {
		invalid("pad_strategy %q", c.PadStrategy)
	}
	if c.Workers < 1 {
		invalid("workers %d", c.Workers)
	}
	if c.OutputDir == "" {
		invalid("output_dir is empty")
	}

	return errors.Join(errs...)
}

// OutputFormat is the format every chain is written in.
func (c *Config) OutputFormat() audio.Format {
	return audio.Format{
		SampleRate: c.OutputSampleRate,
		BitDepth:   c.OutputBitDepth,
		Channels:   c.OutputChannels,
	}
}

// ChainConfig returns the assembler settings.
func (c *Config) ChainConfig() chain.Config {
	return chain.Config{
		Output:              c.OutputFormat(),
		EnforcePowerOfTwo:   c.EnforcePowerOfTwo,
		PadStrategy:         chain.PadStrategy(c.PadStrategy),
		MaxSamplesPerChain:  c.MaxSamplesPerChain,
		Dithering:           c.Dithering,
		ResamplingAlgorithm: c.ResamplingAlgorithm,
		NormalizeSlots:      c.NormalizeSlots,
		NormalizeTargetDB:   c.NormalizeTargetDB,
	}
}

// PlannerConfig returns the planner settings for a scan of root.
func (c *Config) PlannerConfig(root string) planner.Config {
	return planner.Config{
		MaxSamplesPerChain: c.MaxSamplesPerChain,
		Root:               root,
		Output:             c.OutputFormat(),
	}
}

// YAML renders c in the configuration file format.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
