// Package config loads tensorcmp settings from defaults, a config file,
// TENSORCMP_* environment variables and command line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

type Config struct {
	Compare CompareConfig `mapstructure:"compare"`
	Output  OutputConfig  `mapstructure:"output"`
	Log     LogConfig     `mapstructure:"log"`
}

type CompareConfig struct {
	Precision float64 `mapstructure:"precision"`
	Workers   int     `mapstructure:"workers"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
}

type LogConfig struct {
	Verbosity int `mapstructure:"verbosity"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// keyFlags maps config keys to their flag names.
var keyFlags = map[string]string{
	"compare.precision": "precision",
	"compare.workers":   "workers",
	"output.format":     "format",
	"log.verbosity":     "verbosity",
}

func DefaultConfig() Config {
	return Config{
		Compare: CompareConfig{
			Precision: 1e-5,
			Workers:   0,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Log: LogConfig{
			Verbosity: 0,
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.Float64("precision", defaults.Compare.Precision, "Maximum tolerated absolute difference")
	fs.Int("workers", defaults.Compare.Workers, "Concurrent tensor comparisons (0 = one per CPU)")
	fs.String("format", defaults.Output.Format, "Report format: text or yaml")
	fs.Int("verbosity", defaults.Log.Verbosity, "Log verbosity (klog -v level)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		fs := opts.Cmd.Flags()
		for key, name := range keyFlags {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	v.SetEnvPrefix("TENSORCMP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("tensorcmp")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if c.Compare.Precision < 0 {
		return fmt.Errorf("compare.precision must be non-negative, got %g", c.Compare.Precision)
	}
	if c.Compare.Workers < 0 {
		return fmt.Errorf("compare.workers must be non-negative, got %d", c.Compare.Workers)
	}
	switch c.Output.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("output.format must be %q or %q, got %q", FormatText, FormatYAML, c.Output.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("compare.precision", c.Compare.Precision)
	v.SetDefault("compare.workers", c.Compare.Workers)
	v.SetDefault("output.format", c.Output.Format)
	v.SetDefault("log.verbosity", c.Log.Verbosity)
}
