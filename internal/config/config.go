// Package config loads the configuration of the bigcalc command.
//
// Values are resolved in the following order, highest priority first:
// command-line flags, BIGCALC_* environment variables, the optional
// configuration file, and built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/govalues/bigdecimal"
)

// EnvPrefix is the prefix of environment variables read by [Load].
const EnvPrefix = "BIGCALC"

// Config holds all bigcalc configuration.
type Config struct {
	Precision   int       `mapstructure:"precision" validate:"gte=0,lte=100000"`
	MaxExponent int       `mapstructure:"max_exponent" validate:"gt=0"`
	Jobs        int       `mapstructure:"jobs" validate:"gte=0"`
	Output      string    `mapstructure:"output" validate:"required,oneof=text json yaml"`
	MetricsFile string    `mapstructure:"metrics_file"`
	Log         LogConfig `mapstructure:"log" validate:"required"`
}

// LogConfig contains the logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Precision:   bigdecimal.DefaultPrec,
		MaxExponent: 10000,
		Jobs:        0,
		Output:      "text",
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"precision":    "precision",
	"max-exponent": "max_exponent",
	"jobs":         "jobs",
	"output":       "output",
	"metrics-file": "metrics_file",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

// RegisterFlags adds the configuration flags to fs with their default values.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int("precision", d.Precision, "number of digits after the decimal point kept by division and negative powers")
	fs.Int("max-exponent", d.MaxExponent, "largest exponent magnitude accepted by ^")
	fs.Int("jobs", d.Jobs, "maximum number of expressions evaluated concurrently, 0 means unlimited")
	fs.String("output", d.Output, "output format: text, json or yaml")
	fs.String("metrics-file", d.MetricsFile, "write Prometheus metrics to this file on exit")
	fs.String("log-level", d.Log.Level, "log level: debug, info, warn or error")
	fs.String("log-format", d.Log.Format, "log format: text or json")
}

// Load resolves the configuration from defaults, the file at path (if not
// empty), the environment and the flags in fs (if not nil), then validates it.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("precision", d.Precision)
	v.SetDefault("max_exponent", d.MaxExponent)
	v.SetDefault("jobs", d.Jobs)
	v.SetDefault("output", d.Output)
	v.SetDefault("metrics_file", d.MetricsFile)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", path, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("binding flag %q: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg against its validation tags.
// The returned error wraps [validator.ValidationErrors].
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}
