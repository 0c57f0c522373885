// Package config loads the tunables of a check from defaults, YAML files and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/stateprop/pkg/domain"
)

// Config controls generation, execution and shrinking.
type Config struct {
	// Cycles is the number of generate and execute cycles per check.
	Cycles int `yaml:"cycles" mapstructure:"cycles" env:"STATEPROP_CYCLES"`
	// MaxCommands bounds the length of generated sequences.
	MaxCommands int `yaml:"max_commands" mapstructure:"max_commands" env:"STATEPROP_MAX_COMMANDS"`
	// Seed is the master seed. Zero picks a random one.
	Seed int64 `yaml:"seed" mapstructure:"seed" env:"STATEPROP_SEED"`
	// SelectionRetries is the generation retry ceiling.
	SelectionRetries int `yaml:"selection_retries" mapstructure:"selection_retries" env:"STATEPROP_SELECTION_RETRIES"`
	// SplitCount is the number of partial sequences tried first when shrinking.
	SplitCount int `yaml:"split_count" mapstructure:"split_count" env:"STATEPROP_SPLIT_COUNT"`
	// MaxShrinkTrials caps oracle runs per shrink.
	MaxShrinkTrials int `yaml:"max_shrink_trials" mapstructure:"max_shrink_trials" env:"STATEPROP_MAX_SHRINK_TRIALS"`
	// RunTimeout bounds each command run. Zero disables it.
	RunTimeout time.Duration `yaml:"run_timeout" mapstructure:"run_timeout" env:"STATEPROP_RUN_TIMEOUT"`
	// Reproduction is "any" or "same".
	Reproduction string `yaml:"reproduction" mapstructure:"reproduction" env:"STATEPROP_REPRODUCTION"`
	// Parallelism is the number of split trials run concurrently.
	Parallelism    int    `yaml:"parallelism" mapstructure:"parallelism" env:"STATEPROP_PARALLELISM"`
	ValueShrinking bool   `yaml:"value_shrinking" mapstructure:"value_shrinking" env:"STATEPROP_VALUE_SHRINKING"`
	LogLevel       string `yaml:"log_level" mapstructure:"log_level" env:"STATEPROP_LOG_LEVEL"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Cycles:           100,
		MaxCommands:      50,
		SelectionRetries: 100,
		SplitCount:       3,
		MaxShrinkTrials:  2000,
		Reproduction:     string(domain.ReproduceAny),
		Parallelism:      1,
		ValueShrinking:   true,
		LogLevel:         "info",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if len(raw) == 0 {
		return cfg, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, fmt.Errorf("config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// FromEnv applies STATEPROP_* environment variables over base.
func FromEnv(base Config) (Config, error) {
	cfg := base
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once, wrapped in domain.ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	positive("cycles", c.Cycles)
	positive("max_commands", c.MaxCommands)
	positive("selection_retries", c.SelectionRetries)
	positive("split_count", c.SplitCount)
	positive("max_shrink_trials", c.MaxShrinkTrials)
	positive("parallelism", c.Parallelism)

	if c.RunTimeout < 0 {
		errs = append(errs, fmt.Errorf("run_timeout must not be negative, got %s", c.RunTimeout))
	}
	if !domain.Reproduction(c.Reproduction).Valid() {
		errs = append(errs, fmt.Errorf("reproduction must be %q or %q, got %q", domain.ReproduceAny, domain.ReproduceSame, c.Reproduction))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
