package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/stateprop/pkg/adapters/file"
	"github.com/aretw0/stateprop/pkg/adapters/memory"
	"github.com/aretw0/stateprop/pkg/adapters/redis"
	"github.com/aretw0/stateprop/pkg/config"
	"github.com/aretw0/stateprop/pkg/ports"
)

// Store backends accepted by Options.Store.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Options carries the flags shared by every command.
type Options struct {
	// ConfigPath is an optional YAML file applied over the defaults.
	ConfigPath string
	// LogLevel overrides the configured level when set.
	LogLevel string
	// LogOutput receives structured logs. Nil means stderr.
	LogOutput io.Writer

	Store     string
	StoreDir  string
	RedisAddr string
	RedisDB   int

	// Overrides applied after the config file and the environment. Zero keeps
	// the configured value.
	Seed         int64
	Cycles       int
	MaxCommands  int
	Reproduction string

	// Pretty renders counterexamples as Markdown through glamour.
	Pretty bool
	// JSON prints summaries as JSON documents.
	JSON bool
	// Metrics prints the Prometheus metrics gathered during the run.
	Metrics bool
	// Banner prints the banner before running.
	Banner bool
}

// LoadConfig resolves the configuration: defaults, then the YAML file, then
// STATEPROP_* variables, then the flag overrides in opts.
func LoadConfig(opts Options) (config.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	cfg, err := config.FromEnv(cfg)
	if err != nil {
		return config.Config{}, err
	}

	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}
	if opts.Cycles != 0 {
		cfg.Cycles = opts.Cycles
	}
	if opts.MaxCommands != 0 {
		cfg.MaxCommands = opts.MaxCommands
	}
	if opts.Reproduction != "" {
		cfg.Reproduction = opts.Reproduction
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	return cfg, cfg.Validate()
}

// OpenStore builds the counterexample store selected by opts. The returned
// close function is never nil.
func OpenStore(opts Options) (ports.CounterexampleStore, func() error, error) {
	noop := func() error { return nil }

	switch opts.Store {
	case "", StoreFile:
		return file.New(opts.StoreDir), noop, nil
	case StoreMemory:
		return memory.NewStore(), noop, nil
	case StoreRedis:
		addr := opts.RedisAddr
		if addr == "" {
			addr = os.Getenv("REDIS_ADDR")
		}
		if addr == "" {
			return nil, noop, errors.New("redis store requires --redis-addr or REDIS_ADDR")
		}
		s := redis.New(addr, os.Getenv("REDIS_PASSWORD"), opts.RedisDB)
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store %q (want %s, %s or %s)", opts.Store, StoreFile, StoreMemory, StoreRedis)
	}
}
