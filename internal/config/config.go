// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/exactla/smith"
	"github.com/katalvlaran/exactla/wiedemann"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "EXACTLA"

// Keys.
const (
	KeyLogLevel             = "log.level"
	KeyTrials               = "solver.trials"
	KeyPreconditioner       = "solver.preconditioner"
	KeyCheckResult          = "solver.check_result"
	KeyCertifyInconsistency = "solver.certify_inconsistency"
	KeyEarlyTermThreshold   = "solver.early_term_threshold"
	KeySeed                 = "solver.seed"
	KeyWorkers              = "smith.workers"
	KeyFactorLoops          = "smith.factor_loops"
	KeySquarization         = "smith.squarization"
	KeyCacheDir             = "cache.dir"
	KeyMetricsEnabled       = "metrics.enabled"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid value")

type (
	// Config is the fully resolved configuration.
	Config struct {
		Log     LogConfig     `mapstructure:"log"`
		Solver  SolverConfig  `mapstructure:"solver"`
		Smith   SmithConfig   `mapstructure:"smith"`
		Cache   CacheConfig   `mapstructure:"cache"`
		Metrics MetricsConfig `mapstructure:"metrics"`
	}

	LogConfig struct {
		Level string `mapstructure:"level"`
	}

	SolverConfig struct {
		Trials               int    `mapstructure:"trials"`
		Preconditioner       string `mapstructure:"preconditioner"`
		CheckResult          bool   `mapstructure:"check_result"`
		CertifyInconsistency bool   `mapstructure:"certify_inconsistency"`
		EarlyTermThreshold   int    `mapstructure:"early_term_threshold"`
		Seed                 int64  `mapstructure:"seed"`
	}

	SmithConfig struct {
		// Workers of 0 means GOMAXPROCS.
		Workers      int    `mapstructure:"workers"`
		FactorLoops  int    `mapstructure:"factor_loops"`
		Squarization string `mapstructure:"squarization"`
	}

	// CacheConfig enables the persistent rank cache when Dir is set.
	CacheConfig struct {
		Dir string `mapstructure:"dir"`
	}

	MetricsConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}
)

// Default returns the built-in configuration.
func Default() Config {
	t := wiedemann.DefaultTraits()
	return Config{
		Log: LogConfig{Level: "info"},
		Solver: SolverConfig{
			Trials:               t.TrialsBeforeFailure,
			Preconditioner:       t.Preconditioner.String(),
			CheckResult:          t.CheckResult,
			CertifyInconsistency: t.CertifyInconsistency,
			EarlyTermThreshold:   t.EarlyTermThreshold,
			Seed:                 wiedemann.DefaultSeed,
		},
		Smith: SmithConfig{
			FactorLoops:  smith.DefaultFactorLoops,
			Squarization: smith.SquarizeAuto.String(),
		},
	}
}

// LoadOptions controls a Load call.
type LoadOptions struct {
	// ConfigFilePath is read when non-empty; it must exist.
	ConfigFilePath string
	// Flags, when set, override every other source for flags the user
	// changed. Flag names are the keys with '.' and '_' replaced by '-'
	// and the section dropped (see BindFlags).
	Flags *pflag.FlagSet
}

// Load resolves the configuration.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFilePath != "" {
		if _, err := os.Stat(opts.ConfigFilePath); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFilePath, err)
		}
	}
	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyTrials, d.Solver.Trials)
	v.SetDefault(KeyPreconditioner, d.Solver.Preconditioner)
	v.SetDefault(KeyCheckResult, d.Solver.CheckResult)
	v.SetDefault(KeyCertifyInconsistency, d.Solver.CertifyInconsistency)
	v.SetDefault(KeyEarlyTermThreshold, d.Solver.EarlyTermThreshold)
	v.SetDefault(KeySeed, d.Solver.Seed)
	v.SetDefault(KeyWorkers, d.Smith.Workers)
	v.SetDefault(KeyFactorLoops, d.Smith.FactorLoops)
	v.SetDefault(KeySquarization, d.Smith.Squarization)
	v.SetDefault(KeyCacheDir, d.Cache.Dir)
	v.SetDefault(KeyMetricsEnabled, d.Metrics.Enabled)
}

// flagNames maps config keys to the CLI flag that overrides them.
var flagNames = map[string]string{
	KeyLogLevel:       "log-level",
	KeyTrials:         "trials",
	KeyPreconditioner: "preconditioner",
	KeySeed:           "seed",
	KeyWorkers:        "workers",
	KeyFactorLoops:    "factor-loops",
	KeySquarization:   "squarize",
	KeyCacheDir:       "cache-dir",
	KeyMetricsEnabled: "metrics",
}

// FlagName returns the flag bound to key, or "" if there is none.
func FlagName(key string) string { return flagNames[key] }

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagNames {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	return nil
}

// Validate checks enumerations and ranges.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalid, KeyLogLevel, c.Log.Level)
	}
	if _, err := c.Traits(); err != nil {
		return err
	}
	if c.Smith.Workers < 0 {
		return fmt.Errorf("%w: %s=%d", ErrInvalid, KeyWorkers, c.Smith.Workers)
	}
	if _, err := smith.ParseSquarization(c.Smith.Squarization); err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalid, KeySquarization, c.Smith.Squarization)
	}

	return nil
}

// Traits converts the solver section into wiedemann.Traits.
func (c *Config) Traits() (wiedemann.Traits, error) {
	t := wiedemann.DefaultTraits()
	p, err := wiedemann.ParsePreconditioner(c.Solver.Preconditioner)
	if err != nil {
		return t, fmt.Errorf("%w: %s: %w", ErrInvalid, KeyPreconditioner, err)
	}
	t.Preconditioner = p
	t.TrialsBeforeFailure = c.Solver.Trials
	t.CheckResult = c.Solver.CheckResult
	t.CertifyInconsistency = c.Solver.CertifyInconsistency
	t.EarlyTermThreshold = c.Solver.EarlyTermThreshold
	if err = t.Validate(); err != nil {
		return t, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return t, nil
}

// Level returns the parsed log level; Validate guarantees it parses.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}

	return lvl
}

// Pairs lists every key with its resolved value, in key order.
func (c *Config) Pairs() [][2]string {
	return [][2]string{
		{KeyLogLevel, c.Log.Level},
		{KeyTrials, fmt.Sprint(c.Solver.Trials)},
		{KeyPreconditioner, c.Solver.Preconditioner},
		{KeyCheckResult, fmt.Sprint(c.Solver.CheckResult)},
		{KeyCertifyInconsistency, fmt.Sprint(c.Solver.CertifyInconsistency)},
		{KeyEarlyTermThreshold, fmt.Sprint(c.Solver.EarlyTermThreshold)},
		{KeySeed, fmt.Sprint(c.Solver.Seed)},
		{KeyWorkers, fmt.Sprint(c.Smith.Workers)},
		{KeyFactorLoops, fmt.Sprint(c.Smith.FactorLoops)},
		{KeySquarization, c.Smith.Squarization},
		{KeyCacheDir, c.Cache.Dir},
		{KeyMetricsEnabled, fmt.Sprint(c.Metrics.Enabled)},
	}
}
