// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/exactla/internal/config"
	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/modrank"
	"github.com/katalvlaran/exactla/rankcache"
	"github.com/katalvlaran/exactla/wiedemann"
)

// app carries the state of one invocation: resolved configuration, the
// logger handed to every library call as its observer, and the optional
// metrics registry and rank cache.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *log.Logger
	errOut  io.Writer
	reg     *prometheus.Registry
	cache   *rankcache.Pebble
}

func newApp() *app {
	return &app{errOut: os.Stderr, logger: log.New(os.Stderr)}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "exactla",
		Short: "Exact linear algebra over the integers and prime fields",
		Long: TitleStyle.Render("exactla") + SubtitleStyle.Render(" - exact linear algebra over Z and Z/p") + `

Matrices are read in the sparse triplet format ("rows cols M", 1-based
"i j v" lines, "0 0 0" sentinel) or the dense format ("rows cols" then
row-major values). Results go to stdout, diagnostics to stderr.

` + SubtitleStyle.Render("Examples:") + `
  exactla smith A.sms                 Smith normal form via the valence
  exactla nullspace A.sms             integer null-space basis
  exactla rank A.sms --modulus 65521  rank modulo a prime
  exactla solve A.sms b.txt --modulus 1000000007`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.dumpMetrics()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (TOML, YAML or JSON by extension)")
	pf.String(config.FlagName(config.KeyLogLevel), "info", "log level: debug|info|warn|error")
	pf.Bool(config.FlagName(config.KeyMetricsEnabled), false, "dump prometheus metrics to stderr on exit")
	pf.String(config.FlagName(config.KeyCacheDir), "", "directory of the persistent rank cache")
	pf.Int64(config.FlagName(config.KeySeed), wiedemann.DefaultSeed, "seed of the random generator")

	root.AddCommand(
		newNullspaceCommand(a),
		newSmithCommand(a),
		newRankCommand(a),
		newDetCommand(a),
		newSolveCommand(a),
		newConfigCommand(a),
	)

	return root
}

// setup resolves configuration and builds the logger and metrics registry.
func (a *app) setup(cmd *cobra.Command) error {
	a.errOut = cmd.ErrOrStderr()
	cfg, err := config.Load(config.LoadOptions{ConfigFilePath: a.cfgFile, Flags: cmd.Flags()})
	if err != nil {
		return classify(err)
	}
	a.cfg = cfg
	a.logger = log.NewWithOptions(a.errOut, log.Options{
		Prefix:          "exactla",
		Level:           cfg.Level(),
		ReportTimestamp: true,
	})

	if cfg.Metrics.Enabled {
		a.reg = prometheus.NewRegistry()
		collectors := append(wiedemann.Collectors(), modrank.Collectors()...)
		for _, c := range collectors {
			if err = a.reg.Register(c); err != nil {
				return fmt.Errorf("register metrics: %w", err)
			}
		}
	}

	return nil
}

// rankCache opens the persistent cache on first use. It returns a nil
// interface when no cache directory is configured.
func (a *app) rankCache() (rankcache.Cache, error) {
	if a.cfg == nil || a.cfg.Cache.Dir == "" {
		return nil, nil
	}
	if a.cache == nil {
		c, err := rankcache.OpenPebble(a.cfg.Cache.Dir)
		if err != nil {
			return nil, &ExitError{Code: ExitIO, Err: err}
		}
		a.cache = c
		if a.reg != nil {
			if err = a.reg.Register(c.Collector()); err != nil {
				a.logger.Warn("rank cache metrics unavailable", "err", err)
			}
		}
		a.logger.Debug("rank cache opened", "dir", a.cfg.Cache.Dir)
	}

	return a.cache, nil
}

func (a *app) dumpMetrics() error {
	if a.reg == nil {
		return nil
	}
	mfs, err := a.reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(a.errOut, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

// shutdown releases resources held across the invocation.
func (a *app) shutdown() {
	if a.cache == nil {
		return
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("closing rank cache", "err", err)
	}
	a.cache = nil
}

func readMatrix(path string) (*matrixio.Triplets, error) {
	t, err := matrixio.ReadFile(path)
	if err != nil {
		return nil, &ExitError{Code: ExitIO, Err: err}
	}

	return t, nil
}

func fmtValue(v any) string { return fmt.Sprint(v) }
