package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/wordlebench/internal/adapters/baseline"
	"github.com/okian/wordlebench/internal/config"
	"github.com/okian/wordlebench/pkg/logger"
	"github.com/okian/wordlebench/pkg/metrics"
)

// cli carries state shared by every subcommand.
type cli struct {
	cfg         *config.Config
	logJSON     bool
	metricsFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "wordlebench",
		Short:        "Benchmark Wordle guessing strategies",
		Long:         "wordlebench plays registered strategies against a corpus of answers, summarises their performance and tests it against saved baselines.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if c.metricsFile == "" {
				return nil
			}
			if err := metrics.WriteTextfile(c.metricsFile); err != nil {
				return fmt.Errorf("write metrics: %w", err)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&c.logJSON, "log-json", false, "log as JSON")
	pf.String("baseline-dir", "", "directory holding saved baselines")
	pf.String("baseline-backend", "", "baseline store backend: file or badger")
	pf.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(newRunCmd(c), newCompareCmd(c), newBaselinesCmd(c))
	return root
}

// setup loads configuration, applies flag overrides and initialises logging.
func (c *cli) setup(cmd *cobra.Command) error {
	var opts []logger.Option
	opts = append(opts, logger.WithWriter(cmd.ErrOrStderr()))
	if c.logJSON {
		opts = append(opts, logger.WithJSON())
	}
	if err := logger.Init(opts...); err != nil {
		return err
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("baseline-dir") {
		cfg.BaselineDir, _ = flags.GetString("baseline-dir")
	}
	if flags.Changed("baseline-backend") {
		cfg.BaselineBackend, _ = flags.GetString("baseline-backend")
	}
	if err := c.applyRunFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}

	c.cfg = cfg
	return nil
}

// applyRunFlags copies harness flags onto cfg when the command defines them.
func (c *cli) applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && flags.Lookup(name) != nil && flags.Changed(name) {
			err = apply()
		}
	}
	set("words", func() (e error) { cfg.WordsToTest, e = flags.GetInt("words"); return })
	set("random", func() error {
		random, e := flags.GetBool("random")
		if random {
			cfg.Selection = config.SelectionRandom
		} else {
			cfg.Selection = config.SelectionFirst
		}
		return e
	})
	set("seed", func() (e error) { cfg.Seed, e = flags.GetUint64("seed"); return })
	set("mode", func() (e error) { cfg.ExecutionMode, e = flags.GetString("mode"); return })
	set("workers", func() (e error) { cfg.WorkerCount, e = flags.GetInt("workers"); return })
	set("max-turns", func() (e error) { cfg.MaxTurns, e = flags.GetInt("max-turns"); return })
	set("retain-traces", func() (e error) { cfg.RetainTraces, e = flags.GetBool("retain-traces"); return })
	set("alpha", func() (e error) { cfg.SignificanceThreshold, e = flags.GetFloat64("alpha"); return })
	return err
}

func (c *cli) openStore() (baseline.Store, error) {
	return baseline.Open(c.cfg.BaselineBackend, c.cfg.BaselineDir)
}
