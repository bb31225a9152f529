// Package command implements the bigcalc command tree.
package command

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/govalues/bigdecimal/internal/calc"
	"github.com/govalues/bigdecimal/internal/config"
	"github.com/govalues/bigdecimal/internal/logger"
	"github.com/govalues/bigdecimal/internal/metrics"
)

var (
	configFile string

	cfg       *config.Config
	log       *slog.Logger
	registry  *prometheus.Registry
	evaluator *calc.Evaluator

	Root = &cobra.Command{
		Use:   "bigcalc",
		Short: "Evaluates exact arbitrary-precision decimal arithmetic.",
		Long: "bigcalc evaluates arithmetic over arbitrary-precision decimals without binary rounding.\n" +
			"Expressions are written in prefix notation, for example: bigcalc eval '* 10 + 1.23 4.56'.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configFile, cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log, err = logger.New(cmd.ErrOrStderr(), cfg.Log)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}

			registry = prometheus.NewRegistry()
			evaluator, err = calc.New(cfg.Precision,
				calc.WithLogger(log),
				calc.WithMetrics(metrics.New(registry)),
				calc.WithMaxExponent(cfg.MaxExponent),
			)
			if err != nil {
				return fmt.Errorf("failed to create evaluator: %w", err)
			}

			log.Debug("loaded config",
				"command", cmd.Name(),
				"precision", cfg.Precision,
				"output", cfg.Output,
				"jobs", cfg.Jobs)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.MetricsFile == "" {
				return nil
			}
			if err := prometheus.WriteToTextfile(cfg.MetricsFile, registry); err != nil {
				return fmt.Errorf("failed to write metrics: %w", err)
			}
			log.Debug("wrote metrics", "file", cfg.MetricsFile)
			return nil
		},
	}
)

func init() {
	Root.PersistentFlags().StringVar(&configFile, "config", configFile,
		"path to a configuration file (yaml, json or toml)")
	config.RegisterFlags(Root.PersistentFlags())
}
