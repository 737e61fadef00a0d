// Package cli wires the ecocart commands: the survey server, the stats
// report, data export, sample seeding and administrative repair.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/francescabuggio/ecocart/internal/config"
)

var (
	cfg    *config.Config
	logger *zap.Logger

	driverFlag string
	dsnFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "ecocart",
	Short: "ecocart - a checkout-nudge survey instrument",
	Long: `ecocart runs a simulated e-commerce checkout study: participants walk
through consent, questionnaires, a mock shop and a randomized checkout,
and their responses are collected for aggregation and export.

Running without a subcommand starts the server (same as 'ecocart serve').`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if driverFlag != "" {
			cfg.Driver = driverFlag
		}
		if dsnFlag != "" {
			cfg.DSN = dsnFlag
		}
		logger, err = buildLogger(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
	RunE: runServe, // Default action is to start the server
}

func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "storage driver (sqlite or postgres), overrides config")
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "sqlite path or postgres connection string, overrides config")
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
