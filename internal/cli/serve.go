package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/francescabuggio/ecocart/internal/server"
	"github.com/francescabuggio/ecocart/internal/stats"
	"github.com/francescabuggio/ecocart/internal/store"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the survey server",
	Long: `Start the HTTP server hosting the participant wizard and the admin
read surface.

Endpoints:
  POST /api/session              start a participant session
  POST /api/session/{id}/advance submit one wizard step
  GET  /api/stats                aggregated report
  GET  /api/responses            raw stored records
  GET  /health                   liveness and storage info
  GET  /metrics                  prometheus metrics

Example:
  ecocart serve
  ecocart serve --addr :9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address, overrides config")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if addrFlag != "" {
		cfg.Addr = addrFlag
	}

	return withStore(cmd.Context(), func(s *store.Store) error {
		agg := stats.New(cfg.LikertMin, cfg.LikertMax)
		srv := server.New(s, agg, logger)

		logger.Info("starting ecocart",
			zap.String("addr", cfg.Addr),
			zap.String("driver", cfg.Driver),
		)
		fmt.Printf("ecocart running on http://localhost%s\n", cfg.Addr)
		fmt.Println("Press Ctrl+C to stop")

		return srv.Start(cfg.Addr)
	})
}
