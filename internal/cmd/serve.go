// internal/cmd/serve.go
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"pcrsim/internal/server"
	"pcrsim/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation core over a REST API",
	Long: `Starts an HTTP server exposing simulate, search, tm and dimer under
/api/v1, plus /health and prometheus /metrics. SIGINT and SIGTERM
trigger a graceful shutdown.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := serveCmd.Flags()
	f.String("addr", ":8080", "listen address, host:port")
	f.Int("request-timeout", 30, "per-request timeout in seconds")
	f.Int("max-template-length", 10_000_000, "largest accepted template in bases")

	_ = viper.BindPFlag("server.addr", f.Lookup("addr"))
	_ = viper.BindPFlag("server.request-timeout", f.Lookup("request-timeout"))
	_ = viper.BindPFlag("server.max-template-length", f.Lookup("max-template-length"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting pcrsim server",
		zap.String("version", version.Version),
		zap.String("addr", cfg.Server.Addr),
	)
	return server.New(cfg.Server, settings, logger).Run(ctx)
}
