package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eliselabs/sdragent/internal/api"
	"github.com/eliselabs/sdragent/internal/app"
	"github.com/eliselabs/sdragent/internal/config"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the SDR chatbot HTTP API.

The server runs migrations on startup, connects to PostgreSQL and the
configured model provider, and serves the chat API until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides configuration)")
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting sdragent", "version", Version, "provider", cfg.Provider, "model", cfg.ModelName)

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	addr := cfg.Addr
	if flagAddr != "" {
		addr = flagAddr
	}

	server := api.NewServer(a.Chat, a.DBPool, cfg.CORSOrigins, logger)
	if err := server.Run(ctx, addr); err != nil {
		return fmt.Errorf("HTTP server: %w", err)
	}
	return nil
}
