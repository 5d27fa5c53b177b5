// Package cmd provides the sdragent CLI commands.
//
// Commands:
//   - serve: HTTP API server for the SDR chat agent
//   - ingest: load knowledge base articles into PostgreSQL
//   - version: build and configuration information
//
// All commands load a .env file from the working directory when present,
// and handle SIGINT/SIGTERM via context cancellation.
package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eliselabs/sdragent/internal/log"
)

var (
	flagDebug   bool
	flagLogJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "sdragent",
	Short: "EliseAI SDR chatbot server",
	Long: `sdragent is the EliseAI sales development chatbot backend.

It answers product questions using retrieval over a pgvector knowledge
base and books demos through Calendly. Run "sdragent serve" to start the
HTTP API, or "sdragent ingest" to (re)build the knowledge base.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; any other read error is not.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "emit logs as JSON")
}

// newLogger builds the process logger from the persistent flags.
// DEBUG=1 in the environment also enables debug logging.
func newLogger() log.Logger {
	level := slog.LevelInfo
	if flagDebug || os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	return log.New(log.Config{Level: level, JSON: flagLogJSON})
}
