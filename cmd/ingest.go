package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eliselabs/sdragent/internal/app"
	"github.com/eliselabs/sdragent/internal/config"
)

var flagArticlesDir string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Rebuild the knowledge base from article files",
	Long: `Load JSON article files, split them into chunks, embed each chunk
and store the result in PostgreSQL. Existing chunks are dropped first,
so the command is safe to rerun.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIngest()
	},
}

func init() {
	ingestCmd.Flags().StringVar(&flagArticlesDir, "dir", "", "articles directory (overrides configuration)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	dir := cfg.ArticlesDir
	if flagArticlesDir != "" {
		dir = flagArticlesDir
	}

	stats, err := a.Ingest.RunDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("ingesting articles: %w", err)
	}

	fmt.Printf("Ingested %d articles (%d chunks) from %s\n", stats.Articles, stats.Chunks, dir)
	return nil
}
