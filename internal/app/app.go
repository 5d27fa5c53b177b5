// Package app builds the application dependency graph. There are no
// process-wide singletons: Setup constructs every component explicitly and
// injects it, and App.Close releases what Setup acquired.
package app

import (
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliselabs/sdragent/internal/chat"
	"github.com/eliselabs/sdragent/internal/config"
	"github.com/eliselabs/sdragent/internal/ingest"
	"github.com/eliselabs/sdragent/internal/knowledge"
	"github.com/eliselabs/sdragent/internal/log"
)

// App is the application container.
type App struct {
	Config *config.Config
	Logger log.Logger

	Genkit   *genkit.Genkit
	Embedder ai.Embedder
	DBPool   *pgxpool.Pool

	Store     *knowledge.Store
	Retriever *knowledge.Retriever
	Chat      *chat.Service
	Ingest    *ingest.Runner
}

// Close releases all resources Setup acquired.
func (a *App) Close() error {
	if a.DBPool != nil {
		a.DBPool.Close()
		a.Logger.Info("database pool closed")
	}
	return nil
}
