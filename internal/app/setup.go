package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliselabs/sdragent/db"
	"github.com/eliselabs/sdragent/internal/capability"
	"github.com/eliselabs/sdragent/internal/chat"
	"github.com/eliselabs/sdragent/internal/config"
	"github.com/eliselabs/sdragent/internal/ingest"
	"github.com/eliselabs/sdragent/internal/knowledge"
	"github.com/eliselabs/sdragent/internal/log"
)

// Setup creates and initializes the application.
// Returns an App with embedded cleanup; call Close to release.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (_ *App, retErr error) {
	if logger == nil {
		logger = log.NewNop()
	}
	a := &App{Config: cfg, Logger: logger}

	// On error, release whatever was already acquired.
	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	pool, err := provideDBPool(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.DBPool = pool

	g, err := provideGenkit(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	embedder := provideEmbedder(g, cfg)
	if embedder == nil {
		return nil, fmt.Errorf("embedder %q not found for provider %q", cfg.EmbedderModel, cfg.Provider)
	}
	a.Embedder = embedder

	a.Store = knowledge.NewStore(knowledge.NewPGQuerier(pool), embedder, logger)
	a.Retriever = knowledge.NewRetriever(a.Store, cfg.RAGTopK, logger)

	registry := capability.NewRegistry(a.Retriever, capability.NewBooker(cfg.CalendlyDemoLink), logger)
	orchestrator := chat.NewOrchestrator(g, registry, chat.OrchestratorConfig{
		ModelName:   cfg.FullModelName(),
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}, logger)
	a.Chat = chat.NewService(orchestrator, logger)

	a.Ingest = ingest.NewRunner(a.Store, ingest.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap), logger)

	return a, nil
}

// provideDBPool runs migrations and creates the PostgreSQL connection pool.
func provideDBPool(ctx context.Context, cfg *config.Config, logger log.Logger) (*pgxpool.Pool, error) {
	if err := db.Migrate(cfg.PostgresURL(), logger); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parsing connection config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// provideGenkit initializes Genkit with the configured AI provider plugin.
// Provider API keys are read from the environment by the plugins themselves.
func provideGenkit(ctx context.Context, cfg *config.Config, logger log.Logger) (*genkit.Genkit, error) {
	var g *genkit.Genkit

	switch cfg.Provider {
	case config.ProviderGoogleAI:
		g = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with googleai provider")
		}
	default: // openai
		g = genkit.Init(ctx, genkit.WithPlugins(&openai.OpenAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with openai provider")
		}
	}

	logger.Info("initialized Genkit", "provider", cfg.Provider, "model", cfg.ModelName)
	return g, nil
}

// provideEmbedder looks up the embedder registered by the provider plugin.
func provideEmbedder(g *genkit.Genkit, cfg *config.Config) ai.Embedder {
	switch cfg.Provider {
	case config.ProviderGoogleAI:
		return googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
	default: // openai auto-registers embedders in Init
		return genkit.LookupEmbedder(g, api.NewName("openai", cfg.EmbedderModel))
	}
}
