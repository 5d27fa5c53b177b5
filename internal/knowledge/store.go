// Package knowledge manages the blog-article knowledge base: vector storage
// over PostgreSQL + pgvector and retrieval for the chat agent.
package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pgvector/pgvector-go"

	"github.com/eliselabs/sdragent/internal/log"
)

// ErrUnavailable indicates the knowledge base could not be reached or the
// search failed. Callers treat it as a degraded state, not a fatal one: the
// conversation continues without retrieved context.
var ErrUnavailable = errors.New("knowledge base unavailable")

// Store manages article chunks with vector search capabilities.
// It handles embedding generation and similarity search through a Querier.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	queries  Querier
	embedder ai.Embedder
	logger   log.Logger
}

// NewStore creates a Store over the given querier and embedder.
func NewStore(querier Querier, embedder ai.Embedder, logger log.Logger) *Store {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Store{
		queries:  querier,
		embedder: embedder,
		logger:   logger.With("component", "knowledge.store"),
	}
}

// Add embeds a document's content and upserts it into the store.
func (s *Store) Add(ctx context.Context, doc Document) error {
	embedding, err := s.embed(ctx, doc.Content)
	if err != nil {
		return fmt.Errorf("embedding document %q: %w", doc.ID, err)
	}

	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshaling metadata for %q: %w", doc.ID, err)
	}

	err = s.queries.UpsertDocument(ctx, UpsertDocumentParams{
		ID:        doc.ID,
		Content:   doc.Content,
		Embedding: embedding,
		Metadata:  metadataJSON,
		CreatedAt: pgtype.Timestamptz{Time: doc.CreatedAt, Valid: !doc.CreatedAt.IsZero()},
	})
	if err != nil {
		return fmt.Errorf("upserting document %q: %w", doc.ID, err)
	}

	s.logger.Debug("added document", "id", doc.ID, "content_length", len(doc.Content))
	return nil
}

// Search performs semantic search over the stored chunks, returning the most
// similar documents ordered by similarity. A per-search timeout bounds both
// embedding generation and the vector query.
func (s *Store) Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	cfg := buildSearchConfig(opts)

	queryCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	embedding, err := s.embed(queryCtx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	if cfg.topK > math.MaxInt32 {
		return nil, fmt.Errorf("top k %d exceeds limit capacity", cfg.topK)
	}
	rows, err := s.queries.SearchDocuments(queryCtx, SearchDocumentsParams{
		QueryEmbedding: embedding,
		ResultLimit:    int32(cfg.topK),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("search timeout: %w", err)
		}
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return s.rowsToResults(rows), nil
}

// Count returns the total number of stored chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	count, err := s.queries.CountDocuments(ctx)
	if err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	if count > math.MaxInt {
		return 0, fmt.Errorf("document count %d exceeds platform int capacity", count)
	}
	return int(count), nil
}

// DeleteAll removes every stored chunk.
func (s *Store) DeleteAll(ctx context.Context) error {
	if err := s.queries.DeleteAllDocuments(ctx); err != nil {
		return fmt.Errorf("deleting documents: %w", err)
	}
	s.logger.Debug("deleted all documents")
	return nil
}

func (s *Store) embed(ctx context.Context, text string) (*pgvector.Vector, error) {
	resp, err := s.embedder.Embed(ctx, &ai.EmbedRequest{
		Input: []*ai.Document{
			{Content: []*ai.Part{ai.NewTextPart(text)}},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Embedding) == 0 {
		return nil, errors.New("empty embedding returned")
	}
	v := pgvector.NewVector(resp.Embeddings[0].Embedding)
	return &v, nil
}

func (s *Store) rowsToResults(rows []SearchDocumentsRow) []Result {
	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		var metadata map[string]string
		if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
			s.logger.Warn("failed to parse metadata", "document_id", row.ID, "error", err)
			metadata = make(map[string]string)
		}

		var createdAt time.Time
		if row.CreatedAt.Valid {
			createdAt = row.CreatedAt.Time
		}

		results = append(results, Result{
			Document: Document{
				ID:        row.ID,
				Content:   row.Content,
				Metadata:  metadata,
				CreatedAt: createdAt,
			},
			Similarity: row.Similarity,
		})
	}
	return results
}
