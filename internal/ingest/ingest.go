package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/eliselabs/sdragent/internal/knowledge"
	"github.com/eliselabs/sdragent/internal/log"
)

// DocumentStore is the slice of the knowledge store ingestion needs.
type DocumentStore interface {
	Add(ctx context.Context, doc knowledge.Document) error
	DeleteAll(ctx context.Context) error
}

// Stats summarizes an ingestion run.
type Stats struct {
	Articles int
	Chunks   int
}

// Runner executes the ingestion pipeline.
type Runner struct {
	store    DocumentStore
	splitter *Splitter
	logger   log.Logger
}

// NewRunner creates a Runner.
func NewRunner(store DocumentStore, splitter *Splitter, logger log.Logger) *Runner {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Runner{
		store:    store,
		splitter: splitter,
		logger:   logger.With("component", "ingest"),
	}
}

// Run rebuilds the knowledge base from the given articles: the existing
// chunk set is dropped first, so a rerun never leaves stale chunks behind.
func (r *Runner) Run(ctx context.Context, articles []Article) (Stats, error) {
	if err := r.store.DeleteAll(ctx); err != nil {
		return Stats{}, fmt.Errorf("clearing existing chunks: %w", err)
	}

	stats := Stats{Articles: len(articles)}
	now := time.Now()

	for _, article := range articles {
		chunks := r.splitter.Split(article.fullText())

		for i, chunk := range chunks {
			doc := knowledge.Document{
				ID:      chunkID(article.Title, i, chunk),
				Content: chunk,
				Metadata: map[string]string{
					knowledge.MetaTitle:  article.Title,
					knowledge.MetaAuthor: article.Author,
					knowledge.MetaDate:   article.Date,
					"chunk_index":        strconv.Itoa(i),
					"total_chunks":       strconv.Itoa(len(chunks)),
				},
				CreatedAt: now,
			}
			if err := r.store.Add(ctx, doc); err != nil {
				return stats, fmt.Errorf("ingesting chunk %d of %q: %w", i, article.Title, err)
			}
			stats.Chunks++
		}

		r.logger.Debug("ingested article", "title", article.Title, "chunks", len(chunks))
	}

	r.logger.Info("ingestion complete", "articles", stats.Articles, "chunks", stats.Chunks)
	return stats, nil
}

// RunDir loads articles from dir and ingests them.
func (r *Runner) RunDir(ctx context.Context, dir string) (Stats, error) {
	articles, err := LoadArticles(dir, r.logger)
	if err != nil {
		return Stats{}, err
	}
	if len(articles) == 0 {
		return Stats{}, fmt.Errorf("no articles found in %q", dir)
	}
	return r.Run(ctx, articles)
}

// chunkID derives a stable document id from the article title, the chunk
// position and the chunk content.
func chunkID(title string, index int, content string) string {
	sum := sha256.Sum256([]byte(title + "\x00" + strconv.Itoa(index) + "\x00" + content))
	return hex.EncodeToString(sum[:])
}
