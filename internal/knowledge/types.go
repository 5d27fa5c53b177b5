package knowledge

import "time"

// Metadata keys attached to article chunks at ingestion time.
const (
	MetaTitle  = "title"
	MetaAuthor = "author"
	MetaDate   = "date"
)

// Document represents a knowledge base article chunk.
type Document struct {
	ID        string            // Unique identifier (derived from content hash)
	Content   string            // Chunk text content
	Metadata  map[string]string // Article metadata (title, author, date)
	CreatedAt time.Time         // Creation timestamp
}

// Result represents a single search result with similarity score.
type Result struct {
	Document   Document
	Similarity float32 // Cosine similarity score (0-1)
}

// Citation identifies the article a search result came from.
// Serialized as the "sources" field of a chat response.
type Citation struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Date   string `json:"date"`
}

// SearchOption configures search behavior using the functional options
// pattern.
type SearchOption func(*searchConfig)

type searchConfig struct {
	topK    int
	timeout time.Duration
}

// WithTopK sets the maximum number of results to return.
// Default is 3 if not specified.
func WithTopK(k int) SearchOption {
	return func(c *searchConfig) {
		if k > 0 {
			c.topK = k
		}
	}
}

// WithTimeout overrides the per-search timeout. Default is 10 seconds.
func WithTimeout(d time.Duration) SearchOption {
	return func(c *searchConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func buildSearchConfig(opts []SearchOption) *searchConfig {
	cfg := &searchConfig{
		topK:    3,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
