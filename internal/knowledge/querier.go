package knowledge

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// UpsertDocumentParams holds the parameters for Querier.UpsertDocument.
type UpsertDocumentParams struct {
	ID        string
	Content   string
	Embedding *pgvector.Vector
	Metadata  []byte
	CreatedAt pgtype.Timestamptz
}

// SearchDocumentsParams holds the parameters for Querier.SearchDocuments.
type SearchDocumentsParams struct {
	QueryEmbedding *pgvector.Vector
	ResultLimit    int32
}

// SearchDocumentsRow is one row of a vector similarity search.
type SearchDocumentsRow struct {
	ID         string
	Content    string
	Metadata   []byte
	CreatedAt  pgtype.Timestamptz
	Similarity float32
}

// Querier defines the database operations Store needs. The interface lives
// with its consumer (like io.Reader or http.RoundTripper) so tests can
// substitute an in-memory implementation.
type Querier interface {
	// UpsertDocument inserts or updates an article chunk.
	UpsertDocument(ctx context.Context, arg UpsertDocumentParams) error

	// SearchDocuments performs cosine similarity search over all chunks.
	SearchDocuments(ctx context.Context, arg SearchDocumentsParams) ([]SearchDocumentsRow, error)

	// CountDocuments returns the total number of stored chunks.
	CountDocuments(ctx context.Context) (int64, error)

	// DeleteAllDocuments removes every stored chunk. Used by ingestion to
	// rebuild the article set from scratch.
	DeleteAllDocuments(ctx context.Context) error
}

// PGQuerier implements Querier on a pgx connection pool.
type PGQuerier struct {
	pool *pgxpool.Pool
}

// NewPGQuerier wraps a pgx pool in a Querier.
func NewPGQuerier(pool *pgxpool.Pool) *PGQuerier {
	return &PGQuerier{pool: pool}
}

const upsertDocumentSQL = `
INSERT INTO articles (id, content, embedding, metadata, created_at)
VALUES ($1, $2, $3, $4, COALESCE($5, now()))
ON CONFLICT (id) DO UPDATE
SET content = EXCLUDED.content,
    embedding = EXCLUDED.embedding,
    metadata = EXCLUDED.metadata`

func (q *PGQuerier) UpsertDocument(ctx context.Context, arg UpsertDocumentParams) error {
	var createdAt any
	if arg.CreatedAt.Valid {
		createdAt = arg.CreatedAt
	}
	_, err := q.pool.Exec(ctx, upsertDocumentSQL,
		arg.ID, arg.Content, arg.Embedding, arg.Metadata, createdAt)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

const searchDocumentsSQL = `
SELECT id, content, metadata, created_at,
       1 - (embedding <=> $1) AS similarity
FROM articles
ORDER BY embedding <=> $1
LIMIT $2`

func (q *PGQuerier) SearchDocuments(ctx context.Context, arg SearchDocumentsParams) ([]SearchDocumentsRow, error) {
	rows, err := q.pool.Query(ctx, searchDocumentsSQL, arg.QueryEmbedding, arg.ResultLimit)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	defer rows.Close()

	var results []SearchDocumentsRow
	for rows.Next() {
		var (
			row        SearchDocumentsRow
			similarity float64
		)
		if err := rows.Scan(&row.ID, &row.Content, &row.Metadata, &row.CreatedAt, &similarity); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		row.Similarity = float32(similarity)
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search rows: %w", err)
	}
	return results, nil
}

func (q *PGQuerier) CountDocuments(ctx context.Context) (int64, error) {
	var count int64
	err := q.pool.QueryRow(ctx, `SELECT count(*) FROM articles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

func (q *PGQuerier) DeleteAllDocuments(ctx context.Context) error {
	if _, err := q.pool.Exec(ctx, `DELETE FROM articles`); err != nil {
		return fmt.Errorf("delete all documents: %w", err)
	}
	return nil
}

// compile-time check
var _ Querier = (*PGQuerier)(nil)
