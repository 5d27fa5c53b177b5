package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliselabs/sdragent/internal/knowledge"
	"github.com/eliselabs/sdragent/internal/log"
)

type memStore struct {
	docs      []knowledge.Document
	cleared   int
	addErr    error
	deleteErr error
}

func (m *memStore) Add(_ context.Context, doc knowledge.Document) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.docs = append(m.docs, doc)
	return nil
}

func (m *memStore) DeleteAll(context.Context) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.cleared++
	m.docs = nil
	return nil
}

func writeArticle(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadArticles(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "one.json", `{"title":"A","author":"Jo","date":"2024-01-01","summary":"s","main_content":"c"}`)
	writeArticle(t, dir, "two.json", `{"title":"B","author":"Sam","date":"2024-02-01","summary":"s2","main_content":"c2"}`)
	writeArticle(t, dir, "broken.json", `{not json`)
	writeArticle(t, dir, "notes.txt", `ignored`)

	articles, err := LoadArticles(dir, log.NewNop())
	require.NoError(t, err)
	require.Len(t, articles, 2, "malformed and non-JSON files are skipped")

	titles := []string{articles[0].Title, articles[1].Title}
	assert.ElementsMatch(t, []string{"A", "B"}, titles)
}

func TestLoadArticles_MissingDir(t *testing.T) {
	_, err := LoadArticles(filepath.Join(t.TempDir(), "nope"), log.NewNop())
	assert.Error(t, err)
}

func TestRunner_Run(t *testing.T) {
	store := &memStore{}
	runner := NewRunner(store, NewSplitter(1000, 200), log.NewNop())

	articles := []Article{
		{Title: "AI Leasing", Author: "Jo", Date: "2024-01-01", Summary: "Short.", MainContent: "Body text."},
		{Title: "Maintenance", Author: "Sam", Date: "2024-02-01", Summary: "Sum.", MainContent: strings.Repeat("Paragraph.\n\n", 200)},
	}

	stats, err := runner.Run(context.Background(), articles)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Articles)
	assert.Equal(t, len(store.docs), stats.Chunks)
	assert.Greater(t, stats.Chunks, 2, "the long article must produce multiple chunks")
	assert.Equal(t, 1, store.cleared, "a run rebuilds from scratch")

	// Chunk metadata carries the article fields plus position info.
	first := store.docs[0]
	assert.Equal(t, "AI Leasing", first.Metadata[knowledge.MetaTitle])
	assert.Equal(t, "Jo", first.Metadata[knowledge.MetaAuthor])
	assert.Equal(t, "2024-01-01", first.Metadata[knowledge.MetaDate])
	assert.Equal(t, "0", first.Metadata["chunk_index"])
	assert.NotEmpty(t, first.Metadata["total_chunks"])
	assert.Contains(t, first.Content, "# AI Leasing")

	// IDs are stable and unique.
	seen := map[string]bool{}
	for _, doc := range store.docs {
		assert.Len(t, doc.ID, 64)
		assert.False(t, seen[doc.ID], "duplicate chunk id %s", doc.ID)
		seen[doc.ID] = true
	}
}

func TestRunner_Run_DeterministicIDs(t *testing.T) {
	articles := []Article{{Title: "A", Summary: "s", MainContent: "c"}}

	store1 := &memStore{}
	_, err := NewRunner(store1, NewSplitter(1000, 200), log.NewNop()).Run(context.Background(), articles)
	require.NoError(t, err)

	store2 := &memStore{}
	_, err = NewRunner(store2, NewSplitter(1000, 200), log.NewNop()).Run(context.Background(), articles)
	require.NoError(t, err)

	require.Equal(t, len(store1.docs), len(store2.docs))
	for i := range store1.docs {
		assert.Equal(t, store1.docs[i].ID, store2.docs[i].ID)
	}
}

func TestRunner_Run_Errors(t *testing.T) {
	t.Run("delete failure aborts", func(t *testing.T) {
		store := &memStore{deleteErr: errors.New("db down")}
		_, err := NewRunner(store, NewSplitter(1000, 200), log.NewNop()).Run(context.Background(), []Article{{Title: "A"}})
		assert.ErrorContains(t, err, "clearing existing chunks")
	})

	t.Run("add failure aborts with context", func(t *testing.T) {
		store := &memStore{addErr: errors.New("embed failed")}
		_, err := NewRunner(store, NewSplitter(1000, 200), log.NewNop()).Run(context.Background(), []Article{
			{Title: "A", Summary: "s", MainContent: "c"},
		})
		assert.ErrorContains(t, err, `ingesting chunk 0 of "A"`)
	})
}

func TestRunner_RunDir_EmptyDir(t *testing.T) {
	runner := NewRunner(&memStore{}, NewSplitter(1000, 200), log.NewNop())
	_, err := runner.RunDir(context.Background(), t.TempDir())
	assert.ErrorContains(t, err, "no articles found")
}
