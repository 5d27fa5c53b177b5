package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliselabs/sdragent/internal/log"
)

type stubSearcher struct {
	results  []Result
	err      error
	lastTopK int
}

func (s *stubSearcher) Search(_ context.Context, _ string, opts ...SearchOption) ([]Result, error) {
	cfg := buildSearchConfig(opts)
	s.lastTopK = cfg.topK
	return s.results, s.err
}

func result(title, author, date, content string) Result {
	return Result{Document: Document{
		Content: content,
		Metadata: map[string]string{
			MetaTitle:  title,
			MetaAuthor: author,
			MetaDate:   date,
		},
	}}
}

func TestRetriever_Search_UsesConfiguredTopK(t *testing.T) {
	stub := &stubSearcher{results: []Result{result("A", "B", "C", "text")}}
	r := NewRetriever(stub, 3, log.NewNop())

	results, err := r.Search(context.Background(), "pricing")
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 3, stub.lastTopK)
}

func TestRetriever_Search_WrapsFailureAsUnavailable(t *testing.T) {
	stub := &stubSearcher{err: errors.New("dial tcp: connection refused")}
	r := NewRetriever(stub, 3, log.NewNop())

	_, err := r.Search(context.Background(), "pricing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRetriever_FormatForContext_Empty(t *testing.T) {
	r := NewRetriever(&stubSearcher{}, 3, log.NewNop())
	assert.Equal(t, "No relevant articles found.", r.FormatForContext(nil))
}

func TestRetriever_FormatForContext(t *testing.T) {
	r := NewRetriever(&stubSearcher{}, 3, log.NewNop())

	results := []Result{
		result("AI Leasing", "Jo Smith", "2024-03-01", "Leasing agents respond instantly."),
		{Document: Document{Content: "Anonymous chunk.", Metadata: map[string]string{}}},
	}

	got := r.FormatForContext(results)
	want := "## Relevant Knowledge Base Articles:\n\n" +
		"### Article 1: AI Leasing\n" +
		"Author: Jo Smith | Date: 2024-03-01\n\n" +
		"Leasing agents respond instantly.\n\n---\n\n" +
		"### Article 2: Untitled\n" +
		"Author: Unknown | Date: N/A\n\n" +
		"Anonymous chunk.\n\n---\n\n"
	assert.Equal(t, want, got)
}

func TestRetriever_ExtractCitations(t *testing.T) {
	r := NewRetriever(&stubSearcher{}, 3, log.NewNop())

	tests := []struct {
		name    string
		results []Result
		want    []Citation
	}{
		{
			name:    "empty results",
			results: nil,
			want:    []Citation{},
		},
		{
			name: "deduplicates by title keeping first-seen order",
			results: []Result{
				result("Leasing", "Jo", "2024-01-01", "chunk 1"),
				result("Maintenance", "Sam", "2024-02-01", "chunk 2"),
				result("Leasing", "Someone Else", "2099-01-01", "chunk 3"),
			},
			want: []Citation{
				{Title: "Leasing", Author: "Jo", Date: "2024-01-01"},
				{Title: "Maintenance", Author: "Sam", Date: "2024-02-01"},
			},
		},
		{
			name: "skips untitled results and fills defaults",
			results: []Result{
				{Document: Document{Content: "x", Metadata: map[string]string{}}},
				result("Titled", "", "", "y"),
			},
			want: []Citation{
				{Title: "Titled", Author: "Unknown", Date: "N/A"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ExtractCitations(tt.results))
		})
	}
}
