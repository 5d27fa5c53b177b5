package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/eliselabs/sdragent/internal/log"
)

// NoResultsMessage is returned by FormatForContext when the search produced
// no results, and is also used as the tool result when the knowledge base is
// unavailable. The model is expected to answer from general product knowledge
// in that case.
const NoResultsMessage = "No relevant articles found."

// searcher is the slice of Store the Retriever needs.
type searcher interface {
	Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error)
}

// Retriever wraps the vector store with the formatting and citation logic the
// chat agent consumes.
type Retriever struct {
	store  searcher
	topK   int
	logger log.Logger
}

// NewRetriever creates a Retriever. topK is the default number of chunks
// returned per search.
func NewRetriever(store searcher, topK int, logger log.Logger) *Retriever {
	if topK < 1 {
		topK = 3
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Retriever{
		store:  store,
		topK:   topK,
		logger: logger.With("component", "knowledge.retriever"),
	}
}

// Search returns the top-k chunks most similar to query. A failure of the
// underlying store is reported as ErrUnavailable so callers can degrade
// instead of aborting the conversation.
func (r *Retriever) Search(ctx context.Context, query string) ([]Result, error) {
	results, err := r.store.Search(ctx, query, WithTopK(r.topK))
	if err != nil {
		r.logger.Warn("knowledge search failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	r.logger.Debug("knowledge search completed", "query_length", len(query), "results", len(results))
	return results, nil
}

// FormatForContext renders search results as the markdown block fed back to
// the model as the search tool's output.
func (r *Retriever) FormatForContext(results []Result) string {
	if len(results) == 0 {
		return NoResultsMessage
	}

	var b strings.Builder
	b.WriteString("## Relevant Knowledge Base Articles:\n\n")

	for i, result := range results {
		md := result.Document.Metadata
		fmt.Fprintf(&b, "### Article %d: %s\n", i+1, metaOr(md, MetaTitle, "Untitled"))
		fmt.Fprintf(&b, "Author: %s | Date: %s\n\n", metaOr(md, MetaAuthor, "Unknown"), metaOr(md, MetaDate, "N/A"))
		b.WriteString(result.Document.Content)
		b.WriteString("\n\n---\n\n")
	}

	return b.String()
}

// ExtractCitations collects one citation per distinct article title, in
// first-seen order. Results without a title are skipped. De-duplication is
// keyed on the title alone, so two articles sharing a title collapse into
// one citation.
func (r *Retriever) ExtractCitations(results []Result) []Citation {
	citations := make([]Citation, 0, len(results))
	seen := make(map[string]bool, len(results))

	for _, result := range results {
		md := result.Document.Metadata
		title := md[MetaTitle]
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		citations = append(citations, Citation{
			Title:  title,
			Author: metaOr(md, MetaAuthor, "Unknown"),
			Date:   metaOr(md, MetaDate, "N/A"),
		})
	}

	return citations
}

func metaOr(md map[string]string, key, fallback string) string {
	if v, ok := md[key]; ok && v != "" {
		return v
	}
	return fallback
}
