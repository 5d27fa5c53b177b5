package capability

import (
	"context"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/eliselabs/sdragent/internal/knowledge"
	"github.com/eliselabs/sdragent/internal/log"
)

// Tool descriptions shown to the model. The wording steers when the model
// reaches for each capability, so treat changes as behavior changes.
const (
	searchDescription = "Search EliseAI's blog articles for detailed information about products, " +
		"features, case studies, pricing, implementation details, or industry insights. " +
		"Use this when you need specific facts, examples, statistics, or detailed explanations " +
		"beyond your basic product knowledge. Do NOT use for basic greetings, qualification " +
		"questions, or simple product overviews."

	bookDemoDescription = "Provide a Calendly demo booking link when the prospect expresses interest in scheduling a demo, " +
		"learning more, or taking next steps. Use this when they say things like 'I want to book a demo', " +
		"'I'm ready to buy', 'Let's schedule a call', 'How do we get started?', etc. " +
		"Do NOT ask for their information manually - Calendly will collect it. " +
		"Just provide the link so they can self-schedule."
)

// KnowledgeSearcher is the slice of the knowledge retriever the search
// capability needs.
type KnowledgeSearcher interface {
	Search(ctx context.Context, query string) ([]knowledge.Result, error)
	FormatForContext(results []knowledge.Result) string
	ExtractCitations(results []knowledge.Result) []knowledge.Citation
}

// Registry holds the executors behind the capability set. The orchestrator
// drives execution through Registry methods; the Genkit tool definitions
// exist so the model sees the declarations and schemas during generation.
type Registry struct {
	searcher KnowledgeSearcher
	booker   *Booker
	logger   log.Logger
}

// NewRegistry creates a Registry. Both executors are required.
func NewRegistry(searcher KnowledgeSearcher, booker *Booker, logger log.Logger) *Registry {
	if searcher == nil {
		panic("capability: nil KnowledgeSearcher")
	}
	if booker == nil {
		panic("capability: nil Booker")
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Registry{
		searcher: searcher,
		booker:   booker,
		logger:   logger.With("component", "capability"),
	}
}

// Register declares both capabilities on the Genkit instance and returns the
// tool references to pass into generation.
func (r *Registry) Register(g *genkit.Genkit) []ai.ToolRef {
	search := genkit.DefineTool(g, NameSearchKnowledgeBase, searchDescription,
		func(ctx *ai.ToolContext, args SearchArgs) (string, error) {
			return r.ExecuteSearch(ctx, args)
		})

	book := genkit.DefineTool(g, NameBookDemo, bookDemoDescription,
		func(_ *ai.ToolContext, args BookDemoArgs) (BookingResult, error) {
			return r.ExecuteBookDemo(args), nil
		})

	return []ai.ToolRef{search, book}
}

// ExecuteSearch runs the knowledge search and returns the formatted context
// block. A failed search degrades to the no-results message rather than an
// error; the wrapped knowledge.ErrUnavailable is returned alongside so
// callers can record the degradation.
func (r *Registry) ExecuteSearch(ctx context.Context, args SearchArgs) (string, error) {
	results, err := r.searcher.Search(ctx, args.Query)
	if err != nil {
		r.logger.Warn("knowledge search degraded", "error", err)
		return knowledge.NoResultsMessage, err
	}
	return r.searcher.FormatForContext(results), nil
}

// SearchResults runs the knowledge search returning raw results, for callers
// that need citations as well as formatted output.
func (r *Registry) SearchResults(ctx context.Context, args SearchArgs) ([]knowledge.Result, error) {
	return r.searcher.Search(ctx, args.Query)
}

// FormatResults renders results the way the model consumes them.
func (r *Registry) FormatResults(results []knowledge.Result) string {
	return r.searcher.FormatForContext(results)
}

// ExtractCitations collects the de-duplicated source citations for results.
func (r *Registry) ExtractCitations(results []knowledge.Result) []knowledge.Citation {
	return r.searcher.ExtractCitations(results)
}

// ExecuteBookDemo produces the booking link result.
func (r *Registry) ExecuteBookDemo(args BookDemoArgs) BookingResult {
	r.logger.Info("demo booking link issued", "reason", args.Reason)
	return r.booker.Book(args)
}
