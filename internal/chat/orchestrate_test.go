package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliselabs/sdragent/internal/capability"
	"github.com/eliselabs/sdragent/internal/knowledge"
	"github.com/eliselabs/sdragent/internal/log"
	"github.com/eliselabs/sdragent/internal/testutil"
)

// orchestratorSearcher is a controllable knowledge retriever.
type orchestratorSearcher struct {
	results []knowledge.Result
	err     error
	queries []string
}

func (s *orchestratorSearcher) Search(_ context.Context, query string) ([]knowledge.Result, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func (s *orchestratorSearcher) FormatForContext(results []knowledge.Result) string {
	if len(results) == 0 {
		return knowledge.NoResultsMessage
	}
	return "## Relevant Knowledge Base Articles:\n\n(formatted)"
}

func (s *orchestratorSearcher) ExtractCitations(results []knowledge.Result) []knowledge.Citation {
	citations := make([]knowledge.Citation, 0, len(results))
	seen := map[string]bool{}
	for _, r := range results {
		title := r.Document.Metadata[knowledge.MetaTitle]
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		citations = append(citations, knowledge.Citation{Title: title})
	}
	return citations
}

func newTestOrchestrator(t *testing.T, mock *testutil.MockLLM, searcher *orchestratorSearcher) *Orchestrator {
	t.Helper()

	g := genkit.Init(context.Background())
	mock.RegisterModel(g)

	registry := capability.NewRegistry(searcher, capability.NewBooker("https://calendly.com/eliseai-demo/30min"), log.NewNop())

	return NewOrchestrator(g, registry, OrchestratorConfig{
		ModelName:   "mock/test-model",
		Temperature: 0.7,
		MaxTokens:   800,
	}, log.NewNop())
}

func userTurn(text string) []*ai.Message {
	return []*ai.Message{ai.NewUserMessage(ai.NewTextPart(text))}
}

func searchRequest(ref, query string) *ai.ToolRequest {
	return &ai.ToolRequest{
		Name:  capability.NameSearchKnowledgeBase,
		Ref:   ref,
		Input: map[string]any{"query": query},
	}
}

func articleResult(title string) knowledge.Result {
	return knowledge.Result{Document: knowledge.Document{
		Content:  "chunk",
		Metadata: map[string]string{knowledge.MetaTitle: title},
	}}
}

func TestOrchestrator_PlainReply(t *testing.T) {
	mock := testutil.NewMockLLM("fallback")
	mock.AddResponse("hello", "Hi! What brings you here?")

	orc := newTestOrchestrator(t, mock, &orchestratorSearcher{})

	result, err := orc.Complete(context.Background(), userTurn("hello"))
	require.NoError(t, err)
	assert.Equal(t, "Hi! What brings you here?", result.Response)
	assert.Empty(t, result.CapabilityUsed)
	assert.Empty(t, result.Citations)
	assert.Empty(t, result.CalendlyURL)

	// Single round: no tool requests means no synthesis call.
	require.Len(t, mock.Calls(), 1)
	assert.True(t, mock.Calls()[0].HadTools)
}

func TestOrchestrator_SearchFlow(t *testing.T) {
	mock := testutil.NewMockLLM("fallback")
	mock.AddToolResponse("pricing",
		[]*ai.ToolRequest{searchRequest("call_1", "LeasingAI pricing")},
		"LeasingAI pricing depends on portfolio size.")

	searcher := &orchestratorSearcher{results: []knowledge.Result{articleResult("Pricing Guide")}}
	orc := newTestOrchestrator(t, mock, searcher)

	result, err := orc.Complete(context.Background(), userTurn("what's the pricing?"))
	require.NoError(t, err)

	assert.Equal(t, "LeasingAI pricing depends on portfolio size.", result.Response)
	assert.Equal(t, capability.NameSearchKnowledgeBase, result.CapabilityUsed)
	assert.Equal(t, []knowledge.Citation{{Title: "Pricing Guide"}}, result.Citations)
	assert.Empty(t, result.CalendlyURL)
	assert.Equal(t, []string{"LeasingAI pricing"}, searcher.queries)

	calls := mock.Calls()
	require.Len(t, calls, 2)
	assert.True(t, calls[0].HadTools, "round 1 offers the capability declarations")
	assert.False(t, calls[1].HadTools, "round 2 runs without tools")
	assert.True(t, calls[1].ToolRound, "round 2 sees the tool result turn")
}

func TestOrchestrator_BookingFlow(t *testing.T) {
	mock := testutil.NewMockLLM("fallback")
	mock.AddToolResponse("book a demo",
		[]*ai.ToolRequest{{
			Name:  capability.NameBookDemo,
			Ref:   "call_1",
			Input: map[string]any{"reason": "ready to buy"},
		}},
		"Great! Here's the booking link.")

	orc := newTestOrchestrator(t, mock, &orchestratorSearcher{})

	result, err := orc.Complete(context.Background(), userTurn("I want to book a demo"))
	require.NoError(t, err)

	assert.Equal(t, "Great! Here's the booking link.", result.Response)
	assert.Equal(t, capability.NameBookDemo, result.CapabilityUsed)
	assert.Equal(t, "https://calendly.com/eliseai-demo/30min", result.CalendlyURL)
	assert.Empty(t, result.Citations)
}

func TestOrchestrator_LastCapabilityWins(t *testing.T) {
	t.Run("search then book", func(t *testing.T) {
		mock := testutil.NewMockLLM("fallback")
		mock.AddToolResponse("compare and book",
			[]*ai.ToolRequest{
				searchRequest("call_1", "LeasingAI features"),
				{Name: capability.NameBookDemo, Ref: "call_2", Input: map[string]any{}},
			},
			"Here's a summary, and the booking link.")

		searcher := &orchestratorSearcher{results: []knowledge.Result{articleResult("Features")}}
		orc := newTestOrchestrator(t, mock, searcher)

		result, err := orc.Complete(context.Background(), userTurn("compare and book"))
		require.NoError(t, err)

		// book_demo ran last, but the search's citations survive.
		assert.Equal(t, capability.NameBookDemo, result.CapabilityUsed)
		assert.Equal(t, "https://calendly.com/eliseai-demo/30min", result.CalendlyURL)
		assert.Equal(t, []knowledge.Citation{{Title: "Features"}}, result.Citations)
	})

	t.Run("book then search", func(t *testing.T) {
		mock := testutil.NewMockLLM("fallback")
		mock.AddToolResponse("book and compare",
			[]*ai.ToolRequest{
				{Name: capability.NameBookDemo, Ref: "call_1", Input: map[string]any{}},
				searchRequest("call_2", "LeasingAI features"),
			},
			"Here's what I found.")

		searcher := &orchestratorSearcher{results: []knowledge.Result{articleResult("Features")}}
		orc := newTestOrchestrator(t, mock, searcher)

		result, err := orc.Complete(context.Background(), userTurn("book and compare"))
		require.NoError(t, err)

		// The search ran last: the booking link does not survive it.
		assert.Equal(t, capability.NameSearchKnowledgeBase, result.CapabilityUsed)
		assert.Empty(t, result.CalendlyURL)
		assert.Equal(t, []knowledge.Citation{{Title: "Features"}}, result.Citations)
	})
}

func TestOrchestrator_SearchUnavailableDegrades(t *testing.T) {
	mock := testutil.NewMockLLM("fallback")
	mock.AddToolResponse("pricing",
		[]*ai.ToolRequest{searchRequest("call_1", "pricing")},
		"I don't have article details handy, but here's the gist.")

	searcher := &orchestratorSearcher{err: knowledge.ErrUnavailable}
	orc := newTestOrchestrator(t, mock, searcher)

	result, err := orc.Complete(context.Background(), userTurn("pricing?"))
	require.NoError(t, err, "a downed knowledge base must not fail the turn")

	assert.Equal(t, "I don't have article details handy, but here's the gist.", result.Response)
	assert.Equal(t, capability.NameSearchKnowledgeBase, result.CapabilityUsed)
	assert.Empty(t, result.Citations)
}

func TestOrchestrator_MalformedArgumentsAbsorbed(t *testing.T) {
	mock := testutil.NewMockLLM("fallback")
	mock.AddToolResponse("pricing",
		[]*ai.ToolRequest{{
			Name:  capability.NameSearchKnowledgeBase,
			Ref:   "call_1",
			Input: map[string]any{"query": 42},
		}},
		"Let me answer from what I know.")

	searcher := &orchestratorSearcher{}
	orc := newTestOrchestrator(t, mock, searcher)

	result, err := orc.Complete(context.Background(), userTurn("pricing?"))
	require.NoError(t, err, "malformed arguments must not fail the turn")

	assert.Equal(t, "Let me answer from what I know.", result.Response)
	assert.Empty(t, result.CapabilityUsed, "a failed decode is not an invocation")
	assert.Empty(t, searcher.queries, "the search executor must not run")
}

func TestOrchestrator_UnknownCapabilityAbsorbed(t *testing.T) {
	mock := testutil.NewMockLLM("fallback")
	mock.AddToolResponse("invoice",
		[]*ai.ToolRequest{{Name: "send_invoice", Ref: "call_1", Input: map[string]any{}}},
		"I can't do that, but I can book you a demo.")

	orc := newTestOrchestrator(t, mock, &orchestratorSearcher{})

	result, err := orc.Complete(context.Background(), userTurn("send me an invoice"))
	require.NoError(t, err)
	assert.Equal(t, "I can't do that, but I can book you a demo.", result.Response)
	assert.Empty(t, result.CapabilityUsed)
}

func TestOrchestrator_ModelFailureSurfaces(t *testing.T) {
	mock := testutil.NewMockLLM("fallback")
	mock.SetError(errors.New("upstream 503"))

	orc := newTestOrchestrator(t, mock, &orchestratorSearcher{})

	_, err := orc.Complete(context.Background(), userTurn("hello"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCompletionFailed)
}
