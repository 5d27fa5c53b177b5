package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"golang.org/x/time/rate"

	"github.com/eliselabs/sdragent/internal/capability"
	"github.com/eliselabs/sdragent/internal/knowledge"
	"github.com/eliselabs/sdragent/internal/log"
)

// completionTimeout bounds each model call. Two rounds means a turn can take
// up to twice this.
const completionTimeout = 30 * time.Second

// invalidArgsResult is the neutral tool result fed back to the model when an
// invocation's arguments cannot be decoded. The conversation continues; the
// model answers without that tool's output.
const invalidArgsResult = "Tool invocation could not be executed. Continue the conversation without this tool's output."

// TurnResult is the raw outcome of one completion turn, before conversation
// policy is applied.
type TurnResult struct {
	Response       string
	CapabilityUsed string
	Citations      []knowledge.Citation
	CalendlyURL    string
}

// OrchestratorConfig carries the generation parameters.
type OrchestratorConfig struct {
	ModelName   string // provider-qualified, e.g. "openai/gpt-4o-mini"
	Temperature float32
	MaxTokens   int
	RatePerSec  float64 // model calls per second; 0 disables limiting
	Burst       int
}

// Orchestrator drives the two-round completion protocol:
//
// Round 1 offers the capability declarations and asks the model to select.
// Requested invocations are executed here, in the order the model returned
// them, and each result is appended as a tool turn tagged with the model's
// call id. Round 2 runs without tools and yields the final reply.
//
// "tool_used" reflects the last capability invoked in round 1, and search
// citations are overwritten per invocation, so a later search replaces an
// earlier one's sources.
type Orchestrator struct {
	g        *genkit.Genkit
	registry *capability.Registry
	toolRefs []ai.ToolRef
	cfg      OrchestratorConfig
	limiter  *rate.Limiter
	logger   log.Logger
}

// NewOrchestrator registers the capability set on g and returns an
// orchestrator ready to complete turns.
func NewOrchestrator(g *genkit.Genkit, registry *capability.Registry, cfg OrchestratorConfig, logger log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.NewNop()
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RatePerSec > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), burst)
	}

	return &Orchestrator{
		g:        g,
		registry: registry,
		toolRefs: registry.Register(g),
		cfg:      cfg,
		limiter:  limiter,
		logger:   logger.With("component", "chat.orchestrator"),
	}
}

// Complete runs the two-round protocol over the given messages (persona
// prompt included) and returns the final reply with its tool metadata.
//
// Model failures in either round return ErrCompletionFailed; there is no
// automatic retry.
func (o *Orchestrator) Complete(ctx context.Context, messages []*ai.Message) (*TurnResult, error) {
	first, err := o.generate(ctx, messages, true)
	if err != nil {
		return nil, err
	}

	requests := first.ToolRequests()
	if len(requests) == 0 {
		return &TurnResult{Response: first.Text()}, nil
	}

	result := &TurnResult{}
	conversation := append(messages, first.Message)

	for _, req := range requests {
		part := o.execute(ctx, req, result)
		conversation = append(conversation, &ai.Message{
			Role:    ai.RoleTool,
			Content: []*ai.Part{part},
		})
	}

	// The booking link is surfaced only when book_demo was the last
	// capability invoked; a later invocation discards it, same as citations
	// from an earlier search are replaced by a later one.
	if result.CapabilityUsed != capability.NameBookDemo {
		result.CalendlyURL = ""
	}

	second, err := o.generate(ctx, conversation, false)
	if err != nil {
		return nil, err
	}

	result.Response = second.Text()
	return result, nil
}

// execute runs one decoded invocation, records its effect on the turn result,
// and returns the tool-response part to append to the conversation.
func (o *Orchestrator) execute(ctx context.Context, req *ai.ToolRequest, result *TurnResult) *ai.Part {
	respond := func(output any) *ai.Part {
		return ai.NewToolResponsePart(&ai.ToolResponse{
			Name:   req.Name,
			Ref:    req.Ref,
			Output: output,
		})
	}

	inv, err := capability.Decode(req)
	if err != nil {
		var argErr *capability.ArgumentError
		if errors.As(err, &argErr) {
			o.logger.Warn("invalid capability invocation absorbed",
				"capability", argErr.Capability, "error", argErr.Err)
			return respond(invalidArgsResult)
		}
		o.logger.Warn("undecodable capability invocation absorbed", "error", err)
		return respond(invalidArgsResult)
	}

	switch inv.Kind {
	case capability.KindSearchKnowledgeBase:
		result.CapabilityUsed = capability.NameSearchKnowledgeBase

		results, searchErr := o.registry.SearchResults(ctx, *inv.Search)
		if searchErr != nil {
			// Retrieval being down degrades the turn, it doesn't end it.
			o.logger.Warn("knowledge search unavailable", "error", searchErr)
			result.Citations = nil
			return respond(knowledge.NoResultsMessage)
		}

		result.Citations = o.registry.ExtractCitations(results)
		return respond(o.registry.FormatResults(results))

	case capability.KindBookDemo:
		result.CapabilityUsed = capability.NameBookDemo

		booking := o.registry.ExecuteBookDemo(*inv.Book)
		result.CalendlyURL = booking.CalendlyURL
		return respond(booking)

	default:
		return respond(invalidArgsResult)
	}
}

// generate performs one rate-limited, time-bounded model call.
func (o *Orchestrator) generate(ctx context.Context, messages []*ai.Message, withTools bool) (*ai.ModelResponse, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", ErrCompletionFailed, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	opts := []ai.GenerateOption{
		ai.WithModelName(o.cfg.ModelName),
		ai.WithMessages(messages...),
		ai.WithConfig(&ai.GenerationCommonConfig{
			Temperature:     float64(o.cfg.Temperature),
			MaxOutputTokens: o.cfg.MaxTokens,
		}),
	}
	if withTools {
		// The orchestrator executes invocations itself; the framework must
		// hand requests back instead of running tools.
		opts = append(opts, ai.WithTools(o.toolRefs...), ai.WithReturnToolRequests(true))
	}

	resp, err := genkit.Generate(callCtx, o.g, opts...)
	if err != nil {
		o.logger.Error("model call failed", "with_tools", withTools, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}
	return resp, nil
}
