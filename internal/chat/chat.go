// Package chat implements the SDR conversation engine: the two-round
// completion orchestration, the Alex persona, the product catalog, and the
// stateless session facade the API serves.
package chat

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"

	"github.com/eliselabs/sdragent/internal/log"
)

// completer is the orchestrator surface the facade depends on.
type completer interface {
	Complete(ctx context.Context, messages []*ai.Message) (*TurnResult, error)
}

// Service is the stateless conversation facade. The caller supplies the full
// history each turn; nothing is persisted between calls.
type Service struct {
	orchestrator completer
	logger       log.Logger
}

// NewService creates the conversation facade over an orchestrator.
func NewService(orchestrator completer, logger log.Logger) *Service {
	if orchestrator == nil {
		panic("chat: nil orchestrator")
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Service{
		orchestrator: orchestrator,
		logger:       logger.With("component", "chat.service"),
	}
}

// InitialGreeting returns the fixed opening turn for a new conversation.
// No model call is made and no quick replies are attached.
func (s *Service) InitialGreeting() Outcome {
	return Outcome{Response: Greeting}
}

// HandleTurn runs one conversation turn: persona prompt prepended, the
// two-round completion executed, then conversation policy applied over the
// caller-supplied history (the reply being generated does not count).
func (s *Service) HandleTurn(ctx context.Context, messages []Message) (Outcome, error) {
	result, err := s.orchestrator.Complete(ctx, buildConversation(messages))
	if err != nil {
		return Outcome{}, fmt.Errorf("handling turn: %w", err)
	}

	outcome := Outcome{
		Response:       result.Response,
		Sources:        result.Citations,
		CapabilityUsed: result.CapabilityUsed,
		CalendlyURL:    result.CalendlyURL,
	}

	if ShouldOfferProductMenu(messages) {
		outcome.QuickReplies = ProductMenu()
	}

	s.logger.Debug("turn handled",
		"history_turns", len(messages),
		"capability_used", outcome.CapabilityUsed,
		"sources", len(outcome.Sources),
		"quick_replies", len(outcome.QuickReplies))

	return outcome, nil
}

// buildConversation maps the wire-format history into model messages with the
// persona prompt first. Unknown roles are treated as user turns rather than
// dropped, so the model still sees the text.
func buildConversation(messages []Message) []*ai.Message {
	conv := make([]*ai.Message, 0, len(messages)+1)
	conv = append(conv, ai.NewSystemMessage(ai.NewTextPart(systemPrompt())))

	for _, m := range messages {
		switch m.Role {
		case RoleAssistant:
			conv = append(conv, ai.NewModelMessage(ai.NewTextPart(m.Content)))
		default:
			conv = append(conv, ai.NewUserMessage(ai.NewTextPart(m.Content)))
		}
	}

	return conv
}
