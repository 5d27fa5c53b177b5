package chat

import (
	"errors"

	"github.com/eliselabs/sdragent/internal/knowledge"
)

// ErrCompletionFailed indicates the model call failed in either round of the
// completion protocol. Completion errors are not retried; they surface to the
// caller whole.
var ErrCompletionFailed = errors.New("completion failed")

// Message roles as the frontend sends them.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the caller-supplied conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QuickReply is a suggested-response button.
type QuickReply struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Outcome is the result of handling one conversation turn.
type Outcome struct {
	// Response is the assistant's reply text.
	Response string

	// QuickReplies holds suggested responses, or nil when none apply.
	QuickReplies []QuickReply

	// Sources lists the knowledge base articles behind the reply.
	Sources []knowledge.Citation

	// CapabilityUsed names the last capability invoked this turn, or "".
	CapabilityUsed string

	// CalendlyURL carries the booking link when book_demo ran this turn.
	CalendlyURL string
}
