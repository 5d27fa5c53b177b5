package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/eliselabs/sdragent/internal/chat"
	"github.com/eliselabs/sdragent/internal/knowledge"
	"github.com/eliselabs/sdragent/internal/log"
)

// ChatService is the conversation surface the handlers depend on.
type ChatService interface {
	InitialGreeting() chat.Outcome
	HandleTurn(ctx context.Context, messages []chat.Message) (chat.Outcome, error)
}

// ChatHandler serves the chat endpoints.
type ChatHandler struct {
	service ChatService
	logger  log.Logger
}

// NewChatHandler creates a chat handler.
func NewChatHandler(service ChatService, logger log.Logger) *ChatHandler {
	if logger == nil {
		logger = log.NewNop()
	}
	return &ChatHandler{service: service, logger: logger.With("component", "api.chat")}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/", h.root)
	mux.HandleFunc("POST /api/chat/init", h.initChat)
	mux.HandleFunc("POST /api/chat", h.handleChat)
}

// InitChatRequest is the body of POST /api/chat/init.
type InitChatRequest struct {
	SessionID string `json:"session_id"`
}

// InitChatResponse is the reply of POST /api/chat/init.
type InitChatResponse struct {
	Response     string           `json:"response"`
	QuickReplies []chat.QuickReply `json:"quick_replies"`
	IsNewSession bool             `json:"is_new_session"`
}

// ChatRequest is the body of POST /api/chat. The client sends the full
// conversation history on every request.
type ChatRequest struct {
	Messages  []chat.Message `json:"messages"`
	SessionID string         `json:"session_id,omitempty"`
}

// ChatResponse is the reply of POST /api/chat.
type ChatResponse struct {
	Response     string               `json:"response"`
	QuickReplies []chat.QuickReply    `json:"quick_replies"`
	Sources      []knowledge.Citation `json:"sources"`
	ToolUsed     *string              `json:"tool_used"`
	CalendlyURL  *string              `json:"calendly_url"`
}

// root is a simple service banner doubling as a smoke-test endpoint.
func (h *ChatHandler) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "EliseAI SDR Chatbot API",
		"status":  "running",
		"version": "1.0.0",
	}, h.logger)
}

func (h *ChatHandler) initChat(w http.ResponseWriter, r *http.Request) {
	var req InitChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body", h.logger)
		return
	}

	greeting := h.service.InitialGreeting()
	writeJSON(w, http.StatusOK, InitChatResponse{
		Response:     greeting.Response,
		QuickReplies: greeting.QuickReplies,
		IsNewSession: true,
	}, h.logger)
}

func (h *ChatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body", h.logger)
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "messages must not be empty", h.logger)
		return
	}

	outcome, err := h.service.HandleTurn(r.Context(), req.Messages)
	if err != nil {
		// Completion failures surface whole; the client gets a generic 500.
		h.logger.Error("chat turn failed", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "internal_error", "Error processing message", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, toChatResponse(outcome), h.logger)
}

// toChatResponse maps a turn outcome onto the wire shape. Sources is always
// a list, tool_used and calendly_url are null when absent.
func toChatResponse(outcome chat.Outcome) ChatResponse {
	resp := ChatResponse{
		Response:     outcome.Response,
		QuickReplies: outcome.QuickReplies,
		Sources:      outcome.Sources,
	}
	if resp.Sources == nil {
		resp.Sources = []knowledge.Citation{}
	}
	if outcome.CapabilityUsed != "" {
		resp.ToolUsed = &outcome.CapabilityUsed
	}
	if outcome.CalendlyURL != "" {
		resp.CalendlyURL = &outcome.CalendlyURL
	}
	return resp
}
