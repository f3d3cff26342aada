// Package handlers provides HTTP handlers for the chatbot API.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/vibesync/chatbot-engine/internal/chatbot"
	"github.com/vibesync/chatbot-engine/internal/observability"
)

// ChatHandler handles chatbot question requests.
type ChatHandler struct {
	logger    *observability.Logger
	responder *chatbot.Responder
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(logger *observability.Logger, responder *chatbot.Responder) *ChatHandler {
	return &ChatHandler{
		logger:    logger,
		responder: responder,
	}
}

// AskRequestDTO represents the API request for a chatbot question.
type AskRequestDTO struct {
	Prompt string `json:"prompt"`
}

// AskResponseDTO represents the API response.
type AskResponseDTO struct {
	ID        string `json:"id"`
	Answer    string `json:"answer"`
	Language  string `json:"language"`
	Stage     string `json:"stage"`
	LatencyMs int64  `json:"latencyMs"`
}

// Ask handles POST /chat/ask.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
		ctx = observability.ContextWithRequestID(ctx, reqID)
	}

	var reqDTO AskRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()
	result := h.responder.Answer(ctx, reqDTO.Prompt)

	respDTO := AskResponseDTO{
		ID:        uuid.NewString(),
		Answer:    result.Answer,
		Language:  string(result.Language),
		Stage:     result.Stage,
		LatencyMs: time.Since(start).Milliseconds(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(respDTO); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *ChatHandler) writeError(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]string{
		"error":   message,
		"message": message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	json.NewEncoder(w).Encode(resp)
}
