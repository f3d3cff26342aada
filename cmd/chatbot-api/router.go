// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vibesync/chatbot-engine/cmd/chatbot-api/handlers"
	"github.com/vibesync/chatbot-engine/cmd/chatbot-api/middleware"
	"github.com/vibesync/chatbot-engine/internal/chatbot"
	"github.com/vibesync/chatbot-engine/internal/config"
	"github.com/vibesync/chatbot-engine/internal/observability"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, responder *chatbot.Responder) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.ReadTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"chatbot-engine"}`))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ready"}`))
	})

	chatHandler := handlers.NewChatHandler(logger, responder)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/chat", func(r chi.Router) {
			r.Post("/ask", chatHandler.Ask)
		})
	})

	return r
}
