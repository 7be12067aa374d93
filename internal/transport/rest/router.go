package rest

import "net/http"

// Handlers groups every endpoint handler the router mounts.
type Handlers struct {
	Health    *HealthHandler
	Chat      *ChatHandler
	Lexicon   *LexiconHandler
	Translate *TranslateHandler
}

// NewRouter registers all routes. Probes sit outside /v1 so that
// orchestrators can reach them without API versioning concerns.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /v1/chat", h.Chat.Chat)
	mux.HandleFunc("POST /v1/sessions", h.Chat.CreateSession)
	mux.HandleFunc("GET /v1/sessions/{id}", h.Chat.GetSession)
	mux.HandleFunc("DELETE /v1/sessions/{id}", h.Chat.DeleteSession)
	mux.HandleFunc("POST /v1/sessions/{id}/turns", h.Chat.AddTurn)
	mux.HandleFunc("POST /v1/sessions/{id}/clear", h.Chat.ClearSession)

	mux.HandleFunc("POST /v1/lexicon", h.Lexicon.Contribute)
	mux.HandleFunc("GET /v1/lexicon/lookup", h.Lexicon.Lookup)

	mux.HandleFunc("POST /v1/translate", h.Translate.Translate)

	return mux
}
