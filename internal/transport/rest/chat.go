package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/nene-backend/internal/domain"
	"github.com/heartmarshall/nene-backend/pkg/ctxutil"
)

// chatService answers questions synchronously.
type chatService interface {
	Submit(ctx context.Context, question string, history domain.History, lang domain.Language) domain.History
}

// sessionStore keeps server-side conversations.
type sessionStore interface {
	Create() uuid.UUID
	Enqueue(ctx context.Context, id uuid.UUID, question string, lang domain.Language) (domain.History, error)
	History(id uuid.UUID) (domain.History, error)
	Clear(id uuid.UUID) error
	Delete(id uuid.UUID) error
}

// ChatHandler serves the conversation endpoints.
type ChatHandler struct {
	svc      chatService
	sessions sessionStore
	log      *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chatService, sessions sessionStore, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, sessions: sessions, log: logger.With("handler", "chat")}
}

type chatRequest struct {
	Question string         `json:"question"`
	Language string         `json:"language"`
	History  domain.History `json:"history"`
}

type turnRequest struct {
	Question string `json:"question"`
	Language string `json:"language"`
}

type historyResponse struct {
	ID      string         `json:"id,omitempty"`
	History domain.History `json:"history"`
}

type sessionResponse struct {
	ID string `json:"id"`
}

// Chat handles POST /v1/chat. The client owns the history; the response
// carries it back with the new turn answered.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lang, err := parseLanguage("language", req.Language)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	history := h.svc.Submit(r.Context(), req.Question, req.History, lang)
	writeJSON(w, http.StatusOK, historyResponse{History: history})
}

// CreateSession handles POST /v1/sessions.
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := h.sessions.Create()
	w.Header().Set("Location", "/v1/sessions/"+id.String())
	writeJSON(w, http.StatusCreated, sessionResponse{ID: id.String()})
}

// AddTurn handles POST /v1/sessions/{id}/turns. It answers 202 with the
// placeholder turn; clients poll GetSession for the answer.
func (h *ChatHandler) AddTurn(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req turnRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lang, err := parseLanguage("language", req.Language)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	ctx := ctxutil.WithSessionID(r.Context(), id)
	history, err := h.sessions.Enqueue(ctx, id, req.Question, lang)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, historyResponse{ID: id.String(), History: history})
}

// GetSession handles GET /v1/sessions/{id}.
func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	history, err := h.sessions.History(id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{ID: id.String(), History: history})
}

// ClearSession handles POST /v1/sessions/{id}/clear.
func (h *ChatHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.Clear(id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{ID: id.String(), History: domain.History{}})
}

// DeleteSession handles DELETE /v1/sessions/{id}.
func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.Delete(id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChatHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}
