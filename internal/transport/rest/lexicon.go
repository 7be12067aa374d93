package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

// contributor records user-supplied translation pairs.
type contributor interface {
	Contribute(ctx context.Context, soussou, french string) (string, error)
}

type lookuper interface {
	Lookup(text string, dir domain.Direction) (string, bool)
}

// LexiconHandler serves dictionary contribution and lookup.
type LexiconHandler struct {
	svc  contributor
	dict lookuper
	log  *slog.Logger
}

// NewLexiconHandler creates a LexiconHandler.
func NewLexiconHandler(svc contributor, dict lookuper, logger *slog.Logger) *LexiconHandler {
	return &LexiconHandler{svc: svc, dict: dict, log: logger.With("handler", "lexicon")}
}

type contributeRequest struct {
	Soussou  string `json:"soussou"`
	Francais string `json:"francais"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type translationResponse struct {
	Translation string `json:"translation"`
}

// Contribute handles POST /v1/lexicon. The message is user-facing in every
// outcome. A persistence failure still answers 500: the pair is usable for
// this process but was not saved.
func (h *LexiconHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	var req contributeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.svc.Contribute(r.Context(), req.Soussou, req.Francais)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, messageResponse{Message: msg})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation error", Message: msg})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "persistence error", Message: msg})
	}
}

// Lookup handles GET /v1/lexicon/lookup?text=...&direction=sus-fr|fr-sus.
// It is an exact phrase lookup; use /v1/translate for segment translation.
func (h *LexiconHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("text")
	dir := domain.Direction(q.Get("direction"))
	if dir == "" {
		dir = domain.DirectionSoussouToFrench
	}

	var errs []domain.FieldError
	if domain.IsBlank(text) {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if !dir.IsValid() {
		errs = append(errs, domain.FieldError{Field: "direction", Message: "must be sus-fr or fr-sus"})
	}
	if len(errs) > 0 {
		handleError(h.log, w, r, domain.NewValidationErrors(errs))
		return
	}

	translation, ok := h.dict.Lookup(text, dir)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, translationResponse{Translation: translation})
}
