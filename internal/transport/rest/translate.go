package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

type standaloneTranslator interface {
	TranslateStandalone(text string, source, target domain.Language) string
}

// TranslateHandler serves dictionary-only translation.
type TranslateHandler struct {
	svc standaloneTranslator
	log *slog.Logger
}

// NewTranslateHandler creates a TranslateHandler.
func NewTranslateHandler(svc standaloneTranslator, logger *slog.Logger) *TranslateHandler {
	return &TranslateHandler{svc: svc, log: logger.With("handler", "translate")}
}

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// translateResponse echoes the pair with the labels the front end shows.
type translateResponse struct {
	Translation string `json:"translation"`
	Source      string `json:"source"`
	Target      string `json:"target"`
}

// Translate handles POST /v1/translate.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	source, ok := domain.ParseLanguage(req.Source)
	if !ok {
		handleError(h.log, w, r, domain.NewValidationError("source", "must be one of fr, en, sus"))
		return
	}
	target, ok := domain.ParseLanguage(req.Target)
	if !ok {
		handleError(h.log, w, r, domain.NewValidationError("target", "must be one of fr, en, sus"))
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{
		Translation: h.svc.TranslateStandalone(req.Text, source, target),
		Source:      source.Label(),
		Target:      target.Label(),
	})
}
