package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// storePinger defines the minimal interface for record store health checks.
type storePinger interface {
	Ping(ctx context.Context) error
}

// lexiconSizer reports how many keys each dictionary direction holds.
type lexiconSizer interface {
	Size() (soussouToFrench, frenchToSoussou int)
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	store   storePinger
	driver  string
	lexicon lexiconSizer
	version string
}

// NewHealthHandler creates a HealthHandler. driver names the record store
// in the /health report.
func NewHealthHandler(store storePinger, driver string, lexicon lexiconSizer, version string) *HealthHandler {
	return &HealthHandler{store: store, driver: driver, lexicon: lexicon, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. Pings the store: 200 if OK, 503 if not.
// The dictionary is already in memory, so an empty one is still ready.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check: store latency, dictionary size and
// version. An unreachable store with a populated dictionary is "degraded":
// chat and translation keep answering from memory, only contributions fail.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	start := time.Now()
	storeErr := h.store.Ping(ctx)
	latency := time.Since(start)

	store := CompStatus{Status: "ok", Latency: latency.String(), Detail: h.driver}
	if storeErr != nil {
		store = CompStatus{Status: "down", Detail: h.driver}
	}

	susFr, frSus := h.lexicon.Size()
	lex := CompStatus{
		Status: "ok",
		Detail: "sus-fr=" + strconv.Itoa(susFr) + " fr-sus=" + strconv.Itoa(frSus),
	}
	empty := susFr == 0 && frSus == 0
	if empty {
		lex.Status = "empty"
	}

	overall, status := "ok", http.StatusOK
	switch {
	case storeErr != nil && empty:
		overall, status = "down", http.StatusServiceUnavailable
	case storeErr != nil:
		overall = "degraded"
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: map[string]CompStatus{"store": store, "lexicon": lex},
		Timestamp:  time.Now(),
	})
}
