package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/nene-backend/pkg/ctxutil"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), "log output: %q", buf.String())
	return line
}

func serveLogged(t *testing.T, level slog.Level, status int, req *http.Request) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("ok"))
	})
	Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), req)
	return &buf
}

func TestLogger_Success(t *testing.T) {
	t.Parallel()

	buf := serveLogged(t, slog.LevelInfo, http.StatusOK, httptest.NewRequest(http.MethodGet, "/v1/translate", nil))
	line := logLine(t, buf)

	assert.Equal(t, "http.request", line["msg"])
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/v1/translate", line["path"])
	assert.EqualValues(t, 200, line["status"])
	assert.EqualValues(t, 2, line["bytes"])
	assert.Contains(t, line, "duration")
}

func TestLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		status int
		want   string
	}{
		{"server error", "/v1/chat", http.StatusInternalServerError, "ERROR"},
		{"rate limited", "/v1/chat", http.StatusTooManyRequests, "WARN"},
		{"client error", "/v1/lexicon/lookup", http.StatusNotFound, "INFO"},
		{"failing probe", "/ready", http.StatusServiceUnavailable, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := serveLogged(t, slog.LevelInfo, tt.status, httptest.NewRequest(http.MethodPost, tt.path, nil))
			assert.Equal(t, tt.want, logLine(t, buf)["level"])
		})
	}
}

func TestLogger_ProbesAtDebug(t *testing.T) {
	t.Parallel()

	buf := serveLogged(t, slog.LevelInfo, http.StatusOK, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Empty(t, buf.String())

	buf = serveLogged(t, slog.LevelDebug, http.StatusOK, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, "DEBUG", logLine(t, buf)["level"])
}

func TestLogger_IncludesRequestID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ctxutil.WithRequestID(req.Context(), "test-request-id-123"))

	buf := serveLogged(t, slog.LevelInfo, http.StatusOK, req)
	assert.Equal(t, "test-request-id-123", logLine(t, buf)["request_id"])
}

func TestLogger_IncludesQueryAndRoute(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/lexicon/lookup", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/lexicon/lookup?text=Tana&direction=sus-fr", nil)
	Logger(logger)(mux).ServeHTTP(httptest.NewRecorder(), req)

	line := logLine(t, &buf)
	assert.Equal(t, "text=Tana&direction=sus-fr", line["query"])
	assert.Equal(t, "GET /v1/lexicon/lookup", line["route"])
	assert.EqualValues(t, 404, line["status"])
}
