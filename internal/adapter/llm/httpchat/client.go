// Package httpchat talks to chat-completion HTTP APIs that have no SDK in
// this module: OpenRouter (OpenAI-compatible) and a local Ollama server.
package httpchat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

// Flavor selects the wire format.
type Flavor string

const (
	FlavorOpenRouter Flavor = "openrouter"
	FlavorOllama     Flavor = "ollama"
)

const (
	defaultOpenRouterURL = "https://openrouter.ai"
	defaultOllamaURL     = "http://localhost:11434"
)

// Client completes prompts over plain HTTP.
type Client struct {
	flavor    Flavor
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	http      *resty.Client
	log       *slog.Logger
}

// NewClient creates a Client. An empty baseURL selects the public default
// of the flavor. The HTTP timeout is a backstop; callers pass deadlines
// through the context.
func NewClient(log *slog.Logger, flavor Flavor, apiKey, baseURL, model string, maxTokens int, timeout time.Duration) (*Client, error) {
	switch flavor {
	case FlavorOpenRouter:
		if baseURL == "" {
			baseURL = defaultOpenRouterURL
		}
	case FlavorOllama:
		if baseURL == "" {
			baseURL = defaultOllamaURL
		}
	default:
		return nil, fmt.Errorf("httpchat: unsupported flavor %q", flavor)
	}

	return &Client{
		flavor:    flavor,
		apiKey:    apiKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		model:     model,
		maxTokens: maxTokens,
		http:      resty.New().SetTimeout(timeout),
		log:       log.With("adapter", "httpchat", "flavor", string(flavor)),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func messages(req domain.CompletionRequest) []chatMessage {
	var out []chatMessage
	if sys := req.Instruction(); sys != "" {
		out = append(out, chatMessage{Role: "system", Content: sys})
	}
	return append(out, chatMessage{Role: "user", Content: req.Text})
}

// Complete sends the request and returns the assistant message.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	var (
		answer string
		err    error
	)
	switch c.flavor {
	case FlavorOpenRouter:
		answer, err = c.completeOpenRouter(ctx, req)
	default:
		answer, err = c.completeOllama(ctx, req)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrGateway, c.flavor, err)
	}
	return answer, nil
}

func (c *Client) completeOpenRouter(ctx context.Context, req domain.CompletionRequest) (string, error) {
	body := map[string]any{
		"model":      c.model,
		"messages":   messages(req),
		"max_tokens": c.maxTokens,
	}
	var resp struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}

	r, err := c.http.R().SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&resp).
		Post(openRouterURL(c.baseURL, "/chat/completions"))
	if err != nil {
		return "", err
	}
	if r.IsError() {
		return "", fmt.Errorf("%s; body: %s", r.Status(), abbreviate(r.String(), 500))
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *Client) completeOllama(ctx context.Context, req domain.CompletionRequest) (string, error) {
	body := map[string]any{
		"model":    c.model,
		"messages": messages(req),
		"stream":   false,
		"options":  map[string]any{"num_predict": c.maxTokens},
	}
	var resp struct {
		Message chatMessage `json:"message"`
	}

	r, err := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&resp).
		Post(c.baseURL + "/api/chat")
	if err != nil {
		return "", err
	}
	if r.IsError() {
		return "", fmt.Errorf("%s; body: %s", r.Status(), abbreviate(r.String(), 500))
	}
	if resp.Message.Content == "" {
		return "", fmt.Errorf("empty message")
	}
	return strings.TrimSpace(resp.Message.Content), nil
}

// openRouterURL builds a URL whether base already contains /api/v1 or not.
func openRouterURL(base, tail string) string {
	if idx := strings.Index(base, "/api/v1"); idx >= 0 {
		return base[:idx+len("/api/v1")] + tail
	}
	return base + "/api/v1" + tail
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
