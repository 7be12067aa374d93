package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

const defaultModel = "gemini-2.5-flash"

// Client completes prompts with the Gemini API.
type Client struct {
	client    *genai.Client
	model     string
	maxTokens int32
	log       *slog.Logger
}

// NewClient creates a Client. baseURL is optional and only used to point
// the SDK at a proxy or a test server.
func NewClient(ctx context.Context, log *slog.Logger, apiKey, model, baseURL string, maxTokens int) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if model == "" {
		model = defaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Client{
		client:    client,
		model:     model,
		maxTokens: int32(maxTokens),
		log:       log.With("adapter", "gemini"),
	}, nil
}

func (c *Client) config(req domain.CompletionRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{MaxOutputTokens: c.maxTokens}
	if sys := req.Instruction(); sys != "" {
		cfg.SystemInstruction = genai.NewContentFromText(sys, genai.RoleUser)
	}
	return cfg
}

// Complete sends the request text as a single user turn.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Text), c.config(req))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %w", domain.ErrGateway, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: gemini: empty response", domain.ErrGateway)
	}

	c.log.DebugContext(ctx, "completion received", slog.String("model", c.model))
	return text, nil
}
