package anthropic

import (
	"context"
	"fmt"
	"log/slog"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

// Client completes prompts with the Anthropic Messages API.
type Client struct {
	api       sdk.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// NewClient creates a Client. Extra options (base URL, HTTP client) are
// applied after the API key.
func NewClient(log *slog.Logger, apiKey, model string, maxTokens int, opts ...option.RequestOption) *Client {
	// Retries are not wanted: a failed call is reported to the user as is.
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	return &Client{
		api:       sdk.NewClient(opts...),
		model:     model,
		maxTokens: int64(maxTokens),
		log:       log.With("adapter", "anthropic"),
	}
}

// Complete sends one user message and returns the first text block.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.Text)),
		},
	}
	if sys := req.Instruction(); sys != "" {
		params.System = []sdk.TextBlockParam{{Text: sys}}
	}

	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: anthropic: %w", domain.ErrGateway, err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			c.log.DebugContext(ctx, "completion received",
				slog.String("model", c.model),
				slog.Int64("output_tokens", msg.Usage.OutputTokens),
			)
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("%w: anthropic: empty response", domain.ErrGateway)
}
