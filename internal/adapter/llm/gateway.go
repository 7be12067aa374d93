// Package llm builds the external model gateway selected by configuration.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/nene-backend/internal/adapter/llm/anthropic"
	"github.com/heartmarshall/nene-backend/internal/adapter/llm/echo"
	"github.com/heartmarshall/nene-backend/internal/adapter/llm/gemini"
	"github.com/heartmarshall/nene-backend/internal/adapter/llm/httpchat"
	"github.com/heartmarshall/nene-backend/internal/config"
	"github.com/heartmarshall/nene-backend/internal/domain"
)

// Gateway is a single request/response call to a language model.
type Gateway interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// DefaultModel is used when the configuration names no model.
func DefaultModel(provider string) string {
	switch provider {
	case config.ProviderAnthropic:
		return "claude-3-7-sonnet-20250219"
	case config.ProviderOpenRouter:
		return "anthropic/claude-3.7-sonnet"
	case config.ProviderOllama:
		return "llama3.1"
	case config.ProviderGemini:
		return "gemini-2.5-flash"
	}
	return ""
}

// New returns the gateway for cfg.Provider.
func New(ctx context.Context, log *slog.Logger, cfg config.LLMConfig) (Gateway, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel(cfg.Provider)
	}

	switch cfg.Provider {
	case config.ProviderAnthropic:
		var opts []option.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
		return anthropic.NewClient(log, cfg.APIKey, model, cfg.MaxTokens, opts...), nil

	case config.ProviderOpenRouter, config.ProviderOllama:
		flavor, key := httpchat.FlavorOpenRouter, cfg.APIKey
		if cfg.Provider == config.ProviderOllama {
			flavor, key = httpchat.FlavorOllama, ""
		}
		c, err := httpchat.NewClient(log, flavor, key, cfg.BaseURL, model, cfg.MaxTokens, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return c, nil

	case config.ProviderGemini:
		c, err := gemini.NewClient(ctx, log, cfg.APIKey, model, cfg.BaseURL, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		return c, nil

	case config.ProviderEcho:
		return echo.New(), nil

	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
