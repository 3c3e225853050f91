package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/sorcerer/internal/config"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/pkg/log"
)

// NewProvider creates the configured LLMProvider.
func NewProvider(ctx context.Context, cfg *config.LLMConfig) (core.LLMProvider, error) {
	return newProvider(ctx, cfg, cfg.Model)
}

// NewSummaryProvider uses the summary model when one is configured.
func NewSummaryProvider(ctx context.Context, cfg *config.LLMConfig) (core.LLMProvider, error) {
	model := cfg.SummaryModel
	if model == "" {
		model = cfg.Model
	}
	return newProvider(ctx, cfg, model)
}

func newProvider(ctx context.Context, cfg *config.LLMConfig, model string) (core.LLMProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", model).
		Msg("starting llm provider")

	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg.APIKey, model), nil
	case "anthropic":
		return NewAnthropic(cfg.BaseURL, cfg.APIKey, model), nil
	case "openrouter":
		return NewOpenRouter(cfg.APIKey, model), nil
	case "ollama":
		return NewOllama(cfg.BaseURL, cfg.APIKey, model), nil
	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom llm provider requires LLM_BASE_URL")
		}
		return NewCustomOpenAI(cfg.BaseURL, cfg.APIKey, model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
