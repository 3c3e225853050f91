package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/sorcerer/pkg/log"
)

type LLMConfig struct {
	// openai, openrouter, ollama, custom or anthropic
	Provider string `env:"LLM_PROVIDER" envDefault:"openrouter"`
	Model    string `env:"LLM_MODEL" envDefault:"google/gemma-3-27b-it:free"`
	BaseURL  string `env:"LLM_BASE_URL"`
	APIKey   string `env:"LLM_API_KEY"`

	// Cheaper model for turn summaries. Empty reuses Model.
	SummaryModel string `env:"LLM_SUMMARY_MODEL"`

	MaxRetries int `env:"LLM_MAX_RETRIES" envDefault:"2"`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}
