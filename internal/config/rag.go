package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/sorcerer/pkg/log"
)

type RAGConfig struct {
	ModelName string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	BaseURL   string `env:"EMBEDDING_BASE_URL"`
	APIKey    string `env:"EMBEDDING_API_KEY"`

	TopK     int     `env:"RAG_TOP_K" envDefault:"3"`
	MinScore float64 `env:"RAG_MIN_SCORE" envDefault:"0.35"`

	// Embedding input is cut to this many characters.
	MaxQueryChars int `env:"RAG_MAX_QUERY_CHARS" envDefault:"2000"`
}

func NewRAGConfig(ctx context.Context) *RAGConfig {
	cfg := &RAGConfig{}
	if err := env.Parse(cfg); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse RAG config")
	}
	return cfg
}

// Enabled reports whether an embedding endpoint is configured.
func (c RAGConfig) Enabled() bool {
	return c.APIKey != "" || c.BaseURL != ""
}
