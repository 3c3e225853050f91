package rag

import (
	"fmt"
	"strings"

	"github.com/sandevgo/sorcerer/internal/config"
)

// NewEmbeddingModel builds the encoder for the configured embedding model.
func NewEmbeddingModel(cfg *config.RAGConfig) (DualEncoder, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("embedding endpoint is not configured")
	}

	encCfg := OpenAIEncoderConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.ModelName,
	}
	if strings.Contains(strings.ToLower(cfg.ModelName), "e5") {
		encCfg.QueryPrefix = "query: "
		encCfg.PassagePrefix = "passage: "
	}
	return NewOpenAIEncoder(encCfg), nil
}
