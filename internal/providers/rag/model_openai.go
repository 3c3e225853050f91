package rag

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIEncoder embeds text through an OpenAI-compatible /embeddings endpoint.
// Prefixes support instruction-tuned models such as multilingual-e5 ("query: ", "passage: ").
type OpenAIEncoder struct {
	client        *openai.Client
	model         string
	queryPrefix   string
	passagePrefix string
}

type OpenAIEncoderConfig struct {
	BaseURL       string
	APIKey        string
	Model         string
	QueryPrefix   string
	PassagePrefix string
}

func NewOpenAIEncoder(cfg OpenAIEncoderConfig) *OpenAIEncoder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIEncoder{
		client:        openai.NewClientWithConfig(clientCfg),
		model:         cfg.Model,
		queryPrefix:   cfg.QueryPrefix,
		passagePrefix: cfg.PassagePrefix,
	}
}

func (e *OpenAIEncoder) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, e.queryPrefix+text)
}

func (e *OpenAIEncoder) EncodePassage(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, e.passagePrefix+text)
}

func (e *OpenAIEncoder) embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings request: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("embeddings response has no data")
	}
	return resp.Data[0].Embedding, nil
}

func (e *OpenAIEncoder) Shutdown() error {
	return nil
}
