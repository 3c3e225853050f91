package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/sorcerer/pkg/log"
)

const defaultEmbedTimeout = 30 * time.Second

// Embedder chunks passages and applies a deadline to every model call.
type Embedder struct {
	model     DualEncoder
	timeout   time.Duration
	chunkConf ChunkerConfig
}

func NewEmbedder(model DualEncoder) *Embedder {
	return &Embedder{
		model:     model,
		timeout:   defaultEmbedTimeout,
		chunkConf: DefaultChunkerConfig(),
	}
}

// WithTimeout overrides the per-call deadline.
func (e *Embedder) WithTimeout(d time.Duration) *Embedder {
	if d > 0 {
		e.timeout = d
	}
	return e
}

func (e *Embedder) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	vec, err := e.model.EncodeQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	return vec, nil
}

// WithChunker overrides how passages are split before embedding.
func (e *Embedder) WithChunker(cfg ChunkerConfig) *Embedder {
	if cfg.MaxTokens > 0 {
		e.chunkConf = cfg
	}
	return e
}

// EncodePassage returns one vector per chunk of text.
func (e *Embedder) EncodePassage(ctx context.Context, text string) ([][]float32, error) {
	chunks := ChunkPassage(text, e.chunkConf)
	embeddings := make([][]float32, 0, len(chunks))

	for _, chunk := range chunks {
		log.FromCtx(ctx).Trace().Int("chunk", chunk.Index).Int("tokens", chunk.TokenSize).Msg("embedding chunk")

		vec, err := e.encodeChunk(ctx, chunk.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %d: %w", chunk.Index, err)
		}
		embeddings = append(embeddings, vec)
	}
	return embeddings, nil
}

func (e *Embedder) encodeChunk(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.model.EncodePassage(ctx, text)
}

func (e *Embedder) Shutdown() error {
	return e.model.Shutdown()
}
