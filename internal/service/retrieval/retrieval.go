package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/sorcerer/internal/config"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/pkg/log"
)

// Retriever turns prompt keywords into knowledge snippets.
type Retriever struct {
	embedder      core.Embedder
	index         core.VectorIndex
	topK          int
	minScore      float64
	maxQueryChars int
}

func NewRetriever(cfg *config.RAGConfig, embedder core.Embedder, index core.VectorIndex) *Retriever {
	return &Retriever{
		embedder:      embedder,
		index:         index,
		topK:          cfg.TopK,
		minScore:      cfg.MinScore,
		maxQueryChars: cfg.MaxQueryChars,
	}
}

// Retrieve returns "[entity]: content" snippets scoring at least minScore.
// Any failure yields nil and the prompt goes out without snippets.
func (r *Retriever) Retrieve(ctx context.Context, keywords []string) []string {
	logger := log.FromCtx(ctx)

	query := QueryText(keywords, r.maxQueryChars)
	if query == "" {
		return nil
	}

	vec, err := r.embedder.EncodeQuery(ctx, query)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to embed retrieval query")
		return nil
	}
	if len(vec) == 0 {
		return nil
	}

	matches, err := r.index.Query(ctx, vec, r.topK, r.minScore)
	if err != nil {
		logger.Warn().Err(err).Msg("vector query failed")
		return nil
	}

	snippets := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.Score < r.minScore {
			continue
		}
		snippets = append(snippets, fmt.Sprintf("[%s]: %s", m.Metadata.EntityName, m.Metadata.Content))
	}

	logger.Debug().
		Str("query", query).
		Int("matches", len(matches)).
		Int("snippets", len(snippets)).
		Msg("retrieval done")
	return snippets
}

// QueryText joins unique non-empty keywords in first-seen order, cut to maxChars runes.
func QueryText(keywords []string, maxChars int) string {
	seen := make(map[string]struct{}, len(keywords))
	unique := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		unique = append(unique, kw)
	}

	text := strings.Join(unique, " ")
	if maxChars > 0 {
		if r := []rune(text); len(r) > maxChars {
			text = string(r[:maxChars])
		}
	}
	return text
}

// Disabled is used when no embedding endpoint is configured.
type Disabled struct{}

func (Disabled) Retrieve(context.Context, []string) []string { return nil }
