package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/internal/providers/rag"
	"github.com/sandevgo/sorcerer/pkg/log"
	"github.com/sandevgo/sorcerer/pkg/retry"
	"github.com/sashabaranov/go-openai"
)

// FallbackReply is returned to the user whenever generation fails.
const FallbackReply = "Xin lỗi, Vũ trụ đang bận hiệu chỉnh năng lượng. Vui lòng thử lại sau."

var (
	generations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sorcerer",
		Subsystem: "llm",
		Name:      "generations_total",
		Help:      "LLM generations by provider and result (ok, fallback)",
	}, []string{"provider", "result"})

	generationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sorcerer",
		Subsystem: "llm",
		Name:      "generation_seconds",
		Help:      "LLM generation latency including retries",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"provider"})

	tokensUsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sorcerer",
		Subsystem: "llm",
		Name:      "tokens_total",
		Help:      "Tokens consumed by direction (input, output)",
	}, []string{"provider", "direction"})
)

// Gateway wraps a provider with per-call timeouts, retries and the apology fallback.
type Gateway struct {
	provider core.LLMProvider
	timeout  time.Duration
	retrier  *retry.Retrier
}

func NewGateway(provider core.LLMProvider, timeout time.Duration, maxRetries int) *Gateway {
	cfg := retry.NewDefaultConfig()
	cfg.MaxRetries = maxRetries
	cfg.Retryable = isRetryable
	return &Gateway{
		provider: provider,
		timeout:  timeout,
		retrier:  retry.NewRetrier(cfg),
	}
}

// Generate never fails. Upstream errors and empty replies become FallbackReply.
func (g *Gateway) Generate(ctx context.Context, p core.GenerateParams) core.Generation {
	logger := log.FromCtx(ctx).With().Str("provider", g.provider.Name()).Logger()
	start := time.Now()

	gen, err := retry.DoValue(ctx, g.retrier, func() (core.Generation, error) {
		callCtx := ctx
		if g.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}
		return g.provider.Generate(callCtx, p)
	})
	generationLatency.WithLabelValues(g.provider.Name()).Observe(time.Since(start).Seconds())

	if err == nil && strings.TrimSpace(gen.Text) == "" {
		err = errors.New("empty completion")
	}
	if err != nil {
		generations.WithLabelValues(g.provider.Name(), "fallback").Inc()
		logger.Warn().Err(err).Msg("generation failed, returning fallback reply")
		return core.Generation{Text: FallbackReply, Fallback: true}
	}

	if gen.InputTokens == 0 {
		gen.InputTokens = rag.CountTokens(p.System) + rag.CountTokens(p.User)
	}
	if gen.OutputTokens == 0 {
		gen.OutputTokens = rag.CountTokens(gen.Text)
	}

	generations.WithLabelValues(g.provider.Name(), "ok").Inc()
	tokensUsed.WithLabelValues(g.provider.Name(), "input").Add(float64(gen.InputTokens))
	tokensUsed.WithLabelValues(g.provider.Name(), "output").Add(float64(gen.OutputTokens))

	logger.Debug().
		Int("input_tokens", gen.InputTokens).
		Int("output_tokens", gen.OutputTokens).
		Dur("elapsed", time.Since(start)).
		Msg("generation done")
	return gen
}

// isRetryable skips client errors other than rate limiting.
func isRetryable(err error) bool {
	status := 0

	var oaiErr *openai.APIError
	var reqErr *openai.RequestError
	var antErr *anthropic.Error
	switch {
	case errors.As(err, &oaiErr):
		status = oaiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	case errors.As(err, &antErr):
		status = antErr.StatusCode
	}

	if status == 0 || status == http.StatusTooManyRequests || status >= 500 {
		return true
	}
	return false
}
