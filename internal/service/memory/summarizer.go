package memory

import (
	"context"
	"strings"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/pkg/log"
)

const (
	summarySystem = "Bạn là trợ lý ghi nhớ. Hãy tóm tắt lượt chat này thành 1 câu cực ngắn (dưới 20 từ), " +
		"giữ các keyword chính và sắc thái cảm xúc của người hỏi để theo dõi tiến trình hội thoại."

	summaryMaxTokens   = 60
	summaryTemperature = 0.3
	fallbackRunes      = 30
)

// Summarizer compresses a turn into a short line through the LLM gateway.
type Summarizer struct {
	gen core.Generator
}

func NewSummarizer(gen core.Generator) *Summarizer {
	return &Summarizer{gen: gen}
}

// Summarize never fails; a missing summary falls back to the question head.
func (s *Summarizer) Summarize(ctx context.Context, question, reply string) string {
	out := s.gen.Generate(ctx, core.GenerateParams{
		System:      summarySystem,
		User:        "User: " + question + "\nAI: " + reply,
		MaxTokens:   summaryMaxTokens,
		Temperature: summaryTemperature,
	})

	summary := strings.TrimSpace(out.Text)
	if out.Fallback || summary == "" {
		log.FromCtx(ctx).Debug().Msg("turn summary unavailable, using question head")
		return FallbackSummary(question)
	}
	return summary
}

// FallbackSummary is the first runes of the question.
func FallbackSummary(question string) string {
	r := []rune(strings.TrimSpace(question))
	if len(r) > fallbackRunes {
		r = r[:fallbackRunes]
	}
	return "Trao đổi: " + string(r)
}
