package domain

import (
	"context"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/internal/facts"
	"github.com/sandevgo/sorcerer/internal/service/knowledge"
	"github.com/sandevgo/sorcerer/internal/service/prompt"
	"github.com/sandevgo/sorcerer/pkg/log"
)

const (
	tarotTemp = 0.7

	// Used when the reader asks nothing specific.
	defaultTarotQuestion = "Phân tích trải bài tổng quan."
)

// Tarot readings are never cached: every draw is different.
type Tarot struct {
	*Deps
}

func NewTarot(d *Deps) *Tarot {
	return &Tarot{Deps: d}
}

func (h *Tarot) Handle(ctx context.Context, req *core.Request) (core.Response, error) {
	in, err := newTarotRequest(req)
	if err != nil {
		return core.Response{}, err
	}

	question := prompt.Truncate(in.Question, h.MaxQuestionChars)
	topic := facts.ClassifyTopic(question)
	if question == "" {
		question = defaultTarotQuestion
	}

	lines := make([]prompt.CardLine, 0, len(in.Cards))
	for _, c := range in.Cards {
		lines = append(lines, h.resolveCard(ctx, c, topic))
	}

	p := prompt.Tarot{
		Feature:  in.Feature,
		Gender:   facts.ParseGender(in.User.Gender),
		Name:     in.User.Name,
		Topic:    string(topic),
		Question: question,
		Cards:    prompt.TarotContext(prompt.Clock(h.now()), string(topic), question, lines),
	}.Build()

	gen := h.Gen.Generate(ctx, p.Params(readingMaxTokens, tarotTemp, readingTopP))
	h.logReading(ctx, in, question, gen)

	return core.Response{Domain: string(core.DomainTarot), Feature: in.Feature, Answer: gen.Text}, nil
}

// resolveCard picks the most specific meaning the knowledge base has for the card.
func (h *Tarot) resolveCard(ctx context.Context, c tarotCard, topic facts.Topic) prompt.CardLine {
	name := facts.CardEntityName(c.Name)
	sheet := h.Knowledge.Lookup(ctx, knowledge.CategoryTarot, name)

	meaning := facts.NoCardData
	for _, key := range facts.MeaningKeys(topic, c.Upright) {
		if v := sheet.String(key); v != "" {
			meaning = v
			break
		}
	}

	return prompt.CardLine{
		Position:    facts.PositionLabel(c.Position),
		Name:        name,
		Orientation: facts.Orientation(c.Upright),
		Meaning:     meaning,
	}
}

func (h *Tarot) logReading(ctx context.Context, in *tarotRequest, question string, gen core.Generation) {
	if h.TarotLog == nil {
		return
	}
	err := h.TarotLog.LogReading(ctx, core.TarotReading{
		UserID:       in.UserID,
		Question:     question,
		Answer:       gen.Text,
		InputTokens:  gen.InputTokens,
		OutputTokens: gen.OutputTokens,
		CreatedAt:    h.now(),
	})
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to log tarot reading")
	}
}
