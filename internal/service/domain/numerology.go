package domain

import (
	"context"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/internal/facts"
	"github.com/sandevgo/sorcerer/internal/service/cache"
	"github.com/sandevgo/sorcerer/internal/service/knowledge"
	"github.com/sandevgo/sorcerer/internal/service/prompt"
)

const numerologyTemp = 0.5

type Numerology struct {
	*Deps
}

func NewNumerology(d *Deps) *Numerology {
	return &Numerology{Deps: d}
}

func (h *Numerology) Handle(ctx context.Context, req *core.Request) (core.Response, error) {
	in, err := newNumerologyRequest(req)
	if err != nil {
		return core.Response{}, err
	}
	user, err := facts.ParseSubject(in.User)
	if err != nil {
		return core.Response{}, core.NewInputError("Ngày sinh không hợp lệ.", err.Error())
	}

	key := cache.NewKey(user, "", cache.FeatureNumerology)
	answer, err := cache.Remember(ctx, h.Cache, key, func(ctx context.Context) (string, core.Generation, error) {
		lp := facts.LifePathNumber(user.Date.Day, user.Date.Month, user.Date.Year)
		sheet := h.Knowledge.Lookup(ctx, knowledge.CategoryNumerology, knowledge.NumerologyEntity(lp))

		p := prompt.Numerology{
			Gender:    user.Gender,
			LifePath:  lp,
			BirthDate: user.RawDate,
			Knowledge: prompt.NumerologyContext(lp, sheet),
		}.Build()

		gen := h.Gen.Generate(ctx, p.Params(readingMaxTokens, numerologyTemp, readingTopP))
		return gen.Text, gen, nil
	})
	if err != nil {
		return core.Response{}, err
	}

	return core.Response{Domain: string(core.DomainNumerology), Feature: req.FeatureType, Answer: answer}, nil
}
