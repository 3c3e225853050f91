package domain

import (
	"context"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/internal/facts"
	"github.com/sandevgo/sorcerer/internal/service/cache"
	"github.com/sandevgo/sorcerer/internal/service/knowledge"
	"github.com/sandevgo/sorcerer/internal/service/prompt"
)

const (
	readingMaxTokens = 2000
	readingTopP      = 0.9

	astrologyOverviewTemp = 0.5
	astrologyLoveTemp     = 0.6
)

type Astrology struct {
	*Deps
}

func NewAstrology(d *Deps) *Astrology {
	return &Astrology{Deps: d}
}

func (h *Astrology) Handle(ctx context.Context, req *core.Request) (core.Response, error) {
	in, err := newAstrologyRequest(req)
	if err != nil {
		return core.Response{}, err
	}
	user, err := facts.ParseSubject(in.User)
	if err != nil {
		return core.Response{}, core.NewInputError("Ngày sinh không hợp lệ.", err.Error())
	}

	var answer string
	if in.Feature == FeatureLove {
		partner, err := facts.ParseSubject(in.Partner)
		if err != nil {
			return core.Response{}, core.NewInputError("Thiếu thông tin ngày sinh đối phương.", err.Error())
		}
		answer, err = h.love(ctx, user, partner)
		if err != nil {
			return core.Response{}, err
		}
	} else {
		answer, err = h.overview(ctx, user)
		if err != nil {
			return core.Response{}, err
		}
	}

	return core.Response{Domain: string(core.DomainAstrology), Feature: in.Feature, Answer: answer}, nil
}

func (h *Astrology) overview(ctx context.Context, user core.BirthSubject) (string, error) {
	key := cache.NewKey(user, "", cache.FeatureAstrologyOverview)
	return cache.Remember(ctx, h.Cache, key, func(ctx context.Context) (string, core.Generation, error) {
		sign := facts.ZodiacSign(user.Date.Day, user.Date.Month).KnowledgeName()
		sheet := h.Knowledge.Lookup(ctx, knowledge.CategoryZodiac, sign)

		p := prompt.AstrologyOverview{
			Gender:    user.Gender,
			Sign:      sign,
			BirthDate: user.RawDate,
			Knowledge: prompt.ZodiacContext(sign, sheet),
		}.Build()

		gen := h.Gen.Generate(ctx, p.Params(readingMaxTokens, astrologyOverviewTemp, readingTopP))
		return gen.Text, gen, nil
	})
}

func (h *Astrology) love(ctx context.Context, user, partner core.BirthSubject) (string, error) {
	key := cache.NewKey(user, "", cache.FeatureAstrologyLove(partner.Date))
	return cache.Remember(ctx, h.Cache, key, func(ctx context.Context) (string, core.Generation, error) {
		userSign := facts.ZodiacSign(user.Date.Day, user.Date.Month)
		partnerSign := facts.ZodiacSign(partner.Date.Day, partner.Date.Month)

		userSheet := h.Knowledge.Lookup(ctx, knowledge.CategoryZodiac, userSign.KnowledgeName())
		partnerSheet := h.Knowledge.Lookup(ctx, knowledge.CategoryZodiac, partnerSign.KnowledgeName())

		verdict := facts.CompatibilityVerdict(
			userSign, facts.CompatListFrom(userSheet),
			partnerSign, facts.CompatListFrom(partnerSheet),
		)

		p := prompt.AstrologyLove{
			Gender:       user.Gender,
			UserSign:     userSign.KnowledgeName(),
			PartnerSign:  partnerSign.KnowledgeName(),
			BirthDate:    user.RawDate + " - " + partner.RawDate,
			UserSheet:    prompt.ZodiacContext(userSign.KnowledgeName(), userSheet),
			PartnerSheet: prompt.ZodiacContext(partnerSign.KnowledgeName(), partnerSheet),
			Verdict:      verdict.Label(),
		}.Build()

		gen := h.Gen.Generate(ctx, p.Params(readingMaxTokens, astrologyLoveTemp, readingTopP))
		return gen.Text, gen, nil
	})
}
