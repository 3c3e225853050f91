package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/internal/facts"
	"github.com/sandevgo/sorcerer/internal/service/cache"
	"github.com/sandevgo/sorcerer/internal/service/prompt"
	"github.com/sandevgo/sorcerer/pkg/log"
)

const (
	horoscopeTemp = 0.7

	defaultOwnerName = "Đương số"

	// ChartUnavailableReply is the analysis text when no chart could be laid out.
	ChartUnavailableReply = "Xin lỗi, hệ thống an sao lá số đang tạm ngưng. Vui lòng thử lại sau."
)

type Horoscope struct {
	*Deps
}

func NewHoroscope(d *Deps) *Horoscope {
	return &Horoscope{Deps: d}
}

func (h *Horoscope) Handle(ctx context.Context, req *core.Request) (core.Response, error) {
	in, err := newHoroscopeRequest(req)
	if err != nil {
		return core.Response{}, err
	}
	user, err := facts.ParseSubject(in.User)
	if err != nil {
		return core.Response{}, core.NewInputError("Ngày sinh không hợp lệ.", err.Error())
	}

	branch, timeToken := facts.ChartTime(user)
	name := user.Name
	if name == "" {
		name = defaultOwnerName
	}
	question := prompt.Truncate(strings.TrimSpace(req.Payload().Question), h.MaxQuestionChars)

	key := cache.NewKey(user, timeToken, cache.FeatureHoroscope)
	answer, err := cache.Remember(ctx, h.Cache, key, func(ctx context.Context) (core.HoroscopeAnswer, core.Generation, error) {
		meta := core.HoroscopeMetadata{Name: name, DOBSolar: user.Date.Display()}

		chart, err := h.chart(ctx, core.ChartRequest{
			Day:        user.Date.Day,
			Month:      user.Date.Month,
			Year:       user.Date.Year,
			HourBranch: branch,
			GenderSign: facts.GenderSign(user.Gender),
			Name:       name,
			TZOffset:   h.tzOffsetHours(),
		})
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("horoscope chart unavailable")
			return core.HoroscopeAnswer{Analysis: ChartUnavailableReply, Metadata: meta}, core.Generation{Fallback: true}, nil
		}
		if chart.Name == "" {
			chart.Name = name
		}

		p := prompt.Horoscope{
			Gender:  user.Gender,
			Name:    name,
			Chart:   prompt.ChartContext(chart),
			Request: question,
		}.Build()
		gen := h.Gen.Generate(ctx, p.Params(readingMaxTokens, horoscopeTemp, readingTopP))

		meta.DOBLunar = fmt.Sprintf("%d/%d/%d", chart.LunarDay, chart.LunarMonth, chart.LunarYear)
		return core.HoroscopeAnswer{
			Summary:  horoscopeSummary(chart),
			Analysis: gen.Text,
			Metadata: meta,
		}, gen, nil
	})
	if err != nil {
		return core.Response{}, err
	}

	return core.Response{Domain: string(core.DomainHoroscope), Feature: req.FeatureType, Answer: answer}, nil
}

func (d *Deps) chart(ctx context.Context, req core.ChartRequest) (*core.ChartResult, error) {
	if d.Charts == nil {
		return nil, core.ErrChartUnavailable
	}
	return d.Charts.Compute(ctx, req)
}

func (d *Deps) tzOffsetHours() int {
	_, offset := d.now().Zone()
	return offset / 3600
}

func horoscopeSummary(chart *core.ChartResult) core.HoroscopeSummary {
	s := core.HoroscopeSummary{
		CanChi:  chart.CanChi,
		BanMenh: chart.BanMenh,
		Cuc:     chart.Cuc,
		MenhChu: chart.MenhChu,
		ThanChu: chart.ThanChu,
	}
	if p, ok := chart.Palace(chart.MenhPalace); ok {
		s.ViTriMenh = "Cung " + p.Name
	}
	if p, ok := chart.Palace(chart.ThanPalace); ok {
		s.ViTriThan = "Cung " + p.Name
	}
	return s
}
