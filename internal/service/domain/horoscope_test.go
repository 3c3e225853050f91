package domain

import (
	"context"
	"testing"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoroscope_Handle(t *testing.T) {
	f := newFixture()
	h := NewHoroscope(f.deps)

	resp, err := h.Handle(context.Background(), &core.Request{
		Domain:      "horoscope",
		UserContext: &core.SubjectContext{BirthDate: "15/03/1990", BirthTime: "09:30", Gender: "nam", Name: "Minh"},
	})
	require.NoError(t, err)

	answer, ok := resp.Answer.(core.HoroscopeAnswer)
	require.True(t, ok)
	assert.Equal(t, core.HoroscopeSummary{
		CanChi:    "Canh Ngọ",
		BanMenh:   "Lộ Bàng Thổ",
		Cuc:       "Thủy nhị Cục",
		MenhChu:   "Văn Khúc",
		ThanChu:   "Thiên Đồng",
		ViTriMenh: "Cung Dần",
		ViTriThan: "Cung Ngọ",
	}, answer.Summary)
	assert.Equal(t, core.HoroscopeMetadata{Name: "Minh", DOBSolar: "15/3/1990", DOBLunar: "19/2/1990"}, answer.Metadata)
	assert.Equal(t, "lời giải", answer.Analysis)

	require.Len(t, f.charts.calls, 1)
	assert.Equal(t, core.ChartRequest{Day: 15, Month: 3, Year: 1990, HourBranch: 6, GenderSign: 1, Name: "Minh", TZOffset: 7}, f.charts.calls[0])

	require.Len(t, f.gen.calls, 1)
	assert.Contains(t, f.gen.calls[0].User, "Cung Mệnh tại Dần: Tử Vi, Thiên Phủ")
	assert.Contains(t, f.gen.calls[0].System, "Minh")
}

func TestHoroscope_Defaults(t *testing.T) {
	f := newFixture()
	resp, err := NewHoroscope(f.deps).Handle(context.Background(), &core.Request{
		UserContext: &core.SubjectContext{BirthDate: "15/03/1990"},
	})
	require.NoError(t, err)

	answer := resp.Answer.(core.HoroscopeAnswer)
	assert.Equal(t, "Đương số", answer.Metadata.Name)

	require.Len(t, f.charts.calls, 1)
	// 12:00 falls in the seventh branch; no gender is not male.
	assert.Equal(t, 7, f.charts.calls[0].HourBranch)
	assert.Equal(t, -1, f.charts.calls[0].GenderSign)
}

func TestHoroscope_GenderSign(t *testing.T) {
	tests := []struct {
		gender string
		want   int
	}{
		{gender: "m", want: 1},
		{gender: "trai", want: 1},
		{gender: "Nam", want: 1},
		{gender: "", want: -1},
		{gender: "unknown", want: -1},
		{gender: "nữ", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.gender, func(t *testing.T) {
			f := newFixture()
			_, err := NewHoroscope(f.deps).Handle(context.Background(), &core.Request{
				UserContext: &core.SubjectContext{BirthDate: "15/03/1990", Gender: tt.gender},
			})
			require.NoError(t, err)
			require.Len(t, f.charts.calls, 1)
			assert.Equal(t, tt.want, f.charts.calls[0].GenderSign)
		})
	}
}

func TestHoroscope_UnknownGendersShareChart(t *testing.T) {
	f := newFixture()
	h := NewHoroscope(f.deps)

	for _, g := range []string{"", "unknown", "khác"} {
		_, err := h.Handle(context.Background(), &core.Request{
			UserContext: &core.SubjectContext{BirthDate: "15/03/1990", Gender: g},
		})
		require.NoError(t, err)
	}
	// One fingerprint, one chart.
	assert.Len(t, f.charts.calls, 1)
}

func TestHoroscope_UnreadableBirthTime(t *testing.T) {
	f := newFixture()
	h := NewHoroscope(f.deps)

	_, err := h.Handle(context.Background(), &core.Request{
		UserContext: &core.SubjectContext{BirthDate: "15/03/1990", BirthTime: "abc"},
	})
	require.NoError(t, err)
	require.Len(t, f.charts.calls, 1)
	assert.Equal(t, 1, f.charts.calls[0].HourBranch)

	// No time at all is a different reading and must not hit the same entry.
	_, err = h.Handle(context.Background(), &core.Request{
		UserContext: &core.SubjectContext{BirthDate: "15/03/1990"},
	})
	require.NoError(t, err)
	require.Len(t, f.charts.calls, 2)
	assert.Equal(t, 7, f.charts.calls[1].HourBranch)
	assert.Len(t, f.store.entries, 2)
}

func TestHoroscope_CachedByBirthTime(t *testing.T) {
	f := newFixture()
	h := NewHoroscope(f.deps)

	for _, tm := range []string{"09:30", "9:30", "21:00"} {
		_, err := h.Handle(context.Background(), &core.Request{
			UserContext: &core.SubjectContext{BirthDate: "15/03/1990", BirthTime: tm},
		})
		require.NoError(t, err)
	}
	assert.Len(t, f.charts.calls, 2)

	// A cache hit comes back as the decoded structure.
	resp, err := h.Handle(context.Background(), &core.Request{
		UserContext: &core.SubjectContext{BirthDate: "1990-03-15", BirthTime: "09:30"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Cung Dần", resp.Answer.(core.HoroscopeAnswer).Summary.ViTriMenh)
	assert.Len(t, f.charts.calls, 2)
}

func TestHoroscope_ChartUnavailable(t *testing.T) {
	f := newFixture()
	f.charts.computeFunc = func(core.ChartRequest) (*core.ChartResult, error) {
		return nil, core.ErrChartUnavailable
	}
	h := NewHoroscope(f.deps)

	resp, err := h.Handle(context.Background(), &core.Request{
		UserContext: &core.SubjectContext{BirthDate: "15/03/1990"},
	})
	require.NoError(t, err)
	assert.Equal(t, ChartUnavailableReply, resp.Answer.(core.HoroscopeAnswer).Analysis)
	assert.Empty(t, f.gen.calls)
	assert.Empty(t, f.store.entries)
}

func TestHoroscope_NoChartService(t *testing.T) {
	f := newFixture()
	f.deps.Charts = nil

	resp, err := NewHoroscope(f.deps).Handle(context.Background(), &core.Request{
		UserContext: &core.SubjectContext{BirthDate: "15/03/1990"},
	})
	require.NoError(t, err)
	assert.Equal(t, ChartUnavailableReply, resp.Answer.(core.HoroscopeAnswer).Analysis)
}

func TestHoroscope_InvalidDate(t *testing.T) {
	f := newFixture()
	_, err := NewHoroscope(f.deps).Handle(context.Background(), &core.Request{
		UserContext: &core.SubjectContext{BirthDate: "2000"},
	})
	assert.True(t, core.IsInputError(err))
	assert.Empty(t, f.charts.calls)
}
