package domain

import (
	"context"
	"sync"
	"time"

	"github.com/sandevgo/sorcerer/internal/config"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/internal/service/cache"
	"github.com/sandevgo/sorcerer/internal/service/memory"
)

type mockGenerator struct {
	generateFunc func(params core.GenerateParams) core.Generation
	calls        []core.GenerateParams
}

func (m *mockGenerator) Generate(_ context.Context, params core.GenerateParams) core.Generation {
	m.calls = append(m.calls, params)
	if m.generateFunc != nil {
		return m.generateFunc(params)
	}
	return core.Generation{Text: "lời giải", InputTokens: 100, OutputTokens: 50}
}

type mockKnowledge struct {
	sheets  map[string]core.Attributes
	lookups []string
}

func (m *mockKnowledge) Lookup(_ context.Context, category, entityKey string) core.Attributes {
	m.lookups = append(m.lookups, category+"/"+entityKey)
	if s, ok := m.sheets[category+"/"+entityKey]; ok {
		return s
	}
	return core.Attributes{}
}

type mockRetriever struct {
	snippets []string
	keywords [][]string
}

func (m *mockRetriever) Retrieve(_ context.Context, keywords []string) []string {
	m.keywords = append(m.keywords, keywords)
	return m.snippets
}

type memoryCacheStore struct {
	mu      sync.Mutex
	entries map[string]core.CacheEntry
}

func (s *memoryCacheStore) Get(_ context.Context, fp string) (*core.CacheEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[fp]
	if !ok {
		return nil, false, nil
	}
	return &e, true, nil
}

func (s *memoryCacheStore) Put(_ context.Context, e core.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Fingerprint] = e
	return nil
}

type memoryTurns struct {
	turns []core.Turn
}

func (r *memoryTurns) AppendTurn(_ context.Context, t core.Turn) error {
	r.turns = append(r.turns, t)
	return nil
}

func (r *memoryTurns) RecentTurns(_ context.Context, sessionID string, limit int) ([]core.Turn, error) {
	var out []core.Turn
	for _, t := range r.turns {
		if t.SessionID == sessionID {
			out = append(out, t)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type mockCharts struct {
	computeFunc func(req core.ChartRequest) (*core.ChartResult, error)
	calls       []core.ChartRequest
}

func (m *mockCharts) Compute(_ context.Context, req core.ChartRequest) (*core.ChartResult, error) {
	m.calls = append(m.calls, req)
	if m.computeFunc != nil {
		return m.computeFunc(req)
	}
	return sampleChart(), nil
}

type mockTarotLog struct {
	readings []core.TarotReading
	err      error
}

func (m *mockTarotLog) LogReading(_ context.Context, r core.TarotReading) error {
	m.readings = append(m.readings, r)
	return m.err
}

func sampleChart() *core.ChartResult {
	return &core.ChartResult{
		CanChi:     "Canh Ngọ",
		BanMenh:    "Lộ Bàng Thổ",
		Cuc:        "Thủy nhị Cục",
		MenhChu:    "Văn Khúc",
		ThanChu:    "Thiên Đồng",
		MenhPalace: 3,
		ThanPalace: 7,
		LunarDay:   19,
		LunarMonth: 2,
		LunarYear:  1990,
		Palaces: []core.Palace{
			{Index: 3, Name: "Dần", Role: "Mệnh", Stars: []core.Star{{Name: "Tử Vi", Primary: true}, {Name: "Thiên Phủ", Primary: true}, {Name: "Tả Phù"}}},
			{Index: 7, Name: "Ngọ", Role: "Quan Lộc"},
		},
	}
}

type fixture struct {
	deps      *Deps
	gen       *mockGenerator
	knowledge *mockKnowledge
	retriever *mockRetriever
	store     *memoryCacheStore
	turns     *memoryTurns
	charts    *mockCharts
	tarotLog  *mockTarotLog
}

var fixedNow = time.Date(2026, 3, 8, 2, 30, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		gen:       &mockGenerator{},
		knowledge: &mockKnowledge{sheets: map[string]core.Attributes{}},
		retriever: &mockRetriever{},
		store:     &memoryCacheStore{entries: map[string]core.CacheEntry{}},
		turns:     &memoryTurns{},
		charts:    &mockCharts{},
		tarotLog:  &mockTarotLog{},
	}
	appCfg := &config.AppConfig{ChatHistoryLimit: 5, MaxQuestionChars: 2000, TimezoneOffsetHours: 7}

	f.deps = NewDeps(appCfg)
	f.deps.Now = func() time.Time { return fixedNow }
	f.deps.Gen = f.gen
	f.deps.Knowledge = f.knowledge
	f.deps.Retriever = f.retriever
	f.deps.Cache = cache.New(f.store)
	f.deps.Memory = memory.NewMemory(appCfg, f.turns, nil)
	f.deps.Charts = f.charts
	f.deps.TarotLog = f.tarotLog
	return f
}

func boolPtr(b bool) *bool { return &b }
