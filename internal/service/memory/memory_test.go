package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sandevgo/sorcerer/internal/config"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTurnRepo struct {
	turns     []core.Turn
	appendErr error
	recentErr error
	lastLimit int
}

func (m *mockTurnRepo) AppendTurn(_ context.Context, t core.Turn) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.turns = append(m.turns, t)
	return nil
}

func (m *mockTurnRepo) RecentTurns(_ context.Context, sessionID string, limit int) ([]core.Turn, error) {
	m.lastLimit = limit
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	var own []core.Turn
	for _, t := range m.turns {
		if t.SessionID == sessionID {
			own = append(own, t)
		}
	}
	if len(own) > limit {
		own = own[len(own)-limit:]
	}
	return own, nil
}

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, p core.GenerateParams) core.Generation
	calls        int
}

func (m *mockGenerator) Generate(ctx context.Context, p core.GenerateParams) core.Generation {
	m.calls++
	return m.GenerateFunc(ctx, p)
}

func newTestMemory(repo core.TurnRepository, gen core.Generator, limit int, summaries bool) *Memory {
	cfg := &config.AppConfig{ChatHistoryLimit: limit, ChatSummaries: summaries}
	var s *Summarizer
	if gen != nil {
		s = NewSummarizer(gen)
	}
	return NewMemory(cfg, repo, s)
}

func TestMemory_LoadRecentChronological(t *testing.T) {
	ctx := context.Background()
	repo := &mockTurnRepo{}
	m := newTestMemory(repo, nil, 2, false)

	for i := 1; i <= 3; i++ {
		m.Append(ctx, core.Turn{SessionID: "s1", Question: fmt.Sprintf("T%d", i)})
	}

	turns, err := m.LoadRecent(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "T2", turns[0].Question)
	assert.Equal(t, "T3", turns[1].Question)
	assert.Equal(t, 2, repo.lastLimit)
}

func TestMemory_DefaultLimit(t *testing.T) {
	repo := &mockTurnRepo{}
	m := newTestMemory(repo, nil, 0, false)
	_, err := m.LoadRecent(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, repo.lastLimit)
}

func TestMemory_AppendSummarizes(t *testing.T) {
	ctx := context.Background()
	repo := &mockTurnRepo{}
	gen := &mockGenerator{GenerateFunc: func(_ context.Context, p core.GenerateParams) core.Generation {
		assert.Contains(t, p.User, "User: Tôi hợp nghề gì?")
		assert.Contains(t, p.User, "AI: Nghề sáng tạo")
		return core.Generation{Text: "  Hỏi nghề hợp, gợi ý sáng tạo  "}
	}}
	m := newTestMemory(repo, gen, 5, true)

	m.Append(ctx, core.Turn{SessionID: "s", Question: "Tôi hợp nghề gì?", Reply: "Nghề sáng tạo"})

	require.Len(t, repo.turns, 1)
	assert.Equal(t, "Hỏi nghề hợp, gợi ý sáng tạo", repo.turns[0].Summary)
	assert.False(t, repo.turns[0].CreatedAt.IsZero())
}

func TestMemory_AppendKeepsPresetSummary(t *testing.T) {
	repo := &mockTurnRepo{}
	gen := &mockGenerator{GenerateFunc: func(context.Context, core.GenerateParams) core.Generation {
		return core.Generation{Text: "unused"}
	}}
	m := newTestMemory(repo, gen, 5, true)

	m.Append(context.Background(), core.Turn{SessionID: "s", Question: "hi", Summary: "Chào hỏi khởi đầu"})

	assert.Zero(t, gen.calls)
	assert.Equal(t, "Chào hỏi khởi đầu", repo.turns[0].Summary)
}

func TestMemory_SummariesDisabled(t *testing.T) {
	repo := &mockTurnRepo{}
	gen := &mockGenerator{GenerateFunc: func(context.Context, core.GenerateParams) core.Generation {
		return core.Generation{Text: "unused"}
	}}
	m := newTestMemory(repo, gen, 5, false)

	m.Append(context.Background(), core.Turn{SessionID: "s", Question: "q", Reply: "r"})

	assert.Zero(t, gen.calls)
	assert.Empty(t, repo.turns[0].Summary)
}

func TestMemory_AppendFailureIsSwallowed(t *testing.T) {
	repo := &mockTurnRepo{appendErr: errors.New("locked")}
	m := newTestMemory(repo, nil, 5, false)

	assert.NotPanics(t, func() {
		m.Append(context.Background(), core.Turn{SessionID: "s"})
	})
}

func TestMemory_HistoryFailsSoft(t *testing.T) {
	repo := &mockTurnRepo{recentErr: errors.New("gone")}
	m := newTestMemory(repo, nil, 5, false)
	assert.Empty(t, m.History(context.Background(), "s"))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		turns []core.Turn
		want  string
	}{
		{name: "empty", turns: nil, want: ""},
		{
			name:  "summary preferred",
			turns: []core.Turn{{Question: "q", Reply: "r", Summary: "tóm tắt"}},
			want:  "CONTEXT: tóm tắt",
		},
		{
			name: "raw pair without summary",
			turns: []core.Turn{
				{Question: "q1", Reply: "r1"},
				{Question: "q2", Reply: "r2", Summary: "s2"},
			},
			want: "CONTEXT: Q: q1 - A: r1\nCONTEXT: s2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.turns))
		})
	}
}
