package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/sorcerer/internal/config"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/pkg/log"
)

const DefaultLimit = 5

// Memory is the per-session conversation log used to build chat history.
type Memory struct {
	repo       core.TurnRepository
	summarizer *Summarizer
	limit      int
	now        func() time.Time
}

// NewMemory wires the turn log. summarizer may be nil to store turns unsummarized.
func NewMemory(cfg *config.AppConfig, repo core.TurnRepository, summarizer *Summarizer) *Memory {
	limit := cfg.ChatHistoryLimit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if !cfg.ChatSummaries {
		summarizer = nil
	}
	return &Memory{
		repo:       repo,
		summarizer: summarizer,
		limit:      limit,
		now:        time.Now,
	}
}

// LoadRecent returns at most limit turns of a session in chronological order.
func (m *Memory) LoadRecent(ctx context.Context, sessionID string) ([]core.Turn, error) {
	turns, err := m.repo.RecentTurns(ctx, sessionID, m.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load turns for %s: %w", sessionID, err)
	}
	return turns, nil
}

// History renders recent turns for a prompt. A failed read yields an empty history.
func (m *Memory) History(ctx context.Context, sessionID string) string {
	turns, err := m.LoadRecent(ctx, sessionID)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("proceeding without chat history")
		return ""
	}
	return Render(turns)
}

// Append summarizes the turn when it has no summary yet and writes it.
// Write failures are logged; the reply has already been produced.
func (m *Memory) Append(ctx context.Context, turn core.Turn) {
	logger := log.FromCtx(ctx)

	if turn.Summary == "" && m.summarizer != nil {
		turn.Summary = m.summarizer.Summarize(ctx, turn.Question, turn.Reply)
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = m.now().UTC()
	}

	if err := m.repo.AppendTurn(ctx, turn); err != nil {
		logger.Error().Err(err).Str("session_id", turn.SessionID).Msg("failed to save turn")
	}
}

// Render produces one line per turn, preferring the summary over the raw exchange.
func Render(turns []core.Turn) string {
	if len(turns) == 0 {
		return ""
	}
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		if t.Summary != "" {
			lines = append(lines, "CONTEXT: "+t.Summary)
			continue
		}
		lines = append(lines, fmt.Sprintf("CONTEXT: Q: %s - A: %s", t.Question, t.Reply))
	}
	return strings.Join(lines, "\n")
}
