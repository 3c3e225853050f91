package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/pkg/log"
)

// TurnRepo is the append-only conversation log.
type TurnRepo struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

func NewTurnRepo(db *sql.DB) *TurnRepo {
	return &TurnRepo{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// nextSeq returns a ULID that sorts after every ULID this repo issued before.
func (r *TurnRepo) nextSeq(t time.Time) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(t), r.entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate turn sequence: %w", err)
	}
	return id.String(), nil
}

func (r *TurnRepo) AppendTurn(ctx context.Context, turn core.Turn) error {
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = r.now().UTC()
	}
	if turn.Seq == "" {
		seq, err := r.nextSeq(turn.CreatedAt)
		if err != nil {
			return err
		}
		turn.Seq = seq
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO turns (session_id, seq, question, reply, summary, input_tokens, output_tokens, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		turn.SessionID, turn.Seq, turn.Question, turn.Reply, turn.Summary,
		turn.InputTokens, turn.OutputTokens, turn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

// RecentTurns returns up to limit turns of a session in chronological order.
func (r *TurnRepo) RecentTurns(ctx context.Context, sessionID string, limit int) ([]core.Turn, error) {
	if limit <= 0 {
		return nil, nil
	}

	// Fetch the LAST 'limit' turns by ordering DESC
	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, seq, question, reply, summary, input_tokens, output_tokens, created_at
		FROM turns
		WHERE session_id = ?
		ORDER BY seq DESC, id DESC
		LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.Turn
	for rows.Next() {
		var t core.Turn
		if err := rows.Scan(&t.SessionID, &t.Seq, &t.Question, &t.Reply, &t.Summary,
			&t.InputTokens, &t.OutputTokens, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest -> Oldest back to Oldest -> Newest
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Str("session", sessionID).Int("count", len(turns)).Msg("loaded conversation turns")
	return turns, nil
}
