package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/sorcerer/internal/core"
)

type TarotLogRepo struct {
	db *sql.DB
}

func NewTarotLogRepo(db *sql.DB) *TarotLogRepo {
	return &TarotLogRepo{db: db}
}

func (r *TarotLogRepo) LogReading(ctx context.Context, reading core.TarotReading) error {
	if reading.UserID == "" {
		reading.UserID = "anon"
	}
	if reading.CreatedAt.IsZero() {
		reading.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tarot_readings (user_id, question, answer, input_tokens, output_tokens, domain, created_at)
		VALUES (?, ?, ?, ?, ?, 'tarot', ?)`,
		reading.UserID, reading.Question, reading.Answer,
		reading.InputTokens, reading.OutputTokens, reading.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log tarot reading: %w", err)
	}
	return nil
}

// CountByUser reports how many readings a user has logged.
func (r *TarotLogRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tarot_readings WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count tarot readings: %w", err)
	}
	return n, nil
}
