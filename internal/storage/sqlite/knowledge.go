package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandevgo/sorcerer/internal/core"
)

type KnowledgeRepo struct {
	db *sql.DB
}

func NewKnowledgeRepo(db *sql.DB) *KnowledgeRepo {
	return &KnowledgeRepo{db: db}
}

// GetEntry returns the fact sheet for (category, entityKey).
// A missing row is an empty sheet, not an error.
func (r *KnowledgeRepo) GetEntry(ctx context.Context, category, entityKey string) (core.Attributes, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT contexts FROM knowledge WHERE category = ? AND entity_name = ?`,
		category, entityKey,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Attributes{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge: %w", err)
	}

	attrs := core.Attributes{}
	if raw == "" {
		return attrs, nil
	}
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return nil, fmt.Errorf("failed to decode knowledge contexts for %s/%s: %w", category, entityKey, err)
	}
	return attrs, nil
}

// SaveEntry inserts or replaces a fact sheet.
func (r *KnowledgeRepo) SaveEntry(ctx context.Context, entry core.KnowledgeEntry) error {
	contexts, err := json.Marshal(entry.Attributes)
	if err != nil {
		return fmt.Errorf("failed to encode contexts: %w", err)
	}
	keywords := entry.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	kw, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO knowledge (category, entity_name, keywords, contexts, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (category, entity_name) DO UPDATE SET
			keywords = excluded.keywords,
			contexts = excluded.contexts,
			updated_at = CURRENT_TIMESTAMP`,
		entry.Category, entry.EntityKey, string(kw), string(contexts),
	)
	if err != nil {
		return fmt.Errorf("failed to save knowledge entry: %w", err)
	}
	return nil
}

func (r *KnowledgeRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM knowledge`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count knowledge: %w", err)
	}
	return n, nil
}
