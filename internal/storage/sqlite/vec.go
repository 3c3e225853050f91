package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/sorcerer/internal/core"
	sqlitedrv "github.com/sandevgo/sorcerer/pkg/sqlite"
)

// VectorIndex stores passage embeddings and ranks them with vec_cosine.
type VectorIndex struct {
	db *sql.DB
}

func NewVectorIndex(db *sql.DB) *VectorIndex {
	return &VectorIndex{db: db}
}

func (v *VectorIndex) Upsert(ctx context.Context, records []core.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := v.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO knowledge_vectors (id, category, entity_name, content, embedding, dims, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			category = excluded.category,
			entity_name = excluded.entity_name,
			content = excluded.content,
			embedding = excluded.embedding,
			dims = excluded.dims,
			updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to prepare vector upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		blob, err := sqlitedrv.EncodeVector(rec.Vector)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx,
			rec.ID, rec.Metadata.Category, rec.Metadata.EntityName, rec.Metadata.Content, blob, len(rec.Vector),
		); err != nil {
			return fmt.Errorf("failed to upsert vector %s: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

// Query takes the topK nearest passages, then drops those scoring below minScore.
func (v *VectorIndex) Query(ctx context.Context, vector []float32, topK int, minScore float64) ([]core.VectorMatch, error) {
	if len(vector) == 0 || topK <= 0 {
		return nil, nil
	}

	blob, err := sqlitedrv.EncodeVector(vector)
	if err != nil {
		return nil, err
	}

	rows, err := v.db.QueryContext(ctx, `
		SELECT id, category, entity_name, content, vec_cosine(embedding, ?) AS score
		FROM knowledge_vectors
		WHERE dims = ?
		ORDER BY score DESC
		LIMIT ?`,
		blob, len(vector), topK,
	)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	defer rows.Close()

	var matches []core.VectorMatch
	for rows.Next() {
		var m core.VectorMatch
		if err := rows.Scan(&m.ID, &m.Metadata.Category, &m.Metadata.EntityName, &m.Metadata.Content, &m.Score); err != nil {
			return nil, fmt.Errorf("failed to scan vector match: %w", err)
		}
		if m.Score < minScore {
			continue
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}
