package ingest

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/pkg/log"
	"golang.org/x/sync/errgroup"
)

const DefaultParallelism = 4

// Purger drops cached knowledge after a reload.
type Purger interface {
	Purge()
}

type Ingester struct {
	repo        core.KnowledgeRepository
	embedder    core.Embedder
	index       core.VectorIndex
	purger      Purger
	parallelism int
}

type Stats struct {
	Entries  int
	Vectors  int
	Duration time.Duration
}

// NewIngester writes knowledge rows, and vectors when embedder is non-nil.
func NewIngester(repo core.KnowledgeRepository, embedder core.Embedder, index core.VectorIndex, purger Purger, parallelism int) *Ingester {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}
	return &Ingester{
		repo:        repo,
		embedder:    embedder,
		index:       index,
		purger:      purger,
		parallelism: parallelism,
	}
}

// VectorID is stable per (category, entity). Chunks past the first get a suffix.
func VectorID(category, entityName string, chunk int) string {
	sum := md5.Sum([]byte(category + "#" + entityName))
	id := hex.EncodeToString(sum[:])
	if chunk > 0 {
		id = fmt.Sprintf("%s-%d", id, chunk)
	}
	return id
}

// Run decodes a dataset and ingests it.
func (in *Ingester) Run(ctx context.Context, r io.Reader, format Format) (Stats, error) {
	entries, err := Decode(r, format)
	if err != nil {
		return Stats{}, err
	}
	return in.Ingest(ctx, entries)
}

// Ingest embeds entries in parallel, then writes rows and vectors in order.
// Any failure aborts the run; rows already written stay.
func (in *Ingester) Ingest(ctx context.Context, entries []core.KnowledgeEntry) (Stats, error) {
	logger := log.FromCtx(ctx)
	start := time.Now()

	records, err := in.embed(ctx, entries)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{}
	for i, e := range entries {
		if err := in.repo.SaveEntry(ctx, e); err != nil {
			return stats, fmt.Errorf("failed to save %s/%s: %w", e.Category, e.EntityKey, err)
		}
		stats.Entries++

		if len(records[i]) == 0 {
			continue
		}
		if err := in.index.Upsert(ctx, records[i]); err != nil {
			return stats, fmt.Errorf("failed to index %s/%s: %w", e.Category, e.EntityKey, err)
		}
		stats.Vectors += len(records[i])
	}

	if in.purger != nil {
		in.purger.Purge()
	}

	stats.Duration = time.Since(start)
	logger.Info().
		Int("entries", stats.Entries).
		Int("vectors", stats.Vectors).
		Dur("elapsed", stats.Duration).
		Msg("dataset ingested")
	return stats, nil
}

func (in *Ingester) embed(ctx context.Context, entries []core.KnowledgeEntry) ([][]core.VectorRecord, error) {
	records := make([][]core.VectorRecord, len(entries))
	if in.embedder == nil || in.index == nil {
		log.FromCtx(ctx).Warn().Msg("embeddings disabled, ingesting knowledge rows only")
		return records, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(in.parallelism)

	for i, e := range entries {
		g.Go(func() error {
			passage := Passage(e)
			vectors, err := in.embedder.EncodePassage(gCtx, passage)
			if err != nil {
				return fmt.Errorf("failed to embed %s/%s: %w", e.Category, e.EntityKey, err)
			}

			chunkRecords := make([]core.VectorRecord, 0, len(vectors))
			for n, vec := range vectors {
				chunkRecords = append(chunkRecords, core.VectorRecord{
					ID:     VectorID(e.Category, e.EntityKey, n),
					Vector: vec,
					Metadata: core.VectorMetadata{
						Category:   e.Category,
						EntityName: e.EntityKey,
						Content:    flattenAttributes(e.Attributes),
					},
				})
			}
			records[i] = chunkRecords
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
