package sqlite

import (
	"context"
	"testing"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedVectors(t *testing.T, idx *VectorIndex) {
	t.Helper()
	records := []core.VectorRecord{
		{ID: "a", Vector: []float32{1, 0, 0}, Metadata: core.VectorMetadata{Category: "c", EntityName: "A", Content: "alpha"}},
		{ID: "b", Vector: []float32{0.9, 0.1, 0}, Metadata: core.VectorMetadata{Category: "c", EntityName: "B", Content: "beta"}},
		{ID: "c", Vector: []float32{0, 1, 0}, Metadata: core.VectorMetadata{Category: "c", EntityName: "C", Content: "gamma"}},
		{ID: "d", Vector: []float32{0, 0, 1}, Metadata: core.VectorMetadata{Category: "c", EntityName: "D", Content: "delta"}},
	}
	require.NoError(t, idx.Upsert(context.Background(), records))
}

func TestVectorIndex_QueryRanksBySimilarity(t *testing.T) {
	idx := NewVectorIndex(newTestDB(t))
	seedVectors(t, idx)

	matches, err := idx.Query(context.Background(), []float32{1, 0, 0}, 3, 0)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "a", matches[0].ID)
	assert.Equal(t, "b", matches[1].ID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
	assert.Equal(t, "alpha", matches[0].Metadata.Content)
}

func TestVectorIndex_MinScoreFiltersAfterTopK(t *testing.T) {
	idx := NewVectorIndex(newTestDB(t))
	seedVectors(t, idx)

	matches, err := idx.Query(context.Background(), []float32{1, 0, 0}, 3, 0.35)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Score, 0.35)
	}
}

func TestVectorIndex_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex(newTestDB(t))
	seedVectors(t, idx)

	require.NoError(t, idx.Upsert(ctx, []core.VectorRecord{
		{ID: "d", Vector: []float32{1, 0, 0}, Metadata: core.VectorMetadata{EntityName: "D", Content: "moved"}},
	}))

	matches, err := idx.Query(ctx, []float32{0, 0, 1}, 4, 0.5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestVectorIndex_DimensionMismatchIgnored(t *testing.T) {
	idx := NewVectorIndex(newTestDB(t))
	seedVectors(t, idx)

	matches, err := idx.Query(context.Background(), []float32{1, 0}, 3, 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
