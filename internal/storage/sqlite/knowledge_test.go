package sqlite

import (
	"context"
	"testing"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeRepo_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewKnowledgeRepo(newTestDB(t))

	entry := core.KnowledgeEntry{
		Category:  "cung-hoang-dao",
		EntityKey: "Bạch Dương",
		Keywords:  []string{"lửa", "dẫn đầu"},
		Attributes: core.Attributes{
			"tinh-cach": "Nhiệt huyết",
			"cung-hop":  []string{"Sư Tử", "Nhân Mã"},
		},
	}
	require.NoError(t, repo.SaveEntry(ctx, entry))

	got, err := repo.GetEntry(ctx, "cung-hoang-dao", "Bạch Dương")
	require.NoError(t, err)
	assert.Equal(t, "Nhiệt huyết", got.String("tinh-cach"))
	assert.Equal(t, []string{"Sư Tử", "Nhân Mã"}, got.List("cung-hop"))
	assert.Equal(t, "Sư Tử, Nhân Mã", got.String("cung-hop"))
}

func TestKnowledgeRepo_MissingIsEmpty(t *testing.T) {
	repo := NewKnowledgeRepo(newTestDB(t))

	got, err := repo.GetEntry(context.Background(), "tarot_card", "The Fool")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKnowledgeRepo_Overwrite(t *testing.T) {
	ctx := context.Background()
	repo := NewKnowledgeRepo(newTestDB(t))

	require.NoError(t, repo.SaveEntry(ctx, core.KnowledgeEntry{
		Category: "numerology_number", EntityKey: "Số 5",
		Attributes: core.Attributes{"tong-quan": "cũ"},
	}))
	require.NoError(t, repo.SaveEntry(ctx, core.KnowledgeEntry{
		Category: "numerology_number", EntityKey: "Số 5",
		Attributes: core.Attributes{"tong-quan": "mới"},
	}))

	got, err := repo.GetEntry(ctx, "numerology_number", "Số 5")
	require.NoError(t, err)
	assert.Equal(t, "mới", got.String("tong-quan"))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
