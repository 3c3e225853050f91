package ingest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	saved []core.KnowledgeEntry
}

func (m *mockRepo) GetEntry(context.Context, string, string) (core.Attributes, error) {
	return core.Attributes{}, nil
}

func (m *mockRepo) SaveEntry(_ context.Context, e core.KnowledgeEntry) error {
	m.saved = append(m.saved, e)
	return nil
}

type mockEmbedder struct {
	mu                sync.Mutex
	encodePassageFunc func(text string) ([][]float32, error)
	passages          []string
}

func (m *mockEmbedder) EncodeQuery(context.Context, string) ([]float32, error) {
	return nil, errors.New("not used")
}

func (m *mockEmbedder) EncodePassage(_ context.Context, text string) ([][]float32, error) {
	m.mu.Lock()
	m.passages = append(m.passages, text)
	m.mu.Unlock()
	if m.encodePassageFunc != nil {
		return m.encodePassageFunc(text)
	}
	return [][]float32{{1, 0}}, nil
}

type mockIndex struct {
	records []core.VectorRecord
}

func (m *mockIndex) Upsert(_ context.Context, records []core.VectorRecord) error {
	m.records = append(m.records, records...)
	return nil
}

func (m *mockIndex) Query(context.Context, []float32, int, float64) ([]core.VectorMatch, error) {
	return nil, nil
}

type countingPurger struct{ n int }

func (p *countingPurger) Purge() { p.n++ }

const sampleJSONL = `{"category":"cung-hoang-dao","entity_name":"Song Ngư","keywords":["nước","mơ mộng"],"contexts":{"tinh-cach":"<p>Giàu cảm xúc</p>","cung-hop":["Cự Giải","Thiên Yết"]}}

{"category":"numerology_number","entity_name":"Số 7","contexts":{"tong-quan":"Nhà tư tưởng"}}
`

func TestDecode_JSONL(t *testing.T) {
	entries, err := Decode(strings.NewReader(sampleJSONL), FormatJSONL)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Song Ngư", entries[0].EntityKey)
	assert.Equal(t, "Giàu cảm xúc", entries[0].Attributes.String("tinh-cach"))
	assert.Equal(t, []string{"Cự Giải", "Thiên Yết"}, entries[0].Attributes.List("cung-hop"))
	assert.Equal(t, "Nhà tư tưởng", entries[1].Attributes.String("tong-quan"))
}

func TestDecode_YAML(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "list",
			doc: `
- category: tarot_card
  entity_name: The Fool
  contexts:
    general_upright: Khởi đầu
- category: tarot_card
  entity_name: The Sun
  contexts:
    general_upright: Thành công
`,
		},
		{
			name: "document stream",
			doc: `category: tarot_card
entity_name: The Fool
contexts:
  general_upright: Khởi đầu
---
category: tarot_card
entity_name: The Sun
contexts:
  general_upright: Thành công
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Decode(strings.NewReader(tt.doc), FormatYAML)
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, "The Sun", entries[1].EntityKey)
			assert.Equal(t, "Khởi đầu", entries[0].Attributes.String("general_upright"))
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader("{not json}\n"), FormatJSONL)
	assert.ErrorContains(t, err, "line 1")

	_, err = Decode(strings.NewReader(`{"category":"tarot_card","contexts":{}}`), FormatJSONL)
	assert.ErrorContains(t, err, "entity_name")
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("data/cards.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("cards.yaml"))
	assert.Equal(t, FormatJSONL, FormatFromPath("dataset.jsonl"))
	assert.Equal(t, FormatJSONL, FormatFromPath("dataset"))
}

func TestVectorID(t *testing.T) {
	base := VectorID("tarot_card", "The Fool", 0)
	assert.Len(t, base, 32)
	assert.Equal(t, base, VectorID("tarot_card", "The Fool", 0))
	assert.Equal(t, base+"-2", VectorID("tarot_card", "The Fool", 2))
	assert.NotEqual(t, base, VectorID("tarot_card", "The Sun", 0))
}

func TestPassage(t *testing.T) {
	p := Passage(core.KnowledgeEntry{
		Category:   "numerology_number",
		EntityKey:  "Số 7",
		Keywords:   []string{"trí tuệ", "nội tâm"},
		Attributes: core.Attributes{"uu-diem": "Sâu sắc", "tong-quan": "Nhà tư\ntưởng", "trong": ""},
	})
	assert.Equal(t, "Chủ đề: numerology_number. Tên: Số 7. Từ khóa: trí tuệ, nội tâm. Nội dung chi tiết:\n"+
		"tong quan: Nhà tư tưởng\n"+
		"uu diem: Sâu sắc", p)
}

func TestIngester_Run(t *testing.T) {
	repo := &mockRepo{}
	index := &mockIndex{}
	purger := &countingPurger{}
	emb := &mockEmbedder{
		encodePassageFunc: func(text string) ([][]float32, error) {
			if strings.Contains(text, "Song Ngư") {
				return [][]float32{{1, 0}, {0, 1}}, nil
			}
			return [][]float32{{1, 1}}, nil
		},
	}

	stats, err := NewIngester(repo, emb, index, purger, 2).Run(context.Background(), strings.NewReader(sampleJSONL), FormatJSONL)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 3, stats.Vectors)
	assert.Len(t, repo.saved, 2)
	assert.Len(t, emb.passages, 2)
	assert.Equal(t, 1, purger.n)

	require.Len(t, index.records, 3)
	assert.Equal(t, VectorID("cung-hoang-dao", "Song Ngư", 0), index.records[0].ID)
	assert.Equal(t, VectorID("cung-hoang-dao", "Song Ngư", 1), index.records[1].ID)
	assert.Equal(t, "Song Ngư", index.records[0].Metadata.EntityName)
	assert.Contains(t, index.records[0].Metadata.Content, "tinh cach: Giàu cảm xúc")
}

func TestIngester_EmbedFailureWritesNothing(t *testing.T) {
	repo := &mockRepo{}
	emb := &mockEmbedder{
		encodePassageFunc: func(string) ([][]float32, error) {
			return nil, errors.New("rate limited")
		},
	}

	_, err := NewIngester(repo, emb, &mockIndex{}, nil, 0).Run(context.Background(), strings.NewReader(sampleJSONL), FormatJSONL)
	require.Error(t, err)
	assert.ErrorContains(t, err, "rate limited")
	assert.Empty(t, repo.saved)
}

func TestIngester_WithoutEmbedder(t *testing.T) {
	repo := &mockRepo{}
	stats, err := NewIngester(repo, nil, nil, nil, 0).Run(context.Background(), strings.NewReader(sampleJSONL), FormatJSONL)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Zero(t, stats.Vectors)
}
