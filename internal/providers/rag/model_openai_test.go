package rag

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/sorcerer/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmbeddingServer(t *testing.T, inputs *[]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*inputs = append(*inputs, req.Input...)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.1,0.2,0.3]}],"model":"m"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIEncoder_Prefixes(t *testing.T) {
	var inputs []string
	srv := newEmbeddingServer(t, &inputs)

	model, err := NewEmbeddingModel(&config.RAGConfig{BaseURL: srv.URL + "/v1", ModelName: "multilingual-e5-base"})
	require.NoError(t, err)

	vec, err := model.EncodeQuery(context.Background(), "Cung Song Ngư")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)

	_, err = model.EncodePassage(context.Background(), "Song Ngư giàu cảm xúc")
	require.NoError(t, err)

	assert.Equal(t, []string{"query: Cung Song Ngư", "passage: Song Ngư giàu cảm xúc"}, inputs)
}

func TestOpenAIEncoder_NoPrefixForOpenAIModels(t *testing.T) {
	var inputs []string
	srv := newEmbeddingServer(t, &inputs)

	model, err := NewEmbeddingModel(&config.RAGConfig{BaseURL: srv.URL + "/v1", APIKey: "k", ModelName: "text-embedding-3-small"})
	require.NoError(t, err)

	_, err = model.EncodeQuery(context.Background(), "Số 7")
	require.NoError(t, err)
	assert.Equal(t, []string{"Số 7"}, inputs)
}

func TestNewEmbeddingModel_Disabled(t *testing.T) {
	_, err := NewEmbeddingModel(&config.RAGConfig{ModelName: "text-embedding-3-small"})
	assert.Error(t, err)
}
