package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAICompatible_Generate(t *testing.T) {
	var gotReq struct {
		Model       string  `json:"model"`
		MaxTokens   int     `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var gotTitle string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotTitle = r.Header.Get("X-Title")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "x",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Chào Anh"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 3, "total_tokens": 15}
		}`))
	}))
	defer srv.Close()

	p := NewOpenAICompatible(OpenAICompatibleConfig{
		Name:         "test",
		BaseURL:      srv.URL + "/v1",
		APIKey:       "k",
		Model:        "m",
		ExtraHeaders: map[string]string{"X-Title": core.AppName},
	})

	gen, err := p.Generate(context.Background(), core.GenerateParams{
		System:      "persona",
		User:        "xin chào",
		MaxTokens:   100,
		Temperature: 0.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "Chào Anh", gen.Text)
	assert.Equal(t, 12, gen.InputTokens)
	assert.Equal(t, 3, gen.OutputTokens)

	assert.Equal(t, "m", gotReq.Model)
	assert.Equal(t, 100, gotReq.MaxTokens)
	assert.InDelta(t, 0.5, gotReq.Temperature, 1e-6)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "xin chào", gotReq.Messages[1].Content)
	assert.Equal(t, core.AppName, gotTitle)
}

func TestOpenAICompatible_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key", "type": "auth"}}`))
	}))
	defer srv.Close()

	p := NewCustomOpenAI(srv.URL+"/v1", "k", "m")
	_, err := p.Generate(context.Background(), core.GenerateParams{User: "q"})
	require.Error(t, err)
	assert.False(t, isRetryable(err))
}

func TestOpenAICompatible_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	_, err := NewCustomOpenAI(srv.URL+"/v1", "", "m").Generate(context.Background(), core.GenerateParams{User: "q"})
	assert.ErrorContains(t, err, "no choices")
}
