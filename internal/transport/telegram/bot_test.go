package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDispatcher struct {
	dispatchFunc func(req *core.Request) (core.Response, error)
	requests     []*core.Request
}

func (m *mockDispatcher) Dispatch(_ context.Context, req *core.Request) (core.Response, error) {
	m.requests = append(m.requests, req)
	return m.dispatchFunc(req)
}

func TestAnswer(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		dispatch func(req *core.Request) (core.Response, error)
		want     string
		wantQ    string
	}{
		{
			name: "returns chat reply",
			text: "Hôm nay thế nào?",
			dispatch: func(req *core.Request) (core.Response, error) {
				return core.Response{Answer: core.ChatAnswer{SessionID: req.Data.SessionID, Reply: "Tốt lành"}}, nil
			},
			want:  "Tốt lành",
			wantQ: "Hôm nay thế nào?",
		},
		{
			name: "start command becomes a greeting",
			text: "/start",
			dispatch: func(req *core.Request) (core.Response, error) {
				return core.Response{Answer: core.ChatAnswer{Reply: "Chào bạn!"}}, nil
			},
			want:  "Chào bạn!",
			wantQ: "start",
		},
		{
			name: "input errors are shown to the user",
			text: "",
			dispatch: func(req *core.Request) (core.Response, error) {
				return core.Response{}, core.NewInputError("Missing sessionId or question")
			},
			want: "Missing sessionId or question",
		},
		{
			name: "internal errors are masked",
			text: "?",
			dispatch: func(req *core.Request) (core.Response, error) {
				return core.Response{}, errors.New("db locked")
			},
			want:  "Xin lỗi, đã có lỗi xảy ra. Vui lòng thử lại sau.",
			wantQ: "?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &mockDispatcher{dispatchFunc: tt.dispatch}
			got := answer(context.Background(), d, 42, tt.text)
			assert.Equal(t, tt.want, got)

			require.Len(t, d.requests, 1)
			assert.Equal(t, "chat", d.requests[0].Domain)
			assert.Equal(t, "telegram-42", d.requests[0].Data.SessionID)
			if tt.wantQ != "" {
				assert.Equal(t, tt.wantQ, d.requests[0].Data.Question)
			}
		})
	}
}

func TestSplitHTML(t *testing.T) {
	t.Run("short text is one chunk", func(t *testing.T) {
		assert.Equal(t, []string{"xin chào"}, splitHTML("xin chào", 100))
	})

	t.Run("prefers newlines", func(t *testing.T) {
		text := strings.Repeat("a", 60) + "\n" + strings.Repeat("b", 60)
		chunks := splitHTML(text, 100)
		require.Len(t, chunks, 2)
		assert.Equal(t, strings.Repeat("a", 60), chunks[0])
		assert.Equal(t, strings.Repeat("b", 60), chunks[1])
	})

	t.Run("keeps runes whole", func(t *testing.T) {
		text := strings.Repeat("ệ", 50) // 3 bytes each
		chunks := splitHTML(text, 10)
		assert.Equal(t, text, strings.Join(chunks, ""))
		for _, c := range chunks {
			assert.True(t, utf8.ValidString(c))
			assert.LessOrEqual(t, len(c), 10)
		}
	})
}
