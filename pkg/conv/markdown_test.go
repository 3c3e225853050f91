package conv

import (
	"testing"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Xin chào",
			expected: "Xin chào",
		},
		{
			name:     "bold lead-in",
			input:    "**Lưu ý:** giữ bình tĩnh",
			expected: "<strong>Lưu ý:</strong> giữ bình tĩnh",
		},
		{
			name:     "inline code",
			input:    "`Tử Vi`",
			expected: "<code>Tử Vi</code>",
		},
		{
			name:     "heading becomes bold line",
			input:    "### 🌿 Bản ngã của Bạn (Số 11)\nBạn là người trực giác.",
			expected: "<b>🌿 Bản ngã của Bạn (Số 11)</b>\nBạn là người trực giác.",
		},
		{
			name:     "bullet list",
			input:    "- Số chủ đạo: 11\n- Cung: Sư Tử",
			expected: "• Số chủ đạo: 11\n• Cung: Sư Tử",
		},
		{
			name:     "ordered spread",
			input:    "1. Quá khứ\n2. Hiện tại\n3. Tương lai",
			expected: "1. Quá khứ\n2. Hiện tại\n3. Tương lai",
		},
		{
			name:     "nested list is indented",
			input:    "- Tình yêu\n  - Độc thân: mở lòng\n- Sự nghiệp",
			expected: "• Tình yêu\n  • Độc thân: mở lòng\n• Sự nghiệp",
		},
		{
			name:     "rule becomes divider",
			input:    "Phần một\n\n---\n\nPhần hai",
			expected: "Phần một\n\n" + divider + "\n\nPhần hai",
		},
		{
			name: "full reading",
			input: "### Tổng quan\n\nBạn **mạnh mẽ**.\n\n" +
				"- Ưu điểm: kiên trì\n- Nhược điểm: bảo thủ\n\n" +
				"### Lời khuyên\n\nHãy lắng nghe.",
			expected: "<b>Tổng quan</b>\nBạn <strong>mạnh mẽ</strong>.\n\n" +
				"• Ưu điểm: kiên trì\n• Nhược điểm: bảo thủ\n\n" +
				"<b>Lời khuyên</b>\nHãy lắng nghe.",
		},
		{
			name:     "link keeps href only",
			input:    "[Xem thêm](https://example.com)",
			expected: "<a href=\"https://example.com\">Xem thêm</a>",
		},
		{
			name:     "script tags sanitized",
			input:    "<script>alert('xss')</script>",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToTelegramHTML([]byte(tt.input))
			if got != tt.expected {
				t.Errorf("MarkdownToTelegramHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
