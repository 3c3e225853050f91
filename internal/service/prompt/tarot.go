package prompt

import (
	"fmt"
	"strings"

	"github.com/sandevgo/sorcerer/internal/core"
)

const (
	TarotQuestion = "question"
	TarotOverview = "overview"
)

// CardLine is one drawn card with its resolved meaning.
type CardLine struct {
	Position    string
	Name        string
	Orientation string
	Meaning     string
}

func (c CardLine) String() string {
	if c.Position == "" {
		return fmt.Sprintf("- %s (%s): %s", c.Name, c.Orientation, c.Meaning)
	}
	return fmt.Sprintf("- [%s] %s (%s): %s", c.Position, c.Name, c.Orientation, c.Meaning)
}

// TarotContext lists the reading time, topic, question and cards.
func TarotContext(clock, topic, question string, cards []CardLine) string {
	lines := []string{
		"THỜI GIAN HIỆN TẠI (GMT+7): " + clock,
		"Chủ đề: " + strings.ToUpper(topic),
		"Câu hỏi: " + question,
	}
	for _, c := range cards {
		lines = append(lines, c.String())
	}
	return strings.Join(lines, "\n")
}

type Tarot struct {
	Feature  string
	Gender   core.Gender
	Name     string
	Topic    string
	Question string
	Cards    string
}

func (in Tarot) Build() Prompt {
	v := Vocative(in.Gender)
	name := in.Name
	if name == "" {
		name = v
	}

	persona := "Bạn là Tarot Reader trực giác."
	if in.Feature == TarotOverview {
		persona = "Bạn là một Master Tarot Reader."
	}
	system := new(Builder).
		Line(persona).
		Line(fmt.Sprintf("Hãy xưng hô với người dùng là \"%s\" (hoặc tên \"%s\" nếu phù hợp).", v, name)).
		Line("Giọng văn cần thấu cảm, nhẹ nhàng nhưng khách quan.")

	user := new(Builder)
	if in.Feature == TarotOverview {
		user.
			Section("NHIỆM VỤ", "Phân tích trải bài 3 lá (Quá khứ - Hiện tại - Tương lai)").
			Section("DỮ LIỆU LÁ BÀI", in.Cards).
			Section("YÊU CẦU ĐẦU RA (Markdown)", strings.Join([]string{
				"1. **Kết nối logic**: Chỉ ra dòng chảy năng lượng từ quá khứ đến hiện tại.",
				"2. **Lời khuyên**: Cụ thể cho " + v + ".",
				"3. **Giọng văn**: Sâu sắc, chữa lành.",
			}, "\n")).
			Line("").
			Line("Bắt đầu luận giải ngay.")
	} else {
		user.
			Section("BỐI CẢNH", fmt.Sprintf("Chủ đề: %s\nCâu hỏi: \"%s\"", strings.ToUpper(in.Topic), in.Question)).
			Section("LÁ BÀI", in.Cards).
			Section("YÊU CẦU", fmt.Sprintf("Trả lời ngắn gọn cho %s. Nếu lá bài xấu, hãy cảnh báo khéo léo.", v))
	}

	return Prompt{System: system.String(), User: user.String()}
}
