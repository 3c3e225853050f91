package prompt

import (
	"fmt"

	"github.com/sandevgo/sorcerer/internal/core"
)

// NumerologyContext renders a life path number's fact sheet.
func NumerologyContext(lifePath string, attrs core.Attributes) string {
	return bullets(
		[2]string{"Số chủ đạo", lifePath},
		[2]string{"Tổng quan", attrs.String("tong-quan")},
		[2]string{"Ưu điểm", attrs.String("uu-diem")},
		[2]string{"Nhược điểm", attrs.String("nhuoc-diem")},
		[2]string{"Sứ mệnh", attrs.String("chi-so-su-menh")},
		[2]string{"Công việc", attrs.String("so-hop-cong-viec")},
		[2]string{"Tình yêu", attrs.String("so-hop-tinh-yeu")},
	)
}

type Numerology struct {
	Gender    core.Gender
	LifePath  string
	BirthDate string
	Knowledge string
}

func (in Numerology) Build() Prompt {
	v := Vocative(in.Gender)

	system := new(Builder).
		Line("Bạn là Chuyên gia Thần số học định hướng cuộc đời.").
		Line(fmt.Sprintf("Hãy xưng hô là \"%s\".", v))

	user := new(Builder).
		Section("HỒ SƠ", bullets(
			[2]string{"Ngày sinh", in.BirthDate},
			[2]string{"Số chủ đạo", in.LifePath},
		)).
		Section("KIẾN THỨC", in.Knowledge).
		Section("NHIỆM VỤ", "Phân tích số "+in.LifePath).
		Line("").
		Line("Viết báo cáo Markdown:").
		Line(fmt.Sprintf("### 🌿 Bản ngã của %s (Số %s)", v, in.LifePath)).
		Line("### ⚔️ Thử thách đường đời").
		Line("### 💎 Sứ mệnh kiếp này").
		Line("### 🚀 Lời khuyên hành động cho " + v)

	return Prompt{System: system.String(), User: user.String()}
}
