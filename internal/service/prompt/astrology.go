package prompt

import (
	"fmt"

	"github.com/sandevgo/sorcerer/internal/core"
)

// ZodiacContext renders a sign's fact sheet.
func ZodiacContext(sign string, attrs core.Attributes) string {
	if len(attrs) == 0 {
		return fmt.Sprintf("Không có dữ liệu cho %s.", sign)
	}
	return bullets(
		[2]string{"Cung", sign},
		[2]string{"Tính cách", attrs.String("tinh-cach")},
		[2]string{"Tình yêu", attrs.String("tinh-yeu")},
		[2]string{"Điểm mạnh", attrs.String("diem-manh")},
		[2]string{"Điểm yếu", attrs.String("diem-yeu")},
		[2]string{"Cung hợp", attrs.String("cung-hop")},
	)
}

type AstrologyOverview struct {
	Gender    core.Gender
	Sign      string
	BirthDate string
	Knowledge string
}

func (in AstrologyOverview) Build() Prompt {
	v := Vocative(in.Gender)

	system := new(Builder).
		Line("Bạn là Chuyên gia Chiêm tinh học.").
		Line(fmt.Sprintf("Hãy xưng hô là \"%s\" trong bài viết.", v))

	user := new(Builder).
		Section("HỒ SƠ KHÁCH HÀNG", bullets(
			[2]string{"Cung", in.Sign},
			[2]string{"Sinh ngày", in.BirthDate},
		)).
		Section("KIẾN THỨC (RAG)", in.Knowledge).
		Section("YÊU CẦU", "Phân tích "+in.Sign).
		Line("").
		Line("Viết báo cáo Markdown:").
		Line("### 🌟 Tổng quan năng lượng của " + v).
		Line("### 💼 Sự nghiệp & Tài chính").
		Line("### ❤️ Tình yêu & Mối quan hệ").
		Line(fmt.Sprintf("(Phân tích xu hướng tình cảm của %s dựa trên giới tính và cung)", v)).
		Line("### 💡 Lời khuyên cho " + v)

	return Prompt{System: system.String(), User: user.String()}
}

type AstrologyLove struct {
	Gender       core.Gender
	UserSign     string
	PartnerSign  string
	BirthDate    string
	UserSheet    string
	PartnerSheet string
	Verdict      string
}

func (in AstrologyLove) Build() Prompt {
	v := Vocative(in.Gender)

	system := new(Builder).
		Line("Bạn là Chuyên gia Tình cảm (Relationship Coach).").
		Line("Người xem chính là: " + v + ".").
		Line("Luôn gọi người còn lại là \"Người ấy\".")

	data := fmt.Sprintf("USER: %s\n%s\nPARTNER: %s\n%s\nKẾT LUẬN: %s",
		in.UserSign, in.UserSheet, in.PartnerSign, in.PartnerSheet, in.Verdict)

	user := new(Builder).
		Section("CẶP ĐÔI", fmt.Sprintf("%s & %s (%s)", in.UserSign, in.PartnerSign, in.BirthDate)).
		Section("DỮ LIỆU", data).
		Section("YÊU CẦU", "Độ hợp").
		Line("").
		Line("Viết phân tích Markdown:").
		Line("### 🔮 Đánh giá độ hợp").
		Line("### ❤️ Điểm thu hút nhau").
		Line("### ⚡ Điểm cần lưu ý").
		Line("### 🛡️ Lời khuyên giữ lửa cho " + v)

	return Prompt{System: system.String(), User: user.String()}
}
