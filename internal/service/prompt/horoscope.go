package prompt

import (
	"fmt"
	"strings"

	"github.com/sandevgo/sorcerer/internal/core"
)

const DefaultHoroscopeRequest = "Hãy luận giải tổng quan về vận mệnh, nhấn mạnh vào công danh và tài lộc."

// ChartContext renders the owner line and the primary stars of all twelve palaces.
func ChartContext(chart *core.ChartResult) string {
	lines := []string{fmt.Sprintf("Đương số: %s, Mệnh: %s, Cục: %s", chart.Name, chart.BanMenh, chart.Cuc)}
	for i := 1; i <= 12; i++ {
		p, ok := chart.Palace(i)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("Cung %s tại %s: %s", p.Role, p.Name, strings.Join(p.PrimaryStars(), ", ")))
	}
	return strings.Join(lines, "\n")
}

type Horoscope struct {
	Gender  core.Gender
	Name    string
	Chart   string
	Request string
}

func (in Horoscope) Build() Prompt {
	v := Vocative(in.Gender)
	name := in.Name
	if name == "" {
		name = v
	}
	request := in.Request
	if request == "" {
		request = DefaultHoroscopeRequest
	}

	system := new(Builder).
		Line("Bạn là một Chuyên gia Tử Vi Đẩu Số hàng đầu (theo trường phái Nam Tông/Thiên Lương).").
		Line(fmt.Sprintf("Khách hàng của bạn là: \"%s\" (Tên: %s).", v, name)).
		Line("Mang phong thái thầy tử vi uyên bác, ngôn từ cổ điển pha lẫn hiện đại, sâu sắc.").
		Line("Luôn đưa ra lời khuyên \"Đức năng thắng số\" mang tính xây dựng.")

	user := new(Builder).
		Section("NHIỆM VỤ", "Dựa trên **Lá số đã được an sao** dưới đây, hãy vận dụng kiến thức sâu rộng của bạn để luận giải chi tiết.").
		Section("DỮ LIỆU LÁ SỐ (FACTS)", in.Chart).
		Section("YÊU CẦU CỦA KHÁCH HÀNG", "\""+request+"\"").
		Section("HƯỚNG DẪN LUẬN GIẢI (QUAN TRỌNG)", strings.Join([]string{
			"1. **Chính xác dựa trên dữ liệu**: Chỉ luận giải dựa trên các sao có trong danh sách cung cấp trên. Không bịa đặt thêm sao.",
			"2. **Phân tích chiều sâu**: Kết hợp ý nghĩa của Chính tinh và các Phụ tinh đi kèm; xét tương quan giữa Mệnh và Cục, Can Chi năm sinh.",
		}, "\n")).
		Section("ĐỊNH DẠNG OUTPUT (Markdown)", strings.Join([]string{
			"### 🏯 Cốt Cách & Mệnh Bàn",
			"### 🐉 Quan Lộc & Sự Nghiệp",
			"### 💰 Tài Bạch & Tiền Bạc",
			"### 🔮 Lời Khuyên Cải Mệnh Cho " + v,
		}, "\n"))

	return Prompt{System: system.String(), User: user.String()}
}
