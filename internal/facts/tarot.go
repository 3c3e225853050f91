package facts

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

type Topic string

const (
	TopicGeneral      Topic = "general"
	TopicLove         Topic = "love"
	TopicWork         Topic = "work"
	TopicHealth       Topic = "health"
	TopicRelationship Topic = "relationship"
)

type topicKeywords struct {
	topic    Topic
	keywords []string
}

// Checked in order; first topic with a matching keyword wins.
var topicTable = []topicKeywords{
	{TopicLove, []string{"yêu", "tình", "crush", "cưới", "hẹn hò", "người yêu"}},
	{TopicWork, []string{"việc", "làm", "nghề", "lương", "công ty", "sự nghiệp"}},
	{TopicHealth, []string{"khoẻ", "khỏe", "bệnh", "thuốc", "sức khoẻ", "sức khỏe"}},
	{TopicRelationship, []string{"bạn", "gia đình", "quan hệ", "đồng nghiệp"}},
}

// ClassifyTopic picks the meaning variant used for drawn cards.
func ClassifyTopic(question string) Topic {
	q := norm.NFC.String(strings.ToLower(question))
	if strings.TrimSpace(q) == "" {
		return TopicGeneral
	}
	for _, tk := range topicTable {
		for _, kw := range tk.keywords {
			if strings.Contains(q, kw) {
				return tk.topic
			}
		}
	}
	return TopicGeneral
}

const NoCardData = "Không có dữ liệu chi tiết cho lá bài này."

var positionLabels = map[string]string{
	"past":    "Quá khứ / Nguyên nhân",
	"present": "Hiện tại / Diễn biến",
	"future":  "Tương lai / Kết quả",
}

// PositionLabel returns the spread label for a card position.
// A card drawn without a position gets no label.
func PositionLabel(position string) string {
	key := strings.ToLower(strings.TrimSpace(position))
	if key == "" {
		return ""
	}
	if label, ok := positionLabels[key]; ok {
		return label
	}
	return "Vị trí ngẫu nhiên"
}

var titleCaser = cases.Title(language.Und)

// CardEntityName normalizes a card name into its knowledge key ("the fool" -> "The Fool").
func CardEntityName(raw string) string {
	return titleCaser.String(strings.TrimSpace(raw))
}

func orientationSuffix(upright bool) string {
	if upright {
		return "upright"
	}
	return "reversed"
}

// MeaningKeys lists the attribute keys to try for a card, most specific first.
func MeaningKeys(topic Topic, upright bool) []string {
	suffix := orientationSuffix(upright)
	keys := []string{string(topic) + "_" + suffix}
	if topic != TopicGeneral {
		keys = append(keys, string(TopicGeneral)+"_"+suffix)
	}
	return keys
}

// Orientation is the Vietnamese label for card orientation.
func Orientation(upright bool) string {
	if upright {
		return "Xuôi"
	}
	return "Ngược"
}
