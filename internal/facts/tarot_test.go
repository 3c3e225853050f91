package facts

import (
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestClassifyTopic(t *testing.T) {
	tests := []struct {
		question string
		want     Topic
	}{
		{"Tháng này lương có tăng không?", TopicWork},
		{"Người yêu tôi có thật lòng không?", TopicLove},
		{"Sức khỏe của mẹ", TopicHealth},
		{"Gia đình tôi sắp tới ra sao", TopicRelationship},
		{"What does the future hold?", TopicGeneral},
		{"", TopicGeneral},
		{norm.NFD.String("Lương tháng sau"), TopicWork},
	}

	for _, tt := range tests {
		if got := ClassifyTopic(tt.question); got != tt.want {
			t.Errorf("ClassifyTopic(%q) = %s, want %s", tt.question, got, tt.want)
		}
	}
}

func TestCardEntityName(t *testing.T) {
	tests := map[string]string{
		"the fool":       "The Fool",
		"  ACE OF cups ": "Ace Of Cups",
		"The Hanged Man": "The Hanged Man",
	}
	for raw, want := range tests {
		if got := CardEntityName(raw); got != want {
			t.Errorf("CardEntityName(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestMeaningKeys(t *testing.T) {
	got := MeaningKeys(TopicLove, false)
	if len(got) != 2 || got[0] != "love_reversed" || got[1] != "general_reversed" {
		t.Errorf("MeaningKeys(love, reversed) = %v", got)
	}

	got = MeaningKeys(TopicGeneral, true)
	if len(got) != 1 || got[0] != "general_upright" {
		t.Errorf("MeaningKeys(general, upright) = %v", got)
	}
}

func TestPositionLabel(t *testing.T) {
	if got := PositionLabel("past"); got != "Quá khứ / Nguyên nhân" {
		t.Errorf("PositionLabel(past) = %q", got)
	}
	if got := PositionLabel("sideways"); got != "Vị trí ngẫu nhiên" {
		t.Errorf("PositionLabel(sideways) = %q", got)
	}
	if got := PositionLabel(" "); got != "" {
		t.Errorf("PositionLabel(blank) = %q", got)
	}
}
