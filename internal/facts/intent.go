package facts

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sandevgo/sorcerer/internal/core"
	"golang.org/x/text/unicode/norm"
)

var explicitDatePattern = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`)

var tarotKeywords = []string{
	"Fool", "Magician", "Empress", "Emperor", "Lover", "Chariot", "Strength",
	"Hermit", "Wheel", "Justice", "Hanged", "Death", "Temperance", "Devil",
	"Tower", "Star", "Moon", "Sun", "Judgement", "World",
	"Cup", "Wand", "Sword", "Pentacle",
}

var greetings = map[string]struct{}{
	"hi":       {},
	"hello":    {},
	"alo":      {},
	"xin chào": {},
	"chào":     {},
	"chào bạn": {},
	"hola":     {},
	"bắt đầu":  {},
	"start":    {},
}

// ChatIntent is what a free-form chat question asks about.
type ChatIntent struct {
	ExplicitDate *core.Date
	TarotCards   []string
	Greeting     bool
}

func (i ChatIntent) HasTarot() bool {
	return len(i.TarotCards) > 0
}

// AnalyzeChat extracts an explicit date, tarot cards and greeting status.
// Cards passed by the client take precedence over names found in the text.
func AnalyzeChat(question string, cards []string) ChatIntent {
	intent := ChatIntent{TarotCards: append([]string(nil), cards...)}

	if m := explicitDatePattern.FindStringSubmatch(question); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		if isCalendarDate(d, mo, y) {
			intent.ExplicitDate = &core.Date{Day: d, Month: mo, Year: y}
		}
	}

	if len(intent.TarotCards) == 0 {
		lower := strings.ToLower(question)
		for _, kw := range tarotKeywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				intent.TarotCards = append(intent.TarotCards, kw)
			}
		}
	}

	cleaned := norm.NFC.String(strings.ToLower(strings.TrimSpace(question)))
	_, intent.Greeting = greetings[cleaned]

	return intent
}
