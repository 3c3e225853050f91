package facts

import (
	"strconv"
	"strings"

	"github.com/sandevgo/sorcerer/internal/core"
)

// DefaultBirthTime is assumed when a horoscope request carries no time.
const DefaultBirthTime = "12:00"

// HourBranch maps a clock string onto the 1-based earthly branch of the birth hour.
func HourBranch(raw string) int {
	if strings.TrimSpace(raw) == "" {
		return 12
	}
	hourPart, _, _ := strings.Cut(raw, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil {
		return 1
	}
	if hour >= 23 || hour < 1 {
		return 1
	}
	return (hour+1)/2 + 1
}

// ChartTime resolves the hour branch a chart is laid out with, plus the
// token that stands for the birth time in cache keys.
// Missing time falls back to DefaultBirthTime. Unreadable time keeps its own
// branch and token so it never shares an entry with the default.
func ChartTime(s core.BirthSubject) (branch int, token string) {
	switch {
	case s.Time != "":
		return HourBranch(s.Time), s.Time
	case strings.TrimSpace(s.RawTime) == "":
		return HourBranch(DefaultBirthTime), DefaultBirthTime
	default:
		branch = HourBranch(s.RawTime)
		return branch, "unreadable:" + strconv.Itoa(branch)
	}
}

// GenderSign is +1 for male and -1 for anything else, unknown included.
func GenderSign(g core.Gender) int {
	if g == core.GenderMale {
		return 1
	}
	return -1
}
