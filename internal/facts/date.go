package facts

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/sorcerer/internal/core"
)

// Separators folded into "-" before parsing.
var separatorReplacer = strings.NewReplacer(
	"/", "-",
	".", "-",
	"‐", "-",
	"‑", "-",
	"‒", "-",
	"–", "-",
	"—", "-",
	"−", "-",
)

type dateOrder struct {
	day, month, year int
}

// Tried in this order; the first that forms a real date wins.
var dateOrders = []dateOrder{
	{day: 0, month: 1, year: 2},
	{day: 1, month: 0, year: 2},
	{day: 2, month: 1, year: 0},
}

// NormalizeDate parses a day-month-year, month-day-year or year-month-day string.
// Ambiguous input such as "03-04-2000" resolves to day-month-year.
func NormalizeDate(raw string) (core.Date, error) {
	s := strings.TrimSpace(separatorReplacer.Replace(raw))
	if s == "" {
		return core.Date{}, core.ErrInvalidDate
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return core.Date{}, core.ErrInvalidDate
	}

	for _, o := range dateOrders {
		if d, ok := tryOrder(parts, o); ok {
			return d, nil
		}
	}
	return core.Date{}, core.ErrInvalidDate
}

func tryOrder(parts []string, o dateOrder) (core.Date, bool) {
	day, ok := parseDigits(parts[o.day], 1, 2)
	if !ok {
		return core.Date{}, false
	}
	month, ok := parseDigits(parts[o.month], 1, 2)
	if !ok {
		return core.Date{}, false
	}
	year, ok := parseDigits(parts[o.year], 4, 4)
	if !ok || year < 1 {
		return core.Date{}, false
	}
	if !isCalendarDate(day, month, year) {
		return core.Date{}, false
	}
	return core.Date{Day: day, Month: month, Year: year}, true
}

func parseDigits(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isCalendarDate(day, month, year int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month && t.Year() == year
}

// NormalizeTime turns "H", "HH:M" or "HH:MM" into "HH:MM".
// Anything it cannot read becomes the empty string.
func NormalizeTime(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	hourPart, minutePart, _ := strings.Cut(s, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil || hour < 0 || hour > 23 {
		return ""
	}

	minute := 0
	if minutePart != "" {
		minute, err = strconv.Atoi(strings.TrimSpace(minutePart))
		if err != nil || minute < 0 || minute > 59 {
			return ""
		}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseGender maps free-form input onto the gender enum.
func ParseGender(raw string) core.Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "nam", "m", "trai", "1":
		return core.GenderMale
	case "female", "nu", "nữ", "f", "gái":
		return core.GenderFemale
	default:
		return core.GenderUnknown
	}
}

// ParseSubject builds a BirthSubject from the wire context.
func ParseSubject(sc core.SubjectContext) (core.BirthSubject, error) {
	d, err := NormalizeDate(sc.BirthDate)
	if err != nil {
		return core.BirthSubject{}, err
	}
	return core.BirthSubject{
		Date:      d,
		RawDate:   sc.BirthDate,
		Time:      NormalizeTime(sc.BirthTime),
		RawTime:   sc.BirthTime,
		Gender:    ParseGender(sc.Gender),
		RawGender: sc.Gender,
		Name:      strings.TrimSpace(sc.Name),
	}, nil
}
