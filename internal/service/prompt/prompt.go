package prompt

import (
	"strings"
	"time"

	"github.com/sandevgo/sorcerer/internal/core"
)

// Prompt is a system block plus a user block.
type Prompt struct {
	System string
	User   string
}

// Params turns the prompt into gateway parameters.
func (p Prompt) Params(maxTokens int, temperature, topP float64) core.GenerateParams {
	return core.GenerateParams{
		System:      p.System,
		User:        p.User,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	}
}

// Vocative is how the persona addresses the user.
func Vocative(g core.Gender) string {
	switch g {
	case core.GenderMale:
		return "Anh"
	case core.GenderFemale:
		return "Chị"
	default:
		return "Bạn"
	}
}

// Truncate cuts s to at most max runes. max <= 0 disables the limit.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// Clock renders a timestamp the way prompts quote the current time.
func Clock(t time.Time) string {
	return t.Format("15:04:05 ngày 02/01/2006")
}

// Day renders a date as dd/mm/yyyy.
func Day(t time.Time) string {
	return t.Format("02/01/2006")
}

// Builder assembles prompt text in a fixed section order.
type Builder struct {
	sb strings.Builder
}

func (b *Builder) Line(s string) *Builder {
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
	return b
}

// Section writes a "--- TITLE ---" delimited block.
func (b *Builder) Section(title, body string) *Builder {
	b.sb.WriteString("\n--- ")
	b.sb.WriteString(title)
	b.sb.WriteString(" ---\n")
	b.sb.WriteString(strings.TrimRight(body, "\n"))
	b.sb.WriteByte('\n')
	return b
}

// Tag writes a "[TAG]" delimited block.
func (b *Builder) Tag(tag, body string) *Builder {
	b.sb.WriteByte('[')
	b.sb.WriteString(tag)
	b.sb.WriteString("]\n")
	b.sb.WriteString(strings.TrimRight(body, "\n"))
	b.sb.WriteString("\n\n")
	return b
}

func (b *Builder) String() string {
	return strings.TrimSpace(b.sb.String())
}

// bullets renders "- label: value" lines, skipping empty values.
func bullets(pairs ...[2]string) string {
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if strings.TrimSpace(p[1]) == "" {
			continue
		}
		lines = append(lines, "- "+p[0]+": "+p[1])
	}
	return strings.Join(lines, "\n")
}
