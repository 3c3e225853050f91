package facts

import (
	"strings"

	"github.com/sandevgo/sorcerer/internal/core"
)

type Verdict int

const (
	VerdictLow Verdict = iota
	VerdictPartial
	VerdictHigh
)

func (v Verdict) String() string {
	switch v {
	case VerdictHigh:
		return "high"
	case VerdictPartial:
		return "partial"
	default:
		return "low"
	}
}

// Label is the verdict line embedded in prompts.
func (v Verdict) Label() string {
	switch v {
	case VerdictHigh:
		return "RẤT HỢP (Theo sách: Cả hai đều nằm trong danh sách hợp của nhau)."
	case VerdictPartial:
		return "KHÁ HỢP (Theo sách: Có sự thu hút thuận lợi từ một phía)."
	default:
		return "CẦN CỐ GẮNG (Theo sách: Không nằm trong nhóm hợp tự nhiên, cần nỗ lực thấu hiểu)."
	}
}

// CompatList is a sign's "cung-hop" attribute, either free text or a list.
type CompatList struct {
	text  string
	items []string
}

// CompatListFrom reads the compatibility attribute of a zodiac fact sheet.
func CompatListFrom(attrs core.Attributes) CompatList {
	if items := attrs.List("cung-hop"); items != nil {
		return CompatList{items: items}
	}
	return CompatList{text: attrs.String("cung-hop")}
}

// Contains is element membership for lists and substring membership for text.
func (c CompatList) Contains(name string) bool {
	if name == "" {
		return false
	}
	if c.items != nil {
		for _, item := range c.items {
			if strings.EqualFold(strings.TrimSpace(item), name) {
				return true
			}
		}
		return false
	}
	return strings.Contains(c.text, name)
}

// CompatibilityVerdict is high when each sign lists the other, partial when one does.
func CompatibilityVerdict(a Sign, aCompat CompatList, b Sign, bCompat CompatList) Verdict {
	aLikesB := aCompat.Contains(b.KnowledgeName())
	bLikesA := bCompat.Contains(a.KnowledgeName())
	switch {
	case aLikesB && bLikesA:
		return VerdictHigh
	case aLikesB || bLikesA:
		return VerdictPartial
	default:
		return VerdictLow
	}
}
