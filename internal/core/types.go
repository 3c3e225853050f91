package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	AppName       = "Sorcerer"
	RepositoryURL = "https://github.com/sandevgo/sorcerer"
)

type Domain string

const (
	DomainAstrology  Domain = "astrology"
	DomainNumerology Domain = "numerology"
	DomainTarot      Domain = "tarot"
	DomainHoroscope  Domain = "horoscope"
	DomainChat       Domain = "chat"
)

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Date is a validated calendar date.
type Date struct {
	Day   int
	Month int
	Year  int
}

// Canonical returns the YYYY-MM-DD form used in fingerprints.
func (d Date) Canonical() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Display returns the d/m/yyyy form used in prompt text.
func (d Date) Display() string {
	return fmt.Sprintf("%d/%d/%d", d.Day, d.Month, d.Year)
}

func (d Date) IsZero() bool {
	return d.Day == 0 && d.Month == 0 && d.Year == 0
}

// BirthSubject is parsed once from a request and never persisted on its own.
type BirthSubject struct {
	Date    Date
	RawDate string
	// Time is HH:MM or empty.
	Time      string
	RawTime   string
	Gender    Gender
	RawGender string
	Name      string
}

// Attributes is a knowledge fact sheet. Values are strings or string lists.
type Attributes map[string]any

// String renders a value, joining lists with ", ".
func (a Attributes) String(key string) string {
	switch v := a[key].(type) {
	case string:
		return v
	case []string:
		return joinStrings(v)
	case []any:
		return joinStrings(toStrings(v))
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// List returns a list value, or nil when the key holds a plain string.
func (a Attributes) List(key string) []string {
	switch v := a[key].(type) {
	case []string:
		return v
	case []any:
		return toStrings(v)
	default:
		return nil
	}
}

func (a Attributes) Has(key string) bool {
	return a.String(key) != ""
}

type KnowledgeEntry struct {
	Category   string     `json:"category" yaml:"category"`
	EntityKey  string     `json:"entity_name" yaml:"entity_name"`
	Keywords   []string   `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Attributes Attributes `json:"contexts" yaml:"contexts"`
}

// CacheEntry is a memoized generation keyed by fingerprint.
type CacheEntry struct {
	Fingerprint  string          `json:"fingerprint"`
	Answer       json.RawMessage `json:"answer"`
	InputTokens  int             `json:"input_tokens"`
	OutputTokens int             `json:"output_tokens"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Turn is one question/reply exchange. Appended, never mutated.
type Turn struct {
	SessionID    string
	Seq          string
	Question     string
	Reply        string
	Summary      string
	InputTokens  int
	OutputTokens int
	CreatedAt    time.Time
}

type TarotReading struct {
	UserID       string
	Question     string
	Answer       string
	InputTokens  int
	OutputTokens int
	CreatedAt    time.Time
}

type GenerateParams struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// Generation is the gateway output. Fallback marks the apology text.
type Generation struct {
	Text         string
	InputTokens  int
	OutputTokens int
	Fallback     bool
}

type VectorMetadata struct {
	Category   string `json:"category"`
	EntityName string `json:"entity_name"`
	Content    string `json:"content"`
}

type VectorRecord struct {
	ID       string
	Vector   []float32
	Metadata VectorMetadata
}

type VectorMatch struct {
	ID       string
	Score    float64
	Metadata VectorMetadata
}

type ChartRequest struct {
	Day        int
	Month      int
	Year       int
	HourBranch int
	GenderSign int
	Name       string
	TZOffset   int
}

type Star struct {
	Name    string `json:"name"`
	Primary bool   `json:"primary"`
}

type Palace struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Stars []Star `json:"stars"`
}

// PrimaryStars returns the names of the main stars in the palace.
func (p Palace) PrimaryStars() []string {
	var out []string
	for _, s := range p.Stars {
		if s.Primary {
			out = append(out, s.Name)
		}
	}
	return out
}

type ChartResult struct {
	Name       string   `json:"name"`
	CanChi     string   `json:"can_chi"`
	BanMenh    string   `json:"ban_menh"`
	Cuc        string   `json:"cuc"`
	MenhChu    string   `json:"menh_chu"`
	ThanChu    string   `json:"than_chu"`
	MenhPalace int      `json:"menh_palace"`
	ThanPalace int      `json:"than_palace"`
	LunarDay   int      `json:"lunar_day"`
	LunarMonth int      `json:"lunar_month"`
	LunarYear  int      `json:"lunar_year"`
	Palaces    []Palace `json:"palaces"`
}

// Palace returns the palace with the given index.
func (c ChartResult) Palace(index int) (Palace, bool) {
	for _, p := range c.Palaces {
		if p.Index == index {
			return p, true
		}
	}
	return Palace{}, false
}

func toStrings(v []any) []string {
	out := make([]string, 0, len(v))
	for _, item := range v {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

func joinStrings(v []string) string {
	return strings.Join(v, ", ")
}
