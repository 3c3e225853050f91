package rag

import (
	"strings"
	"sync"
	"unicode"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tk     *tiktoken.Tiktoken
	tkOnce sync.Once
)

type Chunk struct {
	Text      string
	TokenSize int
	Index     int
}

type ChunkerConfig struct {
	MaxTokens int
}

const (
	// Upper bound on chunk size whatever the model window allows.
	maxChunkTokens = 1024
	// Room for instruction prefixes ("passage: ") and tokenizer drift.
	windowReserve = 32
	defaultWindow = 512
)

// Input windows of embedding models, matched by substring of the model name.
var embeddingWindows = []struct {
	match  string
	window int
}{
	{"e5-", 512},
	{"bge-m3", 8192},
	{"nomic-embed-text", 8192},
	{"text-embedding-3", 8191},
	{"text-embedding-ada-002", 8191},
}

// DefaultChunkerConfig fits the smallest window among supported embedding models.
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{MaxTokens: defaultWindow - windowReserve}
}

// ChunkerConfigFor sizes chunks to the input window of the named embedding model.
func ChunkerConfigFor(model string) ChunkerConfig {
	name := strings.ToLower(model)
	for _, w := range embeddingWindows {
		if strings.Contains(name, w.match) {
			return ChunkerConfig{MaxTokens: min(w.window-windowReserve, maxChunkTokens)}
		}
	}
	return DefaultChunkerConfig()
}

// ChunkPassage splits a knowledge passage into chunks of at most cfg.MaxTokens.
//
// A passage is a header line naming the entry followed by one line per
// attribute. The header is repeated at the top of every chunk so each vector
// still names its entity. Attribute lines are packed whole; a line too long to
// fit alone is broken at sentence ends, then at spaces, then between runes.
// Text without a newline has no header and is packed the same way.
func ChunkPassage(text string, cfg ChunkerConfig) []Chunk {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return nil
	}

	var header string
	lines := nonEmptyLines(text)
	if len(lines) > 1 {
		header, lines = lines[0], lines[1:]
	}

	budget := cfg.MaxTokens
	if header != "" {
		headerTokens := countTokens(header + "\n")
		if headerTokens > cfg.MaxTokens/2 {
			// Too heavy to repeat: it becomes an ordinary line.
			lines = append([]string{header}, lines...)
			header = ""
		} else {
			budget -= headerTokens
		}
	}

	pieces := packUnits(lines, "\n", max(budget, 1))
	chunks := make([]Chunk, 0, len(pieces))
	for i, p := range pieces {
		if header != "" {
			p = header + "\n" + p
		}
		chunks = append(chunks, Chunk{Text: p, TokenSize: countTokens(p), Index: i})
	}
	return chunks
}

// packUnits joins consecutive units with sep while they fit in budget.
// A unit that does not fit alone is split on its own and never shares a piece.
func packUnits(units []string, sep string, budget int) []string {
	var out, cur []string
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.Join(cur, sep))
			cur = nil
		}
	}

	for _, u := range units {
		if countTokens(u) > budget {
			flush()
			out = append(out, splitToFit(u, budget)...)
			continue
		}
		if len(cur) > 0 && countTokens(strings.Join(cur, sep)+sep+u) > budget {
			flush()
		}
		cur = append(cur, u)
	}
	flush()
	return out
}

func splitToFit(text string, budget int) []string {
	if countTokens(text) <= budget {
		return []string{text}
	}
	if sentences := splitSentences(text); len(sentences) > 1 {
		return packUnits(sentences, " ", budget)
	}
	if words := strings.Fields(text); len(words) > 1 {
		return packUnits(words, " ", budget)
	}
	return splitRunes(text, budget)
}

// splitRunes cuts text into the longest rune runs that fit in budget.
func splitRunes(text string, budget int) []string {
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); {
		end := start + 1
		for end < len(runes) && countTokens(string(runes[start:end+1])) <= budget {
			end++
		}
		out = append(out, string(runes[start:end]))
		start = end
	}
	return out
}

var sentenceEnders = map[rune]bool{'.': true, '!': true, '?': true, '…': true}

// splitSentences breaks text after terminal punctuation followed by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	runes := []rune(text)

	for i, r := range runes {
		current.WriteRune(r)
		if sentenceEnders[r] && (i+1 == len(runes) || unicode.IsSpace(runes[i+1])) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func getTokenizer() *tiktoken.Tiktoken {
	tkOnce.Do(func() {
		var err error
		tk, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			panic("failed to load tiktoken: " + err.Error())
		}
	})
	return tk
}

// CountTokens is the cl100k_base token count of text.
func CountTokens(text string) int {
	return countTokens(text)
}

func countTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(getTokenizer().Encode(text, nil, nil))
}
