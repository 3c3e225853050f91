package ingest

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inbucket/html2text"
	"github.com/sandevgo/sorcerer/internal/core"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// maxLineSize bounds one JSONL record.
const maxLineSize = 4 * 1024 * 1024

// FormatFromPath picks the decoder from the file extension. Unknown extensions read as JSONL.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSONL
	}
}

// Decode reads knowledge entries and cleans their values.
func Decode(r io.Reader, format Format) ([]core.KnowledgeEntry, error) {
	var (
		entries []core.KnowledgeEntry
		err     error
	)
	switch format {
	case FormatYAML:
		entries, err = decodeYAML(r)
	default:
		entries, err = decodeJSONL(r)
	}
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i] = clean(entries[i])
		if entries[i].Category == "" || entries[i].EntityKey == "" {
			return nil, fmt.Errorf("entry %d: category and entity_name are required", i+1)
		}
	}
	return entries, nil
}

func decodeJSONL(r io.Reader) ([]core.KnowledgeEntry, error) {
	var entries []core.KnowledgeEntry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var e core.KnowledgeEntry
		if err := json.Unmarshal([]byte(text), &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return entries, nil
}

// decodeYAML accepts a single list of entries or a stream of entry documents.
func decodeYAML(r io.Reader) ([]core.KnowledgeEntry, error) {
	var entries []core.KnowledgeEntry

	dec := yaml.NewDecoder(r)
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
		if len(node.Content) == 0 {
			continue
		}

		doc := node.Content[0]
		if doc.Kind == yaml.SequenceNode {
			var batch []core.KnowledgeEntry
			if err := doc.Decode(&batch); err != nil {
				return nil, fmt.Errorf("failed to decode yaml list: %w", err)
			}
			entries = append(entries, batch...)
			continue
		}

		var e core.KnowledgeEntry
		if err := doc.Decode(&e); err != nil {
			return nil, fmt.Errorf("failed to decode yaml entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// clean trims names and flattens HTML in attribute values.
func clean(e core.KnowledgeEntry) core.KnowledgeEntry {
	out := core.KnowledgeEntry{
		Category:   strings.TrimSpace(e.Category),
		EntityKey:  strings.TrimSpace(e.EntityKey),
		Keywords:   e.Keywords,
		Attributes: make(core.Attributes, len(e.Attributes)),
	}
	for k, v := range e.Attributes {
		switch val := v.(type) {
		case string:
			out.Attributes[k] = flattenHTML(val)
		case []any:
			items := make([]string, 0, len(val))
			for _, item := range val {
				items = append(items, flattenHTML(fmt.Sprint(item)))
			}
			out.Attributes[k] = items
		default:
			out.Attributes[k] = val
		}
	}
	return out
}

func flattenHTML(s string) string {
	if !strings.Contains(s, "<") || !strings.Contains(s, ">") {
		return strings.TrimSpace(s)
	}
	text, err := html2text.FromString(s, html2text.Options{OmitLinks: true})
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(text)
}

// Passage is the text embedded for an entry: a header line naming the entry,
// then one "key: value" line per attribute.
func Passage(e core.KnowledgeEntry) string {
	header := fmt.Sprintf("Chủ đề: %s. Tên: %s. Từ khóa: %s. Nội dung chi tiết:",
		e.Category, e.EntityKey, strings.Join(e.Keywords, ", "))
	return strings.Join(append([]string{header}, attributeLines(e.Attributes)...), "\n")
}

// flattenAttributes renders the attribute lines as one paragraph.
func flattenAttributes(attrs core.Attributes) string {
	return strings.Join(attributeLines(attrs), ". ")
}

// attributeLines renders "key words: value" pairs in key order.
func attributeLines(attrs core.Attributes) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	keyReplacer := strings.NewReplacer("-", " ", "_", " ")
	for _, k := range keys {
		v := attrs.String(k)
		if v == "" {
			continue
		}
		lines = append(lines, keyReplacer.Replace(k)+": "+strings.Join(strings.Fields(v), " "))
	}
	return lines
}
