package conv

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

const divider = "──────────"

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags | html.HrefTargetBlank
	tgPolicy   = bluemonday.NewPolicy()

	blankRuns = regexp.MustCompile(`\n{3,}`)
)

func init() {
	// Allowed tags https://core.telegram.org/bots/api#html-style
	tgPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	tgPolicy.AllowAttrs("href").OnElements("a")
	tgPolicy.AllowAttrs("class").OnElements("code")
}

// MarkdownToTelegramHTML renders a reading into the HTML subset Telegram accepts.
// Block elements Telegram lacks keep their shape as plain text: headings turn
// bold, list items get bullets or numbers, rules become a divider line.
func MarkdownToTelegramHTML(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags:          htmlFlags,
		RenderNodeHook: renderBlock,
	})
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	sanitized := string(tgPolicy.SanitizeBytes(unsafeHTML))
	return strings.TrimSpace(blankRuns.ReplaceAllString(sanitized, "\n\n"))
}

func renderBlock(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	switch n := node.(type) {
	case *ast.Heading:
		if entering {
			io.WriteString(w, "<b>")
		} else {
			io.WriteString(w, "</b>\n")
		}
	case *ast.Paragraph:
		if !entering {
			io.WriteString(w, paragraphEnd(n))
		}
	case *ast.List:
		// Items end their own lines; only a top-level list needs a gap after it.
		if !entering && isTopLevel(n) {
			io.WriteString(w, "\n")
		}
	case *ast.ListItem:
		if entering {
			io.WriteString(w, listMarker(n))
		}
	case *ast.HorizontalRule:
		io.WriteString(w, divider+"\n\n")
	default:
		return ast.GoToNext, false
	}
	return ast.GoToNext, true
}

func isTopLevel(n ast.Node) bool {
	_, ok := n.GetParent().(*ast.Document)
	return ok
}

// paragraphEnd leaves a blank line after top-level paragraphs and a newline inside lists and quotes.
func paragraphEnd(n ast.Node) string {
	if isTopLevel(n) {
		return "\n\n"
	}
	return "\n"
}

func listMarker(item *ast.ListItem) string {
	depth := 0
	for p := item.GetParent(); p != nil; p = p.GetParent() {
		if _, ok := p.(*ast.List); ok {
			depth++
		}
	}
	indent := strings.Repeat("  ", max(depth-1, 0))

	if item.ListFlags&ast.ListTypeOrdered == 0 {
		return indent + "• "
	}
	list, ok := item.GetParent().(*ast.List)
	if !ok {
		return indent + "• "
	}
	start := max(list.Start, 1)
	for i, sibling := range list.GetChildren() {
		if sibling == ast.Node(item) {
			return fmt.Sprintf("%s%d. ", indent, start+i)
		}
	}
	return indent + "• "
}
