package utils

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CleanMarkdown strips conversational filler and outer markdown code blocks.
// It ensures the output is pure Markdown ready for parsing.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	if strings.HasPrefix(cleaned, "```markdown") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

// MarkdownOutline maps a normalized (lowercased, trimmed) heading to the list
// items that appear under it, in document order.
type MarkdownOutline map[string][]string

// ExtractOutline parses agent analysis markdown and collects the bullet items
// under each heading. Agents are instructed to answer with headed bullet lists
// ("## Key Findings", "## Concerns/Risks", ...), so the outline is the
// structured face of an otherwise free-text analysis.
func ExtractOutline(md string) MarkdownOutline {
	source := []byte(CleanMarkdown(md))
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	outline := make(MarkdownOutline)
	current := ""

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			current = normalizeHeading(nodeText(node, source))
		case *ast.ListItem:
			if current == "" {
				return ast.WalkContinue, nil
			}
			item := strings.TrimSpace(nodeText(node, source))
			if item != "" {
				outline[current] = append(outline[current], item)
			}
			// Children already flattened into the item text.
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return outline
}

// Items returns the bullets under the heading, matched case-insensitively.
func (o MarkdownOutline) Items(heading string) []string {
	return o[normalizeHeading(heading)]
}

func normalizeHeading(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// nodeText flattens all text descendants of a node into one string.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := child.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
