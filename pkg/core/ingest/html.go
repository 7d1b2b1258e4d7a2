package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces an EDGAR HTML filing to plain text suitable for section
// splitting. It removes noise elements (scripts, styles, hidden spans, page
// headers) and flattens block elements to newline-separated text.
func StripHTML(htmlContent string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		// Fall back to the raw content: the regex splitter tolerates tags.
		return htmlContent
	}

	doc.Find("script, style, noscript, head").Remove()

	// Page artifacts: sequential page numbers and separator rules.
	doc.Find("hr").Remove()
	doc.Find("[style*='display:none'], [style*='display: none']").Remove()

	var sb strings.Builder
	doc.Find("body").Contents().Each(func(i int, sel *goquery.Selection) {
		appendBlockText(&sb, sel)
	})
	if sb.Len() == 0 {
		// Fragment without a <body> wrapper.
		return normalizeWhitespace(doc.Text())
	}
	return normalizeWhitespace(sb.String())
}

// appendBlockText walks the selection, writing text with newlines at block
// boundaries so item headings stay line-anchored for the splitter.
func appendBlockText(sb *strings.Builder, sel *goquery.Selection) {
	switch goquery.NodeName(sel) {
	case "p", "div", "h1", "h2", "h3", "h4", "table", "tr", "li", "br":
		sb.WriteByte('\n')
	}
	if goquery.NodeName(sel) == "#text" {
		sb.WriteString(sel.Text())
		return
	}
	sel.Contents().Each(func(i int, child *goquery.Selection) {
		appendBlockText(sb, child)
	})
}

// normalizeWhitespace collapses runs of blank lines and trims trailing spaces
// per line.
func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	blank := true
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(trimmed) == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, trimmed)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
