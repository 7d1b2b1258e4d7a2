// Package filing provides the read-only view over a pre-sectioned 10-K filing.
// Filings arrive as flat JSON objects mapping "section_*" keys to raw text,
// plus identity fields (CIK, fiscal year).
package filing

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidFiling indicates the input could not be parsed into the expected
// filing shape. This is the only fatal error in the pipeline: it is surfaced
// before any agent is dispatched.
var ErrInvalidFiling = fmt.Errorf("invalid filing format")

// Filing is an immutable mapping from section key to section text, identified
// by CIK and year. Extra or missing section keys are tolerated.
type Filing struct {
	CIK      string
	Year     string
	sections map[string]string
}

// Parse decodes a raw filing JSON object. Every key starting with "section_"
// becomes a section; "cik" and "year" become the filing identity. Any other
// keys are ignored.
func Parse(data []byte) (*Filing, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFiling, err)
	}

	f := &Filing{sections: make(map[string]string)}
	for key, val := range raw {
		switch {
		case key == "cik":
			f.CIK = asString(val)
		case key == "year":
			f.Year = asString(val)
		case strings.HasPrefix(key, "section_"):
			text, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("%w: section %q is not a string", ErrInvalidFiling, key)
			}
			f.sections[key] = text
		}
	}
	return f, nil
}

// New builds a Filing directly from a section map. The map is copied so the
// Filing stays immutable regardless of what the caller does afterwards.
func New(cik, year string, sections map[string]string) *Filing {
	copied := make(map[string]string, len(sections))
	for k, v := range sections {
		copied[k] = v
	}
	return &Filing{CIK: cik, Year: year, sections: copied}
}

// Has reports whether the section exists and carries non-empty text.
func (f *Filing) Has(key string) bool {
	text, ok := f.sections[key]
	return ok && strings.TrimSpace(text) != ""
}

// Section returns the section text capped at maxChars. truncated reports
// whether the cap cut anything off. A maxChars <= 0 means no cap.
func (f *Filing) Section(key string, maxChars int) (text string, truncated bool) {
	text = f.sections[key]
	if maxChars > 0 && len(text) > maxChars {
		return text[:maxChars], true
	}
	return text, false
}

// Resolve tries the given section-key aliases in order and returns the first
// one present with non-empty content.
func (f *Filing) Resolve(aliases ...string) (string, bool) {
	for _, key := range aliases {
		if f.Has(key) {
			return key, true
		}
	}
	return "", false
}

// SectionKeys returns all section keys in sorted order.
func (f *Filing) SectionKeys() []string {
	keys := make([]string, 0, len(f.sections))
	for k := range f.sections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Listing renders a compact overview of the available sections (key, length,
// short preview) for the agent's first exploration turn.
func (f *Filing) Listing() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "10-K Filing (CIK: %s, Year: %s)\nAvailable Sections:\n", f.CIK, f.Year)
	for _, key := range f.SectionKeys() {
		text := f.sections[key]
		preview := strings.ReplaceAll(text, "\n", " ")
		if len(preview) > 200 {
			preview = preview[:200]
		}
		fmt.Fprintf(&sb, "- %s (%d chars): %s\n", key, len(text), preview)
	}
	return sb.String()
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprintf("%v", v)
	}
}
