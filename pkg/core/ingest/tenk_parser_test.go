package ingest

import (
	"strings"
	"testing"
)

const plainTenK = `
ANNUAL REPORT

Item 1. Business
We design and sell consumer electronics worldwide.

Item 1A. Risk Factors
Our business faces intense competition and supply chain risks.

Item 7. Management's Discussion and Analysis
Revenue increased 20% year over year.

Item 8. Financial Statements
Consolidated balance sheets follow.
`

func TestParse_PlainText(t *testing.T) {
	f := NewTenKParser().Parse("320193", "2024", plainTenK)

	for _, key := range []string{"section_1", "section_1A", "section_7", "section_8"} {
		if !f.Has(key) {
			t.Errorf("missing %s", key)
		}
	}

	text, _ := f.Section("section_1A", 0)
	if !strings.Contains(text, "intense competition") {
		t.Errorf("section_1A content wrong: %q", text)
	}
	if strings.Contains(text, "Revenue increased") {
		t.Error("section_1A bleeds into Item 7")
	}
}

func TestParse_HTMLInput(t *testing.T) {
	html := `<html><head><style>p{}</style></head><body>
<p>Item 1. Business</p>
<p>We make widgets.</p>
<p>Item 1A. Risk Factors</p>
<p>Litigation risk is material.</p>
</body></html>`

	f := NewTenKParser().Parse("99", "2020", html)

	if !f.Has("section_1") || !f.Has("section_1A") {
		t.Fatalf("expected both sections, got keys %v", f.SectionKeys())
	}
	text, _ := f.Section("section_1A", 0)
	if !strings.Contains(text, "Litigation risk") {
		t.Errorf("unexpected section_1A: %q", text)
	}
	if strings.Contains(text, "<p>") {
		t.Error("HTML tags leaked into section text")
	}
}

func TestParse_PartialDocument(t *testing.T) {
	f := NewTenKParser().Parse("1", "2020", "Item 7. Management's Discussion\nNumbers went up.")

	if !f.Has("section_7") {
		t.Fatal("expected section_7")
	}
	if f.Has("section_8") {
		t.Error("absent items must stay absent")
	}
}

func TestStripHTML_RemovesNoise(t *testing.T) {
	text := StripHTML(`<html><body><script>evil()</script><p>Item 1. Business</p><hr/><div>Widgets.</div></body></html>`)

	if strings.Contains(text, "evil") {
		t.Error("script content survived")
	}
	if !strings.Contains(text, "Item 1. Business") || !strings.Contains(text, "Widgets.") {
		t.Errorf("body text lost: %q", text)
	}
}
