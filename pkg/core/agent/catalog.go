package agent

import (
	"tenk_analyzer/pkg/core/prompt"
)

// Turn and content budgets shared by every catalog agent.
const (
	DefaultMaxTurns        = 4
	DefaultMaxContentChars = 10000
)

// DefaultCatalog returns the four specialized section agents. The returned
// slice is freshly allocated on each call so callers can treat it as their own
// immutable configuration value.
func DefaultCatalog() []Spec {
	specs := []Spec{
		{
			Name:           "business_agent",
			TargetItem:     "Item 1 - Business",
			SectionAliases: []string{"section_1", "section_01"},
		},
		{
			Name:           "risk_agent",
			TargetItem:     "Item 1A - Risk Factors",
			SectionAliases: []string{"section_1A", "section_1a"},
		},
		{
			Name:           "mda_agent",
			TargetItem:     "Item 7 - Management Discussion & Analysis",
			SectionAliases: []string{"section_7", "section_07"},
		},
		{
			Name:           "financial_agent",
			TargetItem:     "Item 8 - Financial Statements",
			SectionAliases: []string{"section_8", "section_08"},
		},
	}

	for i := range specs {
		specs[i].Instructions = prompt.AgentPrompt(specs[i].Name)
		specs[i].MaxTurns = DefaultMaxTurns
		specs[i].MaxContentChars = DefaultMaxContentChars
	}
	return specs
}
