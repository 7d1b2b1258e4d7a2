// Package agent defines the specialized section agents: their static
// configuration, the per-run analysis task, and the turn-bounded runner that
// drives one agent's exchange with the model.
package agent

// Status is the outcome of one agent's run.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusNotFound  Status = "not_found"
	StatusTruncated Status = "truncated"
	StatusFailed    Status = "failed"
)

// Spec is the static configuration of one section agent. Specs are created at
// process start from the fixed catalog and never mutated.
type Spec struct {
	Name            string   // unique within a run, e.g. "risk_agent"
	TargetItem      string   // human-readable, e.g. "Item 1A - Risk Factors"
	SectionAliases  []string // section keys to try, in order
	Instructions    string   // system prompt
	MaxTurns        int      // bounded exchanges with the model
	MaxContentChars int      // cap on section text served per read
}

// Task is a single unit of work: one agent's exploration of one resolved
// section. Built by the coordinator, consumed by the runner.
type Task struct {
	Spec       Spec
	SectionKey string // resolved section key
	Content    string // section text, already capped at MaxContentChars
	Truncated  bool   // whether the cap cut anything off
	Listing    string // compact overview of all sections, for exploration turns
}

// SectionAnalysis is the result of one agent's run. Immutable after creation.
type SectionAnalysis struct {
	Agent           string `json:"agent"`
	Target          string `json:"target"`
	SectionKeyFound string `json:"section_key_found"`
	Analysis        string `json:"analysis"`
	Status          Status `json:"status"`
}
