// Package report assembles one run's outputs into the final analysis record
// and the batch summary format.
package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"tenk_analyzer/pkg/core/agent"
	"tenk_analyzer/pkg/core/scoring"
)

// SectionRecord is the wire form of one agent's analysis. SectionKeyFound is
// null when the agent never located a section.
type SectionRecord struct {
	Agent           string  `json:"agent"`
	Target          string  `json:"target"`
	SectionKeyFound *string `json:"section_key_found"`
	Analysis        string  `json:"analysis"`
	Status          string  `json:"status"`
}

// Report is the single output record of an analysis run.
type Report struct {
	ID              string                    `json:"id"`
	Timestamp       string                    `json:"timestamp"`
	File            string                    `json:"file"`
	CIK             string                    `json:"cik,omitempty"`
	Year            string                    `json:"year,omitempty"`
	SectionAnalyses map[string]SectionRecord  `json:"section_analyses"`
	Scores          scoring.ScoreSet          `json:"scores"`
	Recommendation  scoring.Recommendation    `json:"recommendation"`
}

// Assembler builds Reports. The clock and ID source are injectable so tests
// can assert byte-identical output across runs.
type Assembler struct {
	now   func() time.Time
	newID func() string
}

func NewAssembler() *Assembler {
	return &Assembler{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// NewDeterministicAssembler pins the clock and ID, for reproducibility checks.
func NewDeterministicAssembler(ts time.Time, id string) *Assembler {
	return &Assembler{
		now:   func() time.Time { return ts },
		newID: func() string { return id },
	}
}

// Assemble combines the run identity, the catalog-ordered analyses and the
// derived scores into one record.
func (a *Assembler) Assemble(file, cik, year string, results []agent.SectionAnalysis, scores scoring.ScoreSet, rec scoring.Recommendation) *Report {
	sections := make(map[string]SectionRecord, len(results))
	for _, r := range results {
		record := SectionRecord{
			Agent:    r.Agent,
			Target:   r.Target,
			Analysis: r.Analysis,
			Status:   string(r.Status),
		}
		if r.SectionKeyFound != "" {
			key := r.SectionKeyFound
			record.SectionKeyFound = &key
		}
		sections[r.Agent] = record
	}

	return &Report{
		ID:              a.newID(),
		Timestamp:       a.now().UTC().Format(time.RFC3339),
		File:            file,
		CIK:             cik,
		Year:            year,
		SectionAnalyses: sections,
		Scores:          scores,
		Recommendation:  rec,
	}
}

// JSON renders the report with stable formatting (map keys sorted by
// encoding/json), so identical inputs yield identical bytes.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// BatchEntry summarizes one file's outcome inside a batch run.
type BatchEntry struct {
	File           string  `json:"file"`
	CIK            string  `json:"cik,omitempty"`
	OverallScore   float64 `json:"overall_score,omitempty"`
	Grade          string  `json:"grade,omitempty"`
	Recommendation string  `json:"recommendation,omitempty"`
	RiskLevel      string  `json:"risk_level,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// BatchSummary aggregates a directory run.
type BatchSummary struct {
	TotalFiles int          `json:"total_files"`
	Results    []BatchEntry `json:"results"`
}
