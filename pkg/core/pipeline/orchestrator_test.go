package pipeline

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tenk_analyzer/pkg/core/agent"
	"tenk_analyzer/pkg/core/filing"
	"tenk_analyzer/pkg/core/report"
	"tenk_analyzer/pkg/core/scoring"
)

// --- Mocks ---

type MockProvider struct {
	GenerateFunc func(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

func (m *MockProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, systemPrompt, options)
	}
	return "## Summary\nCanned.", nil
}

type MockProviderSource struct {
	Provider agent.Provider
}

func (s *MockProviderSource) GetProvider(agentName string) agent.Provider {
	return s.Provider
}

type MockRepository struct {
	SaveFunc func(ctx context.Context, rep *report.Report) error
	Saved    []*report.Report
}

func (m *MockRepository) Save(ctx context.Context, rep *report.Report) error {
	m.Saved = append(m.Saved, rep)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, rep)
	}
	return nil
}

func (m *MockRepository) Load(ctx context.Context, cik, year string) (*report.Report, error) {
	return nil, nil
}

// cannedProvider returns fixed text per agent role, keyed off the system
// prompt, so whole-pipeline runs are deterministic.
func cannedProvider() *MockProvider {
	return &MockProvider{
		GenerateFunc: func(ctx context.Context, p, sys string, opts map[string]interface{}) (string, error) {
			switch {
			case strings.Contains(sys, "business strategy analyst"):
				return "## Summary\nMarket leader with strong growth.\n\n## Key Findings\n- Expansion underway", nil
			case strings.Contains(sys, "risk assessment specialist"):
				return "## Summary\nManageable risks.\n\n## Concerns/Risks\n- Competition", nil
			case strings.Contains(sys, "specializing in MD&A"):
				return "## Summary\nRevenue increase of 20%.\n\n## Key Findings\n- Consistent growth", nil
			default:
				return "## Summary\nDebt decrease, solid liquidity.\n\n## Key Findings\n- Improved cash flow", nil
			}
		},
	}
}

const scenarioFiling = `{
	"cik": "1137091",
	"year": "2020",
	"section_1": "We are a market leader with strong growth.",
	"section_1A": "",
	"section_7": "Revenue increased 20%.",
	"section_8": "Total debt decreased."
}`

// --- Tests ---

func TestAnalyze_EndToEndScenario(t *testing.T) {
	f, err := filing.Parse([]byte(scenarioFiling))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	o := NewOrchestrator(&MockProviderSource{Provider: cannedProvider()})
	o.SetAssembler(report.NewDeterministicAssembler(time.Unix(0, 0).UTC(), "run-1"))

	rep, err := o.Analyze(context.Background(), "1137091_2020.json", f)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	// section_1A is empty, so risk_agent never resolves a section.
	risk := rep.SectionAnalyses["risk_agent"]
	if risk.Status != string(agent.StatusNotFound) {
		t.Errorf("risk_agent: expected not_found, got %s", risk.Status)
	}
	if risk.SectionKeyFound != nil {
		t.Errorf("risk_agent: expected null section key, got %v", *risk.SectionKeyFound)
	}

	// Risk metrics fall back to the neutral default.
	for _, name := range []string{"operational_risk", "financial_risk", "market_risk", "regulatory_risk"} {
		if rep.Scores.Metrics[name] != scoring.NeutralScore {
			t.Errorf("%s = %v, want neutral %v", name, rep.Scores.Metrics[name], scoring.NeutralScore)
		}
	}

	// The composite follows strictly from the fixed tables.
	if rep.Scores.Grade != scoring.GradeFor(rep.Scores.OverallScore) {
		t.Errorf("grade %q inconsistent with score %v", rep.Scores.Grade, rep.Scores.OverallScore)
	}
	if rep.Recommendation.Rating != scoring.RatingFor(rep.Scores.OverallScore) {
		t.Errorf("rating %q inconsistent with score %v", rep.Recommendation.Rating, rep.Scores.OverallScore)
	}
	if len(rep.SectionAnalyses) != 4 {
		t.Errorf("expected 4 section analyses, got %d", len(rep.SectionAnalyses))
	}
}

func TestAnalyze_ReproducibleChecksums(t *testing.T) {
	f, err := filing.Parse([]byte(scenarioFiling))
	if err != nil {
		t.Fatal(err)
	}

	run := func() [32]byte {
		o := NewOrchestrator(&MockProviderSource{Provider: cannedProvider()})
		o.SetAssembler(report.NewDeterministicAssembler(time.Unix(0, 0).UTC(), "run-1"))
		rep, err := o.Analyze(context.Background(), "f.json", f)
		if err != nil {
			t.Fatalf("analyze failed: %v", err)
		}
		data, err := rep.JSON()
		if err != nil {
			t.Fatal(err)
		}
		return sha256.Sum256(data)
	}

	if run() != run() {
		t.Error("two identical runs produced different report checksums")
	}
}

func TestAnalyze_PersistsWhenRepoConfigured(t *testing.T) {
	f, _ := filing.Parse([]byte(scenarioFiling))

	repo := &MockRepository{}
	o := NewOrchestrator(&MockProviderSource{Provider: cannedProvider()})
	o.SetRepository(repo)

	if _, err := o.Analyze(context.Background(), "f.json", f); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if len(repo.Saved) != 1 {
		t.Fatalf("expected 1 saved report, got %d", len(repo.Saved))
	}
	if repo.Saved[0].CIK != "1137091" {
		t.Errorf("saved report has wrong identity: %s", repo.Saved[0].CIK)
	}
}

func TestAnalyzeFile_InvalidFilingIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	calls := 0
	provider := &MockProvider{
		GenerateFunc: func(ctx context.Context, p, sys string, opts map[string]interface{}) (string, error) {
			calls++
			return "## Summary\nX.", nil
		},
	}
	o := NewOrchestrator(&MockProviderSource{Provider: provider})

	_, err := o.AnalyzeFile(context.Background(), path, "")
	if err == nil {
		t.Fatal("expected error for malformed filing")
	}
	if calls != 0 {
		t.Errorf("no agent may be dispatched on invalid input, saw %d calls", calls)
	}
}

func TestRunBatch_WritesReportsAndSummary(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dataDir, "1137091_2020.json"), []byte(scenarioFiling), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	o := NewOrchestrator(&MockProviderSource{Provider: cannedProvider()})

	summary, err := o.RunBatch(context.Background(), dataDir, outDir, 0)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if summary.TotalFiles != 2 || len(summary.Results) != 2 {
		t.Fatalf("unexpected summary shape: %+v", summary)
	}

	var okEntry, errEntry report.BatchEntry
	for _, e := range summary.Results {
		if e.Error != "" {
			errEntry = e
		} else {
			okEntry = e
		}
	}
	if okEntry.CIK != "1137091" || okEntry.Grade == "" {
		t.Errorf("good entry incomplete: %+v", okEntry)
	}
	if errEntry.File != "broken.json" {
		t.Errorf("broken file not recorded: %+v", errEntry)
	}

	if _, err := os.Stat(filepath.Join(outDir, "1137091_2020_analysis.json")); err != nil {
		t.Errorf("per-file report not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "batch_summary.json")); err != nil {
		t.Errorf("batch summary not written: %v", err)
	}
}
