// Package pipeline manages the end-to-end flow for one or many filings:
// load -> coordinate agents -> score -> assemble report -> optional storage.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tenk_analyzer/pkg/core/agent"
	"tenk_analyzer/pkg/core/coordinator"
	"tenk_analyzer/pkg/core/filing"
	"tenk_analyzer/pkg/core/report"
	"tenk_analyzer/pkg/core/scoring"
	"tenk_analyzer/pkg/core/store"
)

// Orchestrator wires the coordinator, scoring engine and report assembler
// together. The repository is optional; runs without one only write files.
type Orchestrator struct {
	coordinator *coordinator.Coordinator
	engine      *scoring.Engine
	assembler   *report.Assembler
	repo        store.ReportRepository
}

// NewOrchestrator creates an orchestrator over the default agent catalog.
// providers: resolves the model backing each agent (agent.Manager, or a fake).
func NewOrchestrator(providers coordinator.ProviderSource) *Orchestrator {
	return &Orchestrator{
		coordinator: coordinator.New(agent.DefaultCatalog(), providers),
		engine:      scoring.NewEngine(),
		assembler:   report.NewAssembler(),
	}
}

// SetRepository injects a report repository (e.g. for testing or when a
// database is configured).
func (o *Orchestrator) SetRepository(repo store.ReportRepository) {
	o.repo = repo
}

// SetAssembler replaces the assembler; tests pin the clock through this.
func (o *Orchestrator) SetAssembler(a *report.Assembler) {
	o.assembler = a
}

// Analyze runs the full pipeline over an already-parsed filing.
func (o *Orchestrator) Analyze(ctx context.Context, file string, f *filing.Filing) (*report.Report, error) {
	start := time.Now()
	fmt.Printf("Starting analysis for %s (CIK: %s, Year: %s)\n", file, f.CIK, f.Year)

	results := o.coordinator.Run(ctx, f)

	scores := o.engine.Score(results)
	rec := o.engine.Recommend(scores, results)
	rep := o.assembler.Assemble(file, f.CIK, f.Year, results, scores, rec)

	if o.repo != nil {
		if err := o.repo.Save(ctx, rep); err != nil {
			fmt.Printf("Warning: failed to persist report: %v\n", err)
		}
	}

	fmt.Printf("Analysis completed for %s in %v (score %.1f, %s)\n",
		file, time.Since(start), scores.OverallScore, rec.Rating)
	return rep, nil
}

// AnalyzeFile loads a filing JSON file, runs the pipeline, and writes the
// report to outputDir (when set) as <basename>_analysis.json.
func (o *Orchestrator) AnalyzeFile(ctx context.Context, path string, outputDir string) (*report.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read filing: %w", err)
	}

	f, err := filing.Parse(data)
	if err != nil {
		// Structural input error: fatal before any agent is dispatched.
		return nil, err
	}

	rep, err := o.Analyze(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, err
	}

	if outputDir != "" {
		if err := o.writeReport(rep, path, outputDir); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

func (o *Orchestrator) writeReport(rep *report.Report, srcPath, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(srcPath), ".json")
	outPath := filepath.Join(outputDir, base+"_analysis.json")

	data, err := rep.JSON()
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("Results saved: %s\n", outPath)
	return nil
}

// RunBatch analyzes every *.json filing in dataDir (up to limit when > 0) and
// writes per-file reports plus a batch_summary.json into outputDir. A file
// that fails structurally is recorded in the summary and does not stop the
// batch.
func (o *Orchestrator) RunBatch(ctx context.Context, dataDir, outputDir string, limit int) (*report.BatchSummary, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			files = append(files, filepath.Join(dataDir, e.Name()))
		}
	}
	sort.Strings(files)
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}

	fmt.Printf("Found %d files to analyze\n", len(files))
	summary := &report.BatchSummary{TotalFiles: len(files)}

	for i, path := range files {
		fmt.Printf("Analyzing file %d/%d: %s\n", i+1, len(files), filepath.Base(path))

		rep, err := o.AnalyzeFile(ctx, path, outputDir)
		if err != nil {
			fmt.Printf("Error analyzing %s: %v\n", filepath.Base(path), err)
			summary.Results = append(summary.Results, report.BatchEntry{
				File:  filepath.Base(path),
				Error: err.Error(),
			})
			continue
		}

		summary.Results = append(summary.Results, report.BatchEntry{
			File:           filepath.Base(path),
			CIK:            rep.CIK,
			OverallScore:   rep.Scores.OverallScore,
			Grade:          rep.Scores.Grade,
			Recommendation: rep.Recommendation.Rating,
			RiskLevel:      rep.Recommendation.RiskLevel,
		})
	}

	if outputDir != "" {
		if err := writeSummary(summary, outputDir); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func writeSummary(summary *report.BatchSummary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(outputDir, "batch_summary.json")

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal batch summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write batch summary: %w", err)
	}
	fmt.Printf("Summary saved: %s\n", path)
	return nil
}
