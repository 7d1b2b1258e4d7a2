package analyzer

import (
	"fmt"
	"io"
	"net/http"

	"tenk_analyzer/pkg/core/filing"
	"tenk_analyzer/pkg/core/ingest"
	"tenk_analyzer/pkg/core/pipeline"
	"tenk_analyzer/pkg/core/store"
)

var orchestrator *pipeline.Orchestrator
var reportRepo store.ReportRepository
var ingestParser = ingest.NewTenKParser()

// InitHandler wires the analysis pipeline into the HTTP handlers.
// repo may be nil when no database is configured.
func InitHandler(orch *pipeline.Orchestrator, repo store.ReportRepository) {
	orchestrator = orch
	reportRepo = repo
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleAnalyze accepts a pre-sectioned 10-K filing as JSON
// (cik, year, section_* keys) and returns the full analysis report.
func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f, err := filing.Parse(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid filing: %v", err), http.StatusBadRequest)
		return
	}
	fmt.Printf("[API] Analyze request: CIK %s FY%s (%d sections)\n", f.CIK, f.Year, len(f.SectionKeys()))

	rep, err := orchestrator.Analyze(r.Context(), "api_request", f)
	if err != nil {
		http.Error(w, fmt.Sprintf("Analysis failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeReportJSON(w, rep.JSON)
}

// HandleGetReport serves a previously persisted report by cik and year
// query parameters. Returns 404 when persistence is off or nothing is stored.
func HandleGetReport(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	cik := r.URL.Query().Get("cik")
	year := r.URL.Query().Get("year")
	if cik == "" || year == "" {
		http.Error(w, "cik and year query parameters are required", http.StatusBadRequest)
		return
	}
	if reportRepo == nil {
		http.Error(w, "report storage is not configured", http.StatusNotFound)
		return
	}

	rep, err := reportRepo.Load(r.Context(), cik, year)
	if err != nil {
		http.Error(w, fmt.Sprintf("Report not found for CIK %s FY%s: %v", cik, year, err), http.StatusNotFound)
		return
	}

	writeReportJSON(w, rep.JSON)
}

// HandleAnalyzeRaw accepts a raw 10-K document (HTML or plain text) plus
// cik and year query parameters, runs the item splitter, and analyzes
// the resulting sections.
func HandleAnalyzeRaw(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cik := r.URL.Query().Get("cik")
	year := r.URL.Query().Get("year")
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f := ingestParser.Parse(cik, year, string(body))
	if len(f.SectionKeys()) == 0 {
		http.Error(w, "no recognizable 10-K items in document", http.StatusBadRequest)
		return
	}
	fmt.Printf("[API] Raw document split into %d sections (CIK %s FY%s)\n", len(f.SectionKeys()), cik, year)

	rep, err := orchestrator.Analyze(r.Context(), "api_raw_request", f)
	if err != nil {
		http.Error(w, fmt.Sprintf("Analysis failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeReportJSON(w, rep.JSON)
}

func writeReportJSON(w http.ResponseWriter, encode func() ([]byte, error)) {
	data, err := encode()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
