package analyzer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tenk_analyzer/pkg/core/agent"
	"tenk_analyzer/pkg/core/pipeline"
)

type stubProvider struct{}

func (p *stubProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	return "## Summary\nSolid business with recurring revenue growth.\n\n## Key Findings\n- Revenue strength and margin stability\n\n## Concerns/Risks\n- Competitive pressure\n\n## Opportunities/Strengths\n- Market expansion underway", nil
}

type stubSource struct{}

func (s *stubSource) GetProvider(agentName string) agent.Provider { return &stubProvider{} }

func setupHandlers() {
	InitHandler(pipeline.NewOrchestrator(&stubSource{}), nil)
}

const filingBody = `{
  "cik": "320193",
  "year": "2024",
  "section_1": "We design consumer electronics. Growth in services revenue.",
  "section_1A": "Competition is intense. Supply chain caution warranted.",
  "section_7": "Revenue increased with strong cash flow and margin strength.",
  "section_8": "Consolidated statements show stability in earnings."
}`

func TestHandleAnalyze_ReturnsReport(t *testing.T) {
	setupHandlers()

	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(filingBody))
	rec := httptest.NewRecorder()
	HandleAnalyze(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type %q", ct)
	}

	var rep map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &rep); err != nil {
		t.Fatalf("invalid report JSON: %v", err)
	}
	if rep["cik"] != "320193" {
		t.Errorf("cik = %v", rep["cik"])
	}
	sections, ok := rep["section_analyses"].(map[string]interface{})
	if !ok || len(sections) != 4 {
		t.Fatalf("expected 4 section analyses, got %v", rep["section_analyses"])
	}
	if _, ok := rep["recommendation"].(map[string]interface{})["rating"]; !ok {
		t.Error("recommendation missing rating")
	}
}

func TestHandleAnalyze_InvalidBody(t *testing.T) {
	setupHandlers()

	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(`not a filing`))
	rec := httptest.NewRecorder()
	HandleAnalyze(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d for malformed body", rec.Code)
	}
}

func TestHandleAnalyze_MethodAndCORS(t *testing.T) {
	setupHandlers()

	req := httptest.NewRequest("OPTIONS", "/api/analyze", nil)
	rec := httptest.NewRecorder()
	HandleAnalyze(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("OPTIONS status %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}

	req = httptest.NewRequest("GET", "/api/analyze", nil)
	rec = httptest.NewRecorder()
	HandleAnalyze(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status %d", rec.Code)
	}
}

func TestHandleAnalyzeRaw_SplitsDocument(t *testing.T) {
	setupHandlers()

	doc := "Item 1. Business\nWe make widgets with strong growth.\n\nItem 7. Management's Discussion\nMargins improved."
	req := httptest.NewRequest("POST", "/api/analyze/raw?cik=99&year=2020", strings.NewReader(doc))
	rec := httptest.NewRecorder()
	HandleAnalyzeRaw(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var rep map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &rep); err != nil {
		t.Fatalf("invalid report JSON: %v", err)
	}
	sections := rep["section_analyses"].(map[string]interface{})
	business := sections["business_agent"].(map[string]interface{})
	if business["status"] != "success" {
		t.Errorf("business_agent status %v", business["status"])
	}
	risk := sections["risk_agent"].(map[string]interface{})
	if risk["status"] != "not_found" {
		t.Errorf("risk_agent status %v for document without Item 1A", risk["status"])
	}
}

func TestHandleGetReport_NoStore(t *testing.T) {
	setupHandlers()

	req := httptest.NewRequest("GET", "/api/report?cik=1&year=2020", nil)
	rec := httptest.NewRecorder()
	HandleGetReport(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d without configured storage", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/report", nil)
	rec = httptest.NewRecorder()
	HandleGetReport(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d for missing query params", rec.Code)
	}
}
