package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tenk_analyzer/pkg/core/agent"
)

func TestHandleConfig_ListsProviders(t *testing.T) {
	mgr := agent.NewManager(agent.Config{ActiveProvider: "deepseek"})
	h := NewHandler(mgr)

	rec := httptest.NewRecorder()
	h.HandleConfig(rec, httptest.NewRequest("GET", "/api/config", nil))

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.ActiveProvider != "deepseek" {
		t.Errorf("active = %q", resp.ActiveProvider)
	}
	if len(resp.Available) < 2 {
		t.Errorf("available = %v", resp.Available)
	}
}

func TestHandleSwitch(t *testing.T) {
	mgr := agent.NewManager(agent.Config{ActiveProvider: "gemini"})
	h := NewHandler(mgr)

	rec := httptest.NewRecorder()
	h.HandleSwitch(rec, httptest.NewRequest("POST", "/api/config/switch", strings.NewReader(`{"provider":"deepseek"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if mgr.ActiveProvider() != "deepseek" {
		t.Errorf("active = %q after switch", mgr.ActiveProvider())
	}

	rec = httptest.NewRecorder()
	h.HandleSwitch(rec, httptest.NewRequest("POST", "/api/config/switch", strings.NewReader(`{"provider":"nope"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d for unknown provider", rec.Code)
	}
}
