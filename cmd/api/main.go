package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"tenk_analyzer/pkg/api/analyzer"
	"tenk_analyzer/pkg/api/config"
	"tenk_analyzer/pkg/core/agent"
	"tenk_analyzer/pkg/core/pipeline"
	"tenk_analyzer/pkg/core/store"
)

func main() {
	godotenv.Load()

	// Initialize manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	mgr := agent.NewManager(agentCfg)

	orch := pipeline.NewOrchestrator(mgr)

	var repo store.ReportRepository
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] Database init failed, running without persistence: %v\n", err)
		} else {
			repo = store.NewReportRepo()
			orch.SetRepository(repo)
			fmt.Println("[STORE] Report persistence enabled.")
		}
	}

	analyzer.InitHandler(orch, repo)
	http.HandleFunc("/api/analyze", analyzer.HandleAnalyze)
	http.HandleFunc("/api/analyze/raw", analyzer.HandleAnalyzeRaw)
	http.HandleFunc("/api/report", analyzer.HandleGetReport)

	// Config endpoints
	configHandler := config.NewHandler(mgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - POST /api/analyze      (sectioned filing JSON)")
	fmt.Println("  - POST /api/analyze/raw  (raw 10-K HTML/text, ?cik=&year=)")
	fmt.Println("  - GET  /api/report       (?cik=&year=)")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
