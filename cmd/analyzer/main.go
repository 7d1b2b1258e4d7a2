package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"tenk_analyzer/pkg/core/agent"
	"tenk_analyzer/pkg/core/pipeline"
	"tenk_analyzer/pkg/core/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	var (
		filePath   = flag.String("file", "", "Path to a single sectioned 10-K JSON file")
		dataDir    = flag.String("dir", "", "Directory of sectioned 10-K JSON files (batch mode)")
		outputDir  = flag.String("out", "output", "Directory for analysis reports")
		limit      = flag.Int("limit", 0, "Max filings to process in batch mode (0 = all)")
		configPath = flag.String("config", "config/models.yaml", "Provider routing config")
		useDB      = flag.Bool("db", false, "Persist reports to Postgres (DATABASE_URL)")
	)
	flag.Parse()

	if *filePath == "" && *dataDir == "" {
		log.Fatal("Error: provide -file <filing.json> or -dir <data directory>.")
	}

	var agentCfg agent.Config
	if configData, err := os.ReadFile(*configPath); err == nil {
		if err := yaml.Unmarshal(configData, &agentCfg); err != nil {
			log.Fatalf("Invalid config %s: %v", *configPath, err)
		}
	} else {
		fmt.Printf("[CONFIG] %s not found, defaulting to gemini\n", *configPath)
	}
	mgr := agent.NewManager(agentCfg)

	fmt.Println("10-K Analyzer Starting...")
	orch := pipeline.NewOrchestrator(mgr)

	ctx := context.Background()
	if *useDB {
		if err := store.InitDB(ctx); err != nil {
			log.Fatalf("Database init failed: %v", err)
		}
		defer store.Close()
		orch.SetRepository(store.NewReportRepo())
	}

	if *filePath != "" {
		rep, err := orch.AnalyzeFile(ctx, *filePath, *outputDir)
		if err != nil {
			log.Fatalf("Analysis failed: %v", err)
		}
		fmt.Printf("\n[Done] %s FY%s: %s (%s, %s)\n",
			rep.CIK, rep.Year,
			rep.Scores.Grade, rep.Recommendation.Rating, rep.Recommendation.Confidence)
		return
	}

	summary, err := orch.RunBatch(ctx, *dataDir, *outputDir, *limit)
	if err != nil {
		log.Fatalf("Batch failed: %v", err)
	}
	failed := 0
	for _, entry := range summary.Results {
		if entry.Error != "" {
			failed++
		}
	}
	fmt.Printf("\n[Done] Batch complete: %d analyzed, %d failed.\n", summary.TotalFiles-failed, failed)
}
