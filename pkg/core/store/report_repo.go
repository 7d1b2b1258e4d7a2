package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"tenk_analyzer/pkg/core/report"
)

// ReportRepository is the persistence contract consumed by the pipeline.
type ReportRepository interface {
	Save(ctx context.Context, rep *report.Report) error
	Load(ctx context.Context, cik, year string) (*report.Report, error)
}

// ReportRepo stores analysis reports in Postgres, one JSONB row per filing,
// upserted on (cik, year).
//
// Schema assumption (managed outside this package):
//
//	CREATE TABLE IF NOT EXISTS tenk_reports (
//	  cik TEXT NOT NULL,
//	  year TEXT NOT NULL,
//	  report_json JSONB,
//	  updated_at TIMESTAMPTZ,
//	  PRIMARY KEY (cik, year)
//	);
type ReportRepo struct{}

func NewReportRepo() *ReportRepo {
	return &ReportRepo{}
}

var _ ReportRepository = (*ReportRepo)(nil)

// Save upserts the report for its filing identity.
func (r *ReportRepo) Save(ctx context.Context, rep *report.Report) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
		INSERT INTO tenk_reports (cik, year, report_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cik, year)
		DO UPDATE SET
			report_json = EXCLUDED.report_json,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := pool.Exec(ctx, query, rep.CIK, rep.Year, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Load retrieves a stored report by filing identity.
func (r *ReportRepo) Load(ctx context.Context, cik, year string) (*report.Report, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT report_json FROM tenk_reports WHERE cik = $1 AND year = $2`

	var jsonData []byte
	err := pool.QueryRow(ctx, query, cik, year).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no report found for cik %s year %s", cik, year)
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	var rep report.Report
	if err := json.Unmarshal(jsonData, &rep); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored report: %w", err)
	}
	return &rep, nil
}
