package db

import (
	"database/sql"
	"fmt"
	"time"
)

// ReportRun records one generated report.
type ReportRun struct {
	ID                int       `json:"id"`
	RunID             string    `json:"run_id"`
	SourceFile        string    `json:"source_file"`
	PDFPath           string    `json:"pdf_path"`
	MapPath           string    `json:"map_path"`
	ChartPath         *string   `json:"chart_path"` // nil when no HTML preview was written
	TotalHospitals    int       `json:"total_hospitals"`
	ScoredHospitals   int       `json:"scored_hospitals"`
	UnscoredHospitals int       `json:"unscored_hospitals"`
	States            int       `json:"states"`
	CreatedAt         time.Time `json:"created_at"`
}

// RecordReportRun inserts a new run record and fills its ID.
func (db *DB) RecordReportRun(run *ReportRun) error {
	query := `
		INSERT INTO report_runs (
			run_id, source_file, pdf_path, map_path, chart_path,
			total_hospitals, scored_hospitals, unscored_hospitals, states
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.DB.Exec(
		query,
		run.RunID,
		run.SourceFile,
		run.PDFPath,
		run.MapPath,
		run.ChartPath,
		run.TotalHospitals,
		run.ScoredHospitals,
		run.UnscoredHospitals,
		run.States,
	)
	if err != nil {
		return fmt.Errorf("failed to record report run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	run.ID = int(id)
	return nil
}

// GetReportRun retrieves a run by its run ID.
func (db *DB) GetReportRun(runID string) (*ReportRun, error) {
	query := `
		SELECT id, run_id, source_file, pdf_path, map_path, chart_path,
		       total_hospitals, scored_hospitals, unscored_hospitals, states, created_at
		FROM report_runs
		WHERE run_id = ?
	`

	var run ReportRun
	err := db.DB.QueryRow(query, runID).Scan(
		&run.ID,
		&run.RunID,
		&run.SourceFile,
		&run.PDFPath,
		&run.MapPath,
		&run.ChartPath,
		&run.TotalHospitals,
		&run.ScoredHospitals,
		&run.UnscoredHospitals,
		&run.States,
		&run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report run not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report run: %w", err)
	}
	return &run, nil
}

// RecentReportRuns retrieves the most recent N runs.
func (db *DB) RecentReportRuns(limit int) ([]ReportRun, error) {
	query := `
		SELECT id, run_id, source_file, pdf_path, map_path, chart_path,
		       total_hospitals, scored_hospitals, unscored_hospitals, states, created_at
		FROM report_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := db.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query report runs: %w", err)
	}
	defer rows.Close()

	var runs []ReportRun
	for rows.Next() {
		var run ReportRun
		err := rows.Scan(
			&run.ID,
			&run.RunID,
			&run.SourceFile,
			&run.PDFPath,
			&run.MapPath,
			&run.ChartPath,
			&run.TotalHospitals,
			&run.ScoredHospitals,
			&run.UnscoredHospitals,
			&run.States,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteReportRun deletes a run record by run ID.
func (db *DB) DeleteReportRun(runID string) error {
	result, err := db.DB.Exec(`DELETE FROM report_runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete report run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("report run not found")
	}
	return nil
}
