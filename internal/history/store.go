// Package history persists validation runs to PostgreSQL so reviewers can
// see what was validated, when, and how it went. The store is optional:
// when no DATABASE_URL is configured the server runs with a nil *Store and
// every method no-ops, so the CLI and small deployments need no database.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/config"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/report"
	"github.com/WA-DEPS/WADEPS-Header-Tool/internal/validate"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS validation_runs (
	id UUID PRIMARY KEY,
	file_name TEXT NOT NULL,
	source TEXT NOT NULL,
	status TEXT NOT NULL,
	total_rows INTEGER NOT NULL,
	error_count INTEGER NOT NULL,
	warning_count INTEGER NOT NULL,
	subject_issue_count INTEGER NOT NULL,
	headers_valid BOOLEAN NOT NULL,
	quality_score DOUBLE PRECISION NOT NULL,
	report JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS validation_runs_created_at_idx ON validation_runs (created_at DESC);
`

// Run is one recorded validation run.
type Run struct {
	ID                uuid.UUID `json:"id"`
	FileName          string    `json:"fileName"`
	Source            string    `json:"source"`
	Status            string    `json:"status"`
	TotalRows         int       `json:"totalRows"`
	ErrorCount        int       `json:"errorCount"`
	WarningCount      int       `json:"warningCount"`
	SubjectIssueCount int       `json:"subjectIssueCount"`
	HeadersValid      bool      `json:"headersValid"`
	QualityScore      float64   `json:"qualityScore"`
	CreatedAt         time.Time `json:"createdAt"`

	report *validate.Report
}

// NewRun builds a history entry from a finished report. Source describes
// where the file came from ("upload", "folder").
func NewRun(fileName, source string, rep *validate.Report) Run {
	return Run{
		ID:                uuid.New(),
		FileName:          fileName,
		Source:            source,
		Status:            string(report.StatusOf(rep)),
		TotalRows:         rep.TotalRows,
		ErrorCount:        len(rep.Errors),
		WarningCount:      len(rep.Warnings),
		SubjectIssueCount: rep.SubjectIDs.Total(),
		HeadersValid:      rep.Headers.IsValid,
		QualityScore:      report.QualityScore(rep),
		report:            rep,
	}
}

// Store records validation runs in PostgreSQL. A nil *Store is valid and
// silently drops everything.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool, verifies it, and ensures the runs table
// exists. Callers should treat any error as a configuration problem.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("history: parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("history: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("history: ensure schema: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.pool.Close()
}

// Record inserts one run. The full report is stored as JSONB for later
// inspection; a marshaling failure only drops that column, never the run.
func (s *Store) Record(ctx context.Context, run Run) error {
	if s == nil {
		return nil
	}

	var reportJSON []byte
	if run.report != nil {
		if data, err := json.Marshal(run.report); err == nil {
			reportJSON = data
		}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO validation_runs (
			id, file_name, source, status, total_rows, error_count,
			warning_count, subject_issue_count, headers_valid, quality_score, report
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		run.ID, run.FileName, run.Source, run.Status, run.TotalRows,
		run.ErrorCount, run.WarningCount, run.SubjectIssueCount,
		run.HeadersValid, run.QualityScore, reportJSON,
	)
	if err != nil {
		return fmt.Errorf("history: record run: %w", err)
	}
	return nil
}

// Recent returns the newest runs, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, file_name, source, status, total_rows, error_count,
		       warning_count, subject_issue_count, headers_valid, quality_score, created_at
		FROM validation_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID, &r.FileName, &r.Source, &r.Status, &r.TotalRows,
			&r.ErrorCount, &r.WarningCount, &r.SubjectIssueCount,
			&r.HeadersValid, &r.QualityScore, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate runs: %w", err)
	}
	return runs, nil
}
