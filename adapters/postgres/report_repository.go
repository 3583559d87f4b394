package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/patilv/papaja/domain/apa"
	"github.com/patilv/papaja/internal/errors"
	"github.com/patilv/papaja/ports"
)

// Schema is the table backing the report repository. Applied by the
// server at startup when a database is configured.
const Schema = `
CREATE TABLE IF NOT EXISTS rendered_reports (
	id          UUID PRIMARY KEY,
	source      TEXT NOT NULL DEFAULT '',
	result      JSONB NOT NULL,
	statistic   TEXT NOT NULL,
	estimate    TEXT NOT NULL DEFAULT '',
	full_result TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// ReportRepository persists rendered reports in Postgres.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a report repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Connect opens a Postgres connection and applies the schema.
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, errors.DatabaseError("failed to apply schema", err)
	}
	return db, nil
}

// Insert stores one rendered report.
func (r *ReportRepository) Insert(ctx context.Context, report *ports.Report) error {
	resultJSON, err := json.Marshal(report.Result)
	if err != nil {
		return errors.DatabaseError("failed to marshal test result", err)
	}

	query := `
		INSERT INTO rendered_reports (id, source, result, statistic, estimate, full_result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.ExecContext(ctx, query,
		report.ID,
		report.Source,
		resultJSON,
		report.Output.Statistic,
		report.Output.Estimate,
		report.Output.FullResult,
		time.Now().UTC(),
	)
	if err != nil {
		return errors.DatabaseError("failed to insert report", err)
	}
	return nil
}

// Get fetches one report by id.
func (r *ReportRepository) Get(ctx context.Context, id string) (*ports.Report, error) {
	query := `
		SELECT id, source, result, statistic, estimate, full_result
		FROM rendered_reports
		WHERE id = $1`

	report, err := scanReport(r.db.QueryRowxContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("report not found: " + id)
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to get report", err)
	}
	return report, nil
}

// List returns the most recent reports, newest first.
func (r *ReportRepository) List(ctx context.Context, limit int) ([]*ports.Report, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, source, result, statistic, estimate, full_result
		FROM rendered_reports
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list reports", err)
	}
	defer rows.Close()

	var reports []*ports.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, errors.DatabaseError("failed to scan report", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("failed to iterate reports", err)
	}
	return reports, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row rowScanner) (*ports.Report, error) {
	var report ports.Report
	var resultJSON []byte
	err := row.Scan(
		&report.ID,
		&report.Source,
		&resultJSON,
		&report.Output.Statistic,
		&report.Output.Estimate,
		&report.Output.FullResult,
	)
	if err != nil {
		return nil, err
	}
	var result apa.TestResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, err
	}
	report.Result = result
	return &report, nil
}
