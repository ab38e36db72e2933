package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/claro-core/internal/core/domain"
	"github.com/custodia-labs/claro-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore implements driven.ReportStore using PostgreSQL. One row
// per build; findings are stored as JSONB arrays.
type ReportStore struct {
	db *DB
}

// NewReportStore creates a new ReportStore
func NewReportStore(db *DB) *ReportStore {
	return &ReportStore{db: db}
}

// SaveReport persists a build's validation report
func (s *ReportStore) SaveReport(ctx context.Context, report *domain.ValidationReport) error {
	errs, err := json.Marshal(emptyIfNil(report.Errors))
	if err != nil {
		return fmt.Errorf("marshal errors: %w", err)
	}
	warns, err := json.Marshal(emptyIfNil(report.Warnings))
	if err != nil {
		return fmt.Errorf("marshal warnings: %w", err)
	}

	query := `
		INSERT INTO validation_reports (build_id, built_at, errors, warnings)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (build_id) DO UPDATE SET
			built_at = EXCLUDED.built_at,
			errors = EXCLUDED.errors,
			warnings = EXCLUDED.warnings
	`
	_, err = s.db.ExecContext(ctx, query, report.BuildID, report.BuiltAt, errs, warns)
	return err
}

// LatestReport retrieves the most recent report
func (s *ReportStore) LatestReport(ctx context.Context) (*domain.ValidationReport, error) {
	var report domain.ValidationReport
	var errs, warns []byte

	err := s.db.QueryRowContext(ctx, `
		SELECT build_id, built_at, errors, warnings
		FROM validation_reports
		ORDER BY built_at DESC
		LIMIT 1
	`).Scan(&report.BuildID, &report.BuiltAt, &errs, &warns)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(errs, &report.Errors); err != nil {
		return nil, fmt.Errorf("unmarshal errors: %w", err)
	}
	if err := json.Unmarshal(warns, &report.Warnings); err != nil {
		return nil, fmt.Errorf("unmarshal warnings: %w", err)
	}
	return &report, nil
}

func emptyIfNil(fs []domain.Finding) []domain.Finding {
	if fs == nil {
		return []domain.Finding{}
	}
	return fs
}
