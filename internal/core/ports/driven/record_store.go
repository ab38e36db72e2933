package driven

import (
	"context"

	"github.com/custodia-labs/claro-core/internal/core/domain"
)

// RecordStore handles durable content record persistence (PostgreSQL).
// The registry never reads the store at query time; it is an authoring
// archive and an alternative ContentSource for deployments that keep
// modules in the database instead of on disk.
type RecordStore interface {
	// Save creates or updates a record
	Save(ctx context.Context, rec *domain.ContentRecord) error

	// SaveBatch saves multiple records in a transaction
	SaveBatch(ctx context.Context, recs []*domain.ContentRecord) error

	// Get retrieves a record by ID
	Get(ctx context.Context, id string) (*domain.ContentRecord, error)

	// List retrieves records, optionally filtered by status.
	// An empty status matches all records.
	List(ctx context.Context, status domain.RecordStatus) ([]*domain.ContentRecord, error)

	// Delete deletes a record
	Delete(ctx context.Context, id string) error

	// Count returns total record count
	Count(ctx context.Context) (int, error)
}

// ReportStore archives validation reports per build so CI and content
// maintainers can inspect authoring quality over time.
type ReportStore interface {
	// SaveReport persists a build's validation report
	SaveReport(ctx context.Context, report *domain.ValidationReport) error

	// LatestReport retrieves the most recent report
	LatestReport(ctx context.Context) (*domain.ValidationReport, error)
}
