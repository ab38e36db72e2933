package driving

import (
	"context"

	"github.com/custodia-labs/claro-core/internal/core/domain"
)

// RegistryService owns the build lifecycle: load records from the
// content source, validate, index, and atomically swap the serving
// snapshot. Builds are batch operations; query time never validates.
type RegistryService interface {
	// Rebuild loads the content source and swaps in a freshly built
	// registry. A strict-mode build with hard violations returns
	// domain.ErrBuildRejected and leaves the previous snapshot serving.
	Rebuild(ctx context.Context) (*domain.BuildResult, error)

	// Report returns the validation report of the current snapshot.
	Report(ctx context.Context) (*domain.ValidationReport, error)

	// Stats summarizes the current snapshot.
	Stats(ctx context.Context) (*domain.RegistryStats, error)

	// ArchiveRecords upserts authored records into the durable record
	// archive. Archiving never touches the serving snapshot; the next
	// Rebuild picks the records up when the archive is the content
	// source. Returns domain.ErrArchiveUnavailable when no record
	// store is configured.
	ArchiveRecords(ctx context.Context, recs []*domain.ContentRecord) error

	// LatestReport returns the most recently archived validation
	// report, which may belong to a rejected build and so predate the
	// serving snapshot. Returns domain.ErrArchiveUnavailable when no
	// report store is configured.
	LatestReport(ctx context.Context) (*domain.ValidationReport, error)
}
