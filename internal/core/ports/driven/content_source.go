package driven

import (
	"context"

	"github.com/custodia-labs/claro-core/internal/core/domain"
)

// ContentSource supplies fully-materialized content records to a registry
// build. It is the only place I/O happens in the load path - the registry
// itself never touches a file or a connection. Implementations exist for
// a directory of JSON modules and for the PostgreSQL record store.
type ContentSource interface {
	// Load returns every content record the source knows about, in the
	// source's natural order. Duplicate ids are returned as-is; the build
	// reports them rather than the source resolving them silently.
	Load(ctx context.Context) ([]*domain.ContentRecord, error)

	// Name identifies the source in logs and build results.
	Name() string
}
