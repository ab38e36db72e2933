package driving

import (
	"context"

	"github.com/custodia-labs/claro-core/internal/core/domain"
)

// ContentService is the public read surface over the current registry
// snapshot. It never fails for merely missing translations or levels -
// those are flagged fallbacks on the response - and reports an unknown
// topic id as domain.ErrNotFound, a normal outcome callers must handle.
type ContentService interface {
	// Get resolves a topic at a requested level and locale, applying
	// downward level fallback and primary-locale fallback as needed.
	Get(ctx context.Context, id string, level int, locale domain.Locale) (*domain.ResolvedContent, error)

	// GetRecord returns the full normalized record for a topic id.
	GetRecord(ctx context.Context, id string) (*domain.ContentRecord, error)

	// List returns summaries of all indexed records passing the filter,
	// in deterministic (sorted-id) order.
	List(ctx context.Context, filter domain.ListFilter) ([]*domain.TopicSummary, error)
}
