package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/claro-core/internal/core/domain"
)

// ContentCache caches resolved content per (topic, level, locale) tuple
// (Redis). The cache is strictly an accelerator: a miss or a cache error
// never fails a query, and Invalidate is called after every registry
// swap so readers never see content from a previous build.
type ContentCache interface {
	// GetResolved returns the cached resolution for a query tuple.
	// Returns domain.ErrNotFound on a miss.
	GetResolved(ctx context.Context, id string, level int, locale domain.Locale) (*domain.ResolvedContent, error)

	// SetResolved caches a resolution with the given TTL
	SetResolved(ctx context.Context, rc *domain.ResolvedContent, ttl time.Duration) error

	// Invalidate drops every cached resolution
	Invalidate(ctx context.Context) error
}
