package services

import (
	"context"
	"time"

	"github.com/custodia-labs/claro-core/internal/core/domain"
	"github.com/custodia-labs/claro-core/internal/core/ports/driven"
	"github.com/custodia-labs/claro-core/internal/core/ports/driving"
	"github.com/custodia-labs/claro-core/internal/runtime"
)

// Ensure contentService implements ContentService
var _ driving.ContentService = (*contentService)(nil)

// contentService is the query surface over the current snapshot. All of
// its operations are read-only map lookups plus fresh response
// construction, so a single snapshot can serve arbitrarily many
// concurrent callers.
type contentService struct {
	snapshot *runtime.Snapshot
	cache    driven.ContentCache // optional
	cacheTTL time.Duration
}

// NewContentService creates a ContentService. cache may be nil.
func NewContentService(snapshot *runtime.Snapshot, cache driven.ContentCache, cacheTTL time.Duration) driving.ContentService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &contentService{
		snapshot: snapshot,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Get resolves a topic at a requested level and locale.
//
// The fallback contract: levels fall back downward only, never upward -
// a caller asking for level 5 must never silently receive level 1 text
// without the fallback flag set, and must never receive text above the
// requested complexity at all. A missing Spanish body falls back to the
// English body with LocaleFallback set. Unknown topic ids are
// domain.ErrNotFound, a normal outcome.
func (s *contentService) Get(ctx context.Context, id string, level int, locale domain.Locale) (*domain.ResolvedContent, error) {
	reg := s.snapshot.Registry()
	if reg == nil {
		return nil, domain.ErrRegistryNotBuilt
	}
	if level < domain.MinLevel || level > domain.MaxLevelNumber {
		return nil, domain.ErrInvalidLevel
	}
	if !domain.KnownLocale(locale) {
		return nil, domain.ErrInvalidLocale
	}

	if s.cache != nil {
		if cached, err := s.cache.GetResolved(ctx, id, level, locale); err == nil {
			return cached, nil
		}
		// Cache trouble never fails a query; a miss and an error fall
		// through to the registry alike.
	}

	rec, ok := reg.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}

	entry, actual := nearestLowerLevel(rec, level)
	if entry == nil {
		return nil, domain.ErrLevelUnavailable
	}

	body := entry.Body()
	actualLocale := domain.LocaleEN
	localeFallback := false
	switch locale {
	case domain.LocaleES:
		if entry.HasSpanish() {
			body = entry.ContentEs
			actualLocale = domain.LocaleES
		} else {
			localeFallback = true
		}
	default:
		// Primary locale: nothing to fall back from.
	}

	rc := &domain.ResolvedContent{
		ID:              rec.ID,
		Name:            rec.DisplayName(actualLocale),
		Level:           level,
		ActualLevel:     actual,
		AppliedFallback: actual != level,
		Locale:          locale,
		ActualLocale:    actualLocale,
		LocaleFallback:  localeFallback,
		Body:            body,

		KeyTerms:                append([]domain.KeyTerm(nil), entry.KeyTerms...),
		PatientCounselingPoints: append([]string(nil), entry.PatientCounselingPoints...),
		ClinicalNotes:           append([]string(nil), entry.ClinicalNotes...),
		Citations:               append([]domain.Citation(nil), rec.Citations...),
		CrossReferences:         resolvableRefs(reg, rec),
	}

	if s.cache != nil {
		_ = s.cache.SetResolved(ctx, rc, s.cacheTTL)
	}
	return rc, nil
}

// GetRecord returns the full normalized record for a topic id.
func (s *contentService) GetRecord(ctx context.Context, id string) (*domain.ContentRecord, error) {
	reg := s.snapshot.Registry()
	if reg == nil {
		return nil, domain.ErrRegistryNotBuilt
	}
	rec, ok := reg.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// List returns summaries of indexed records passing the filter, in
// sorted-id order.
func (s *contentService) List(ctx context.Context, filter domain.ListFilter) ([]*domain.TopicSummary, error) {
	reg := s.snapshot.Registry()
	if reg == nil {
		return nil, domain.ErrRegistryNotBuilt
	}

	summaries := make([]*domain.TopicSummary, 0, reg.Len())
	for _, id := range reg.IDs() {
		rec, _ := reg.Get(id)
		if !filter.Matches(rec) {
			continue
		}
		summaries = append(summaries, &domain.TopicSummary{
			ID:         rec.ID,
			Type:       rec.Type,
			Name:       rec.Name,
			NameEs:     rec.NameEs,
			Status:     rec.Status,
			Tags:       append([]string(nil), rec.Tags...),
			MaxLevel:   rec.MaxLevel(),
			HasSpanish: hasAnySpanish(rec),
		})
	}
	return summaries, nil
}

// nearestLowerLevel finds the entry at the requested level, or the
// closest one below it. Levels are contiguous for clean records, but
// lenient builds serve gap records too, so this walks down over holes.
func nearestLowerLevel(rec *domain.ContentRecord, level int) (*domain.LevelEntry, int) {
	for l := level; l >= domain.MinLevel; l-- {
		if e, ok := rec.LevelAt(l); ok {
			return e, l
		}
	}
	return nil, 0
}

// resolvableRefs filters the record's references to those whose target
// exists. Dangling ones were reported at load time; at query time they
// are simply dropped. Authored order is preserved.
func resolvableRefs(reg *domain.Registry, rec *domain.ContentRecord) []domain.CrossReference {
	var out []domain.CrossReference
	for _, xref := range rec.CrossReferences {
		if xref.TargetID == rec.ID || !reg.Contains(xref.TargetID) {
			continue
		}
		out = append(out, xref)
	}
	return out
}

func hasAnySpanish(rec *domain.ContentRecord) bool {
	for _, e := range rec.Levels {
		if e.HasSpanish() {
			return true
		}
	}
	return false
}
