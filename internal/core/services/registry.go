package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/claro-core/internal/core/domain"
	"github.com/custodia-labs/claro-core/internal/core/ports/driven"
	"github.com/custodia-labs/claro-core/internal/core/ports/driving"
	"github.com/custodia-labs/claro-core/internal/runtime"
)

// BuildOptions configures one registry build.
type BuildOptions struct {
	// Strict rejects the whole load when a dangling cross-reference is
	// found and excludes every claimant of a duplicated id. The default
	// (lenient) flags and continues, because content sets are large and
	// partially authored.
	Strict bool

	// BuildID identifies the build in the report; generated when empty.
	BuildID string
}

// BuildRegistry validates a batch of records and indexes the survivors.
//
// Records with error findings are excluded from the index, with one
// exception: in lenient mode a LEVEL_GAP record is still served, since
// downward level fallback is well-defined across a hole. Duplicate ids
// keep the first record seen (lenient) or exclude every claimant
// (strict). A strict build that finds dangling cross-references rejects
// the whole load and returns a nil registry; the report is always
// returned either way.
func BuildRegistry(records []*domain.ContentRecord, opts BuildOptions) (*domain.Registry, *domain.ValidationReport) {
	buildID := opts.BuildID
	if buildID == "" {
		buildID = uuid.NewString()
	}
	report := &domain.ValidationReport{
		BuildID: buildID,
		BuiltAt: time.Now().UTC(),
	}

	validator := NewValidator()

	// First pass: duplicate detection across the whole load.
	firstSeen := make(map[string]int, len(records))
	duplicated := make(map[string]bool)
	for i, rec := range records {
		if rec.ID == "" {
			continue
		}
		if first, ok := firstSeen[rec.ID]; ok {
			duplicated[rec.ID] = true
			report.Add(domain.Finding{
				Rule:     domain.RuleDuplicateID,
				Severity: domain.SeverityError,
				RecordID: rec.ID,
				Path:     "id",
				Message:  fmt.Sprintf("records[%d] duplicates records[%d]", i, first),
			})
			continue
		}
		firstSeen[rec.ID] = i
	}

	// Second pass: per-record structural validation and inclusion.
	var indexed []*domain.ContentRecord
	for i, rec := range records {
		if rec.ID != "" && firstSeen[rec.ID] != i {
			continue // later duplicate, already reported
		}
		if opts.Strict && duplicated[rec.ID] {
			continue // strict mode drops every claimant
		}

		findings := validator.Validate(rec)
		report.AddAll(findings)

		if excluded(findings, opts.Strict) {
			continue
		}
		indexed = append(indexed, rec)
	}

	reg := domain.NewRegistry(indexed)

	// Graph-wide pass over the validly-id'd survivors.
	xrefs := ResolveCrossRefs(reg, opts.Strict)
	report.AddAll(xrefs.Findings)

	if opts.Strict && len(xrefs.Dangling) > 0 {
		return nil, report
	}
	return reg, report
}

// excluded decides whether a record's own findings keep it out of the
// index. Soft findings never exclude; LEVEL_GAP excludes only in strict
// mode.
func excluded(findings []domain.Finding, strict bool) bool {
	for _, f := range findings {
		if f.Severity != domain.SeverityError {
			continue
		}
		if f.Rule == domain.RuleLevelGap && !strict {
			continue
		}
		return true
	}
	return false
}

// ComputeStats summarizes a built registry and its report.
func ComputeStats(reg *domain.Registry, report *domain.ValidationReport) *domain.RegistryStats {
	stats := &domain.RegistryStats{
		Records:       reg.Len(),
		ByType:        make(map[string]int),
		ByStatus:      make(map[string]int),
		LevelCoverage: make(map[int]int),
		BuildID:       report.BuildID,
		BuiltAt:       report.BuiltAt,
		ErrorCount:    len(report.Errors),
		WarningCount:  len(report.Warnings),
	}

	for _, id := range reg.IDs() {
		rec, _ := reg.Get(id)
		stats.ByType[string(rec.Type)]++
		stats.ByStatus[string(rec.Status)]++

		full := len(rec.Levels) > 0
		for _, e := range rec.Levels {
			stats.LevelCoverage[e.Level]++
			if !e.HasSpanish() {
				full = false
			}
		}
		if full {
			stats.BilingualFull++
		}
	}

	for _, f := range report.Errors {
		if f.Rule == domain.RuleDanglingCrossRef {
			stats.DanglingRefs++
		}
	}
	for _, f := range report.Warnings {
		if f.Rule == domain.RuleDanglingCrossRef {
			stats.DanglingRefs++
		}
	}
	return stats
}

// Ensure registryService implements RegistryService
var _ driving.RegistryService = (*registryService)(nil)

// registryService owns the build lifecycle around the snapshot holder.
type registryService struct {
	source   driven.ContentSource
	snapshot *runtime.Snapshot
	records  driven.RecordStore  // optional
	reports  driven.ReportStore  // optional
	cache    driven.ContentCache // optional
	strict   bool
	logger   *slog.Logger

	mu       sync.Mutex
	building bool
}

// NewRegistryService creates a RegistryService. records, reports and
// cache may be nil; archiving operations report ErrArchiveUnavailable
// without their store, and the rest degrade to best effort.
func NewRegistryService(
	source driven.ContentSource,
	snapshot *runtime.Snapshot,
	records driven.RecordStore,
	reports driven.ReportStore,
	cache driven.ContentCache,
	strict bool,
	logger *slog.Logger,
) driving.RegistryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &registryService{
		source:   source,
		snapshot: snapshot,
		records:  records,
		reports:  reports,
		cache:    cache,
		strict:   strict,
		logger:   logger,
	}
}

// Rebuild loads the source, builds a fresh registry, and swaps it in.
func (s *registryService) Rebuild(ctx context.Context) (*domain.BuildResult, error) {
	s.mu.Lock()
	if s.building {
		s.mu.Unlock()
		return nil, domain.ErrRebuildInProgress
	}
	s.building = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.building = false
		s.mu.Unlock()
	}()

	started := time.Now()
	records, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load content source %s: %w", s.source.Name(), err)
	}

	reg, report := BuildRegistry(records, BuildOptions{Strict: s.strict})

	// The report is worth archiving even for a rejected build.
	if s.reports != nil {
		if err := s.reports.SaveReport(ctx, report); err != nil {
			s.logger.Warn("failed to archive validation report", "build_id", report.BuildID, "error", err)
		}
	}

	if reg == nil {
		s.logger.Error("strict build rejected",
			"build_id", report.BuildID,
			"errors", len(report.Errors),
			"source", s.source.Name(),
		)
		return nil, domain.ErrBuildRejected
	}

	s.snapshot.Swap(reg, report)

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("failed to invalidate content cache", "error", err)
		}
	}

	result := &domain.BuildResult{
		BuildID:  report.BuildID,
		BuiltAt:  report.BuiltAt,
		Loaded:   len(records),
		Indexed:  reg.Len(),
		Excluded: len(records) - reg.Len(),
		Errors:   len(report.Errors),
		Warnings: len(report.Warnings),
	}

	s.logger.Info("registry rebuilt",
		"build_id", result.BuildID,
		"source", s.source.Name(),
		"loaded", result.Loaded,
		"indexed", result.Indexed,
		"excluded", result.Excluded,
		"errors", result.Errors,
		"warnings", result.Warnings,
		"took", time.Since(started),
	)
	return result, nil
}

// Report returns the current snapshot's validation report.
func (s *registryService) Report(ctx context.Context) (*domain.ValidationReport, error) {
	report := s.snapshot.Report()
	if report == nil {
		return nil, domain.ErrRegistryNotBuilt
	}
	return report, nil
}

// Stats summarizes the current snapshot.
func (s *registryService) Stats(ctx context.Context) (*domain.RegistryStats, error) {
	reg := s.snapshot.Registry()
	report := s.snapshot.Report()
	if reg == nil || report == nil {
		return nil, domain.ErrRegistryNotBuilt
	}
	return ComputeStats(reg, report), nil
}

// ArchiveRecords upserts authored records into the durable archive.
// Records are stored as authored, including ones the validator would
// flag; findings belong to builds, not to writes.
func (s *registryService) ArchiveRecords(ctx context.Context, recs []*domain.ContentRecord) error {
	if s.records == nil {
		return domain.ErrArchiveUnavailable
	}
	if len(recs) == 0 {
		return domain.ErrInvalidInput
	}
	for _, rec := range recs {
		if rec.ID == "" {
			return domain.ErrInvalidInput
		}
	}

	if err := s.records.SaveBatch(ctx, recs); err != nil {
		return fmt.Errorf("archive records: %w", err)
	}
	s.logger.Info("records archived", "count", len(recs))
	return nil
}

// LatestReport returns the most recently archived validation report.
func (s *registryService) LatestReport(ctx context.Context) (*domain.ValidationReport, error) {
	if s.reports == nil {
		return nil, domain.ErrArchiveUnavailable
	}
	return s.reports.LatestReport(ctx)
}
