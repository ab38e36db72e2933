package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/custodia-labs/claro-core/internal/core/domain"
	"github.com/custodia-labs/claro-core/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/claro-core/internal/runtime"
)

func builtSnapshot(t *testing.T, records ...*domain.ContentRecord) *runtime.Snapshot {
	t.Helper()
	reg, report := BuildRegistry(records, BuildOptions{})
	if reg == nil {
		t.Fatal("test fixture failed to build")
	}
	snap := runtime.NewSnapshot()
	snap.Swap(reg, report)
	return snap
}

func topicX() *domain.ContentRecord {
	// Spanish authored for levels 1 and 2 only.
	return &domain.ContentRecord{
		ID:     "topic-x",
		Type:   domain.RecordTypeTopic,
		Name:   "Topic X",
		NameEs: "Tema X",
		Levels: domain.LevelSet{
			{Level: 1, Content: "en-1", ContentEs: "es-1"},
			{Level: 2, Content: "en-2", ContentEs: "es-2"},
			{Level: 3, Content: "en-3"},
			{Level: 4, Content: "en-4"},
			{Level: 5, Content: "en-5"},
		},
		Status: domain.StatusPublished,
	}
}

func TestContentService_Get_ExactLevel(t *testing.T) {
	svc := NewContentService(builtSnapshot(t, topicX()), nil, 0)

	rc, err := svc.Get(context.Background(), "topic-x", 3, domain.LocaleEN)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rc.Body != "en-3" || rc.ActualLevel != 3 || rc.AppliedFallback {
		t.Errorf("unexpected resolution %+v", rc)
	}
	if rc.Name != "Topic X" || rc.ActualLocale != domain.LocaleEN || rc.LocaleFallback {
		t.Errorf("unexpected locale resolution %+v", rc)
	}
}

func TestContentService_Get_LevelFallbackDownward(t *testing.T) {
	gapped := topicX()
	gapped.ID = "topic-gapped"
	gapped.Levels = domain.LevelSet{
		{Level: 1, Content: "en-1"},
		{Level: 2, Content: "en-2"},
		{Level: 4, Content: "en-4"},
	}
	svc := NewContentService(builtSnapshot(t, gapped), nil, 0)
	ctx := context.Background()

	// Level present in the hole's shadow: exact match.
	rc, err := svc.Get(ctx, "topic-gapped", 4, domain.LocaleEN)
	if err != nil {
		t.Fatalf("Get level 4: %v", err)
	}
	if rc.ActualLevel != 4 || rc.AppliedFallback {
		t.Errorf("level 4 is authored, expected no fallback: %+v", rc)
	}

	// The hole itself: fall down to 2, never up to 4.
	rc, err = svc.Get(ctx, "topic-gapped", 3, domain.LocaleEN)
	if err != nil {
		t.Fatalf("Get level 3: %v", err)
	}
	if rc.ActualLevel != 2 || !rc.AppliedFallback || rc.Body != "en-2" {
		t.Errorf("level 3 must fall back to 2: %+v", rc)
	}
	if rc.Level != 3 {
		t.Errorf("requested level must be echoed, got %d", rc.Level)
	}
}

func TestContentService_Get_LevelUnavailable(t *testing.T) {
	noBase := topicX()
	noBase.ID = "topic-no-base"
	noBase.Levels = domain.LevelSet{{Level: 3, Content: "en-3"}}
	svc := NewContentService(builtSnapshot(t, noBase), nil, 0)

	if _, err := svc.Get(context.Background(), "topic-no-base", 2, domain.LocaleEN); !errors.Is(err, domain.ErrLevelUnavailable) {
		t.Errorf("no level at or below the request: expected ErrLevelUnavailable, got %v", err)
	}
}

func TestContentService_Get_LocaleFallback(t *testing.T) {
	svc := NewContentService(builtSnapshot(t, topicX()), nil, 0)
	ctx := context.Background()

	// Spanish authored at this level.
	rc, err := svc.Get(ctx, "topic-x", 2, domain.LocaleES)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rc.Body != "es-2" || rc.ActualLocale != domain.LocaleES || rc.LocaleFallback {
		t.Errorf("expected Spanish body at level 2: %+v", rc)
	}
	if rc.Name != "Tema X" {
		t.Errorf("expected Spanish display name, got %s", rc.Name)
	}

	// Spanish missing at level 5: English body, flagged, level untouched.
	rc, err = svc.Get(ctx, "topic-x", 5, domain.LocaleES)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rc.ActualLevel != 5 || rc.AppliedFallback {
		t.Errorf("locale fallback must not change the level: %+v", rc)
	}
	if rc.Body != "en-5" || !rc.LocaleFallback || rc.ActualLocale != domain.LocaleEN {
		t.Errorf("expected flagged English fallback: %+v", rc)
	}
	if rc.Locale != domain.LocaleES {
		t.Errorf("requested locale must be echoed, got %s", rc.Locale)
	}
}

func TestContentService_Get_BadInputs(t *testing.T) {
	svc := NewContentService(builtSnapshot(t, topicX()), nil, 0)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "topic-x", 0, domain.LocaleEN); !errors.Is(err, domain.ErrInvalidLevel) {
		t.Errorf("level 0: expected ErrInvalidLevel, got %v", err)
	}
	if _, err := svc.Get(ctx, "topic-x", 6, domain.LocaleEN); !errors.Is(err, domain.ErrInvalidLevel) {
		t.Errorf("level 6: expected ErrInvalidLevel, got %v", err)
	}
	if _, err := svc.Get(ctx, "topic-x", 1, "fr"); !errors.Is(err, domain.ErrInvalidLocale) {
		t.Errorf("locale fr: expected ErrInvalidLocale, got %v", err)
	}
	if _, err := svc.Get(ctx, "topic-unknown", 1, domain.LocaleEN); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown id: expected ErrNotFound, got %v", err)
	}
}

func TestContentService_Get_NotBuilt(t *testing.T) {
	svc := NewContentService(runtime.NewSnapshot(), nil, 0)
	if _, err := svc.Get(context.Background(), "topic-x", 1, domain.LocaleEN); !errors.Is(err, domain.ErrRegistryNotBuilt) {
		t.Errorf("expected ErrRegistryNotBuilt, got %v", err)
	}
}

func TestContentService_Get_DropsDanglingRefs(t *testing.T) {
	rec := topicX()
	rec.CrossReferences = []domain.CrossReference{
		{TargetID: "topic-y", Relationship: domain.RelRelated},
		{TargetID: "topic-missing", Relationship: domain.RelRelated},
		{TargetID: "topic-x", Relationship: domain.RelRelated},
	}
	other := topicX()
	other.ID = "topic-y"

	svc := NewContentService(builtSnapshot(t, rec, other), nil, 0)
	rc, err := svc.Get(context.Background(), "topic-x", 1, domain.LocaleEN)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(rc.CrossReferences) != 1 || rc.CrossReferences[0].TargetID != "topic-y" {
		t.Errorf("dangling and self refs must be dropped, got %+v", rc.CrossReferences)
	}
}

func TestContentService_Get_UsesCache(t *testing.T) {
	cache := mocks.NewMockContentCache()
	svc := NewContentService(builtSnapshot(t, topicX()), cache, time.Minute)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "topic-x", 1, domain.LocaleEN); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected the resolution to be cached, got %d entries", cache.Len())
	}

	rc, err := svc.Get(ctx, "topic-x", 1, domain.LocaleEN)
	if err != nil {
		t.Fatalf("cached Get: %v", err)
	}
	if rc.Body != "en-1" {
		t.Errorf("unexpected cached body %q", rc.Body)
	}
}

func TestContentService_Get_CacheFailureDoesNotFailQuery(t *testing.T) {
	cache := mocks.NewMockContentCache()
	cache.SetGetError(errors.New("connection refused"))
	svc := NewContentService(builtSnapshot(t, topicX()), cache, time.Minute)

	rc, err := svc.Get(context.Background(), "topic-x", 1, domain.LocaleEN)
	if err != nil {
		t.Fatalf("Get with broken cache: %v", err)
	}
	if rc.Body != "en-1" {
		t.Errorf("expected registry body en-1, got %q", rc.Body)
	}
}

func TestContentService_GetRecord(t *testing.T) {
	svc := NewContentService(builtSnapshot(t, topicX()), nil, 0)
	ctx := context.Background()

	rec, err := svc.GetRecord(ctx, "topic-x")
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if rec.ID != "topic-x" || len(rec.Levels) != 5 {
		t.Errorf("unexpected record %+v", rec)
	}
	if _, err := svc.GetRecord(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestContentService_List(t *testing.T) {
	a := topicX()
	a.ID = "topic-a"
	a.Tags = []string{"respiratory"}
	b := topicX()
	b.ID = "topic-b"
	b.Type = domain.RecordTypeConcept
	b.Status = domain.StatusDraft

	svc := NewContentService(builtSnapshot(t, b, a), nil, 0)
	ctx := context.Background()

	all, err := svc.List(ctx, domain.ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].ID != "topic-a" || all[1].ID != "topic-b" {
		t.Errorf("expected sorted-id order, got %+v", all)
	}
	if all[0].MaxLevel != 5 || !all[0].HasSpanish {
		t.Errorf("unexpected summary %+v", all[0])
	}

	topics, err := svc.List(ctx, domain.ListFilter{Type: domain.RecordTypeTopic})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(topics) != 1 || topics[0].ID != "topic-a" {
		t.Errorf("type filter failed: %+v", topics)
	}

	tagged, err := svc.List(ctx, domain.ListFilter{Tag: "respiratory"})
	if err != nil {
		t.Fatalf("List tagged: %v", err)
	}
	if len(tagged) != 1 || tagged[0].ID != "topic-a" {
		t.Errorf("tag filter failed: %+v", tagged)
	}
}
