package domain

import (
	"strings"
	"time"
)

// RecordType categorizes a content record. Informational only - unknown
// types are reported as warnings, never rejected.
type RecordType string

const (
	RecordTypeTopic   RecordType = "topic"
	RecordTypeConcept RecordType = "concept"
)

// KnownRecordType reports whether t is one of the recognized record types.
func KnownRecordType(t RecordType) bool {
	return t == RecordTypeTopic || t == RecordTypeConcept
}

// RecordStatus is the lifecycle state of a content record.
type RecordStatus string

const (
	StatusDraft     RecordStatus = "draft"
	StatusPublished RecordStatus = "published"
	StatusArchived  RecordStatus = "archived"
)

// Locale identifies a supported content language.
// English is the primary locale; Spanish is the secondary.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleES Locale = "es"
)

// KnownLocale reports whether l is a supported locale.
func KnownLocale(l Locale) bool {
	return l == LocaleEN || l == LocaleES
}

// Relationship is the kind of a cross-reference between two records.
type Relationship string

const (
	RelRelated Relationship = "related"
	RelParent  Relationship = "parent"
	RelChild   Relationship = "child"
)

// KnownRelationship reports whether r is one of the closed relationship set.
func KnownRelationship(r Relationship) bool {
	return r == RelRelated || r == RelParent || r == RelChild
}

// ContentRecord is one authored topic or concept: identity, bilingual
// display names, 1..5 reading-complexity levels and auxiliary collections.
// Records are immutable once indexed into a Registry; updates require a
// rebuild.
type ContentRecord struct {
	ID     string     `json:"id"`
	Type   RecordType `json:"type"`
	Name   string     `json:"name"`
	NameEs string     `json:"nameEs,omitempty"`

	Levels LevelSet `json:"levels"`

	Media           []MediaAsset     `json:"media,omitempty"`
	Citations       []Citation       `json:"citations,omitempty"`
	CrossReferences []CrossReference `json:"crossReferences,omitempty"`
	Tags            []string         `json:"tags,omitempty"`

	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Version   int          `json:"version"`
	Status    RecordStatus `json:"status"`
}

// MaxLevel returns the highest level number present, or 0 for an empty record.
func (r *ContentRecord) MaxLevel() int {
	max := 0
	for _, e := range r.Levels {
		if e.Level > max {
			max = e.Level
		}
	}
	return max
}

// LevelAt returns the entry for the given level number, if present.
func (r *ContentRecord) LevelAt(level int) (*LevelEntry, bool) {
	for i := range r.Levels {
		if r.Levels[i].Level == level {
			return &r.Levels[i], true
		}
	}
	return nil, false
}

// DisplayName returns the record name for the requested locale, falling
// back to the primary-locale name when the Spanish name is absent.
func (r *ContentRecord) DisplayName(locale Locale) string {
	if locale == LocaleES && r.NameEs != "" {
		return r.NameEs
	}
	return r.Name
}

// HasTag reports whether the record carries the given tag (case-insensitive).
func (r *ContentRecord) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// KeyTerm is a term/definition pair attached to a level entry.
// Terms are unique within a level under case-insensitive comparison.
type KeyTerm struct {
	Term         string `json:"term"`
	Definition   string `json:"definition"`
	TermEs       string `json:"termEs,omitempty"`
	DefinitionEs string `json:"definitionEs,omitempty"`
}

// Citation is a reference supporting a record's content.
type Citation struct {
	Source string `json:"source"`
	URL    string `json:"url"`
	// AccessedDate is kept as the authored string (RFC 3339 or YYYY-MM-DD)
	// so an unparseable date surfaces as a validation finding instead of a
	// decode failure.
	AccessedDate string `json:"accessedDate,omitempty"`
}

// ParseAccessedDate parses the citation's accessed date.
func (c Citation) ParseAccessedDate() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, c.AccessedDate); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", c.AccessedDate)
}

// CrossReference is a declared link from one record to another.
type CrossReference struct {
	TargetID     string       `json:"targetId"`
	Relationship Relationship `json:"relationship"`
	Description  string       `json:"description,omitempty"`
}

// MediaAsset is an auxiliary media attachment (illustration, video, etc.).
type MediaAsset struct {
	Kind      string `json:"kind,omitempty"`
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	CaptionEs string `json:"captionEs,omitempty"`
}
