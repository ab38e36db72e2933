package domain

// ResolvedContent is what the query surface hands to callers: the best
// available body for a requested (topic, level, locale) plus explicit
// fallback flags, so a caller can always tell whether it received
// exactly what it asked for or a substitute.
type ResolvedContent struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Level           int  `json:"level"`
	ActualLevel     int  `json:"actualLevel"`
	AppliedFallback bool `json:"appliedFallback"`

	Locale         Locale `json:"locale"`
	ActualLocale   Locale `json:"actualLocale"`
	LocaleFallback bool   `json:"localeFallback"`

	Body string `json:"body"`

	KeyTerms                []KeyTerm        `json:"keyTerms,omitempty"`
	PatientCounselingPoints []string         `json:"patientCounselingPoints,omitempty"`
	ClinicalNotes           []string         `json:"clinicalNotes,omitempty"`
	Citations               []Citation       `json:"citations,omitempty"`
	CrossReferences         []CrossReference `json:"crossReferences,omitempty"`
}

// TopicSummary is the list-view projection of a record.
type TopicSummary struct {
	ID         string       `json:"id"`
	Type       RecordType   `json:"type"`
	Name       string       `json:"name"`
	NameEs     string       `json:"nameEs,omitempty"`
	Status     RecordStatus `json:"status"`
	Tags       []string     `json:"tags,omitempty"`
	MaxLevel   int          `json:"maxLevel"`
	HasSpanish bool         `json:"hasSpanish"`
}

// ListFilter narrows a topic listing. Zero values match everything.
type ListFilter struct {
	Type   RecordType
	Status RecordStatus
	Tag    string
}

// Matches reports whether a record passes the filter.
func (f ListFilter) Matches(rec *ContentRecord) bool {
	if f.Type != "" && rec.Type != f.Type {
		return false
	}
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	if f.Tag != "" && !rec.HasTag(f.Tag) {
		return false
	}
	return true
}
