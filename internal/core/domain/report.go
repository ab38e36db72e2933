package domain

import "time"

// Severity classifies a validation finding. Errors exclude a record from
// the registry; warnings are reported but non-blocking.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule is a machine-readable validation rule id.
type Rule string

const (
	RuleMissingID             Rule = "MISSING_ID"
	RuleMissingPrimaryName    Rule = "MISSING_PRIMARY_NAME"
	RuleDuplicateID           Rule = "DUPLICATE_ID"
	RuleEmptyLevels           Rule = "EMPTY_LEVELS"
	RuleLevelGap              Rule = "LEVEL_GAP"
	RuleLevelKeyMismatch      Rule = "LEVEL_KEY_MISMATCH"
	RuleMissingPrimaryBody    Rule = "MISSING_PRIMARY_BODY"
	RuleMissingSecondaryBody  Rule = "MISSING_SECONDARY_LOCALE"
	RuleDuplicateKeyTerm      Rule = "DUPLICATE_KEY_TERM"
	RuleInvalidCitationURL    Rule = "INVALID_CITATION_URL"
	RuleInvalidCitationDate   Rule = "INVALID_CITATION_DATE"
	RuleCitationDateFuture    Rule = "CITATION_DATE_FUTURE"
	RuleInvalidMediaURL       Rule = "INVALID_MEDIA_URL"
	RuleEmptyAdvisoryPoint    Rule = "EMPTY_ADVISORY_POINT"
	RuleUnknownRecordType     Rule = "UNKNOWN_RECORD_TYPE"
	RuleUnknownStatus         Rule = "UNKNOWN_STATUS"
	RuleUnknownRelationship   Rule = "UNKNOWN_RELATIONSHIP"
	RuleDanglingCrossRef      Rule = "DANGLING_CROSS_REFERENCE"
	RuleSelfReference         Rule = "SELF_REFERENCE"
	RuleRelationshipConflict  Rule = "RELATIONSHIP_CONFLICT"
)

// Finding is one validation result: a rule id, its severity, the record
// it applies to and the path within the record (e.g.
// "levels[3].keyTerms[2].term").
type Finding struct {
	Rule     Rule     `json:"rule"`
	Severity Severity `json:"severity"`
	RecordID string   `json:"recordId"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
}

// ValidationReport is the batch outcome of one registry build, consumed
// by CI and content maintainers rather than end users.
type ValidationReport struct {
	BuildID  string    `json:"buildId"`
	BuiltAt  time.Time `json:"builtAt"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// Add files a finding under errors or warnings by its severity.
func (r *ValidationReport) Add(f Finding) {
	if f.Severity == SeverityError {
		r.Errors = append(r.Errors, f)
		return
	}
	r.Warnings = append(r.Warnings, f)
}

// AddAll files a batch of findings.
func (r *ValidationReport) AddAll(fs []Finding) {
	for _, f := range fs {
		r.Add(f)
	}
}

// HasErrorsFor reports whether any hard finding names the given record.
func (r *ValidationReport) HasErrorsFor(recordID string) bool {
	for _, f := range r.Errors {
		if f.RecordID == recordID {
			return true
		}
	}
	return false
}

// DanglingRef describes a cross-reference whose target is absent from
// the registry.
type DanglingRef struct {
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
	Reason   string `json:"reason"`
}

// CrossRefReport is the graph-wide outcome of cross-reference resolution.
type CrossRefReport struct {
	Dangling []DanglingRef `json:"dangling"`
	Findings []Finding     `json:"findings"`
}

// RegistryStats summarizes a built registry, logged after each build and
// served on the admin endpoint.
type RegistryStats struct {
	Records        int            `json:"records"`
	ByType         map[string]int `json:"byType"`
	ByStatus       map[string]int `json:"byStatus"`
	LevelCoverage  map[int]int    `json:"levelCoverage"`
	BilingualFull  int            `json:"bilingualFull"`
	DanglingRefs   int            `json:"danglingRefs"`
	ErrorCount     int            `json:"errorCount"`
	WarningCount   int            `json:"warningCount"`
	BuildID        string         `json:"buildId"`
	BuiltAt        time.Time      `json:"builtAt"`
}

// BuildResult is the outcome of a registry rebuild, returned to callers
// that trigger builds.
type BuildResult struct {
	BuildID  string    `json:"buildId"`
	BuiltAt  time.Time `json:"builtAt"`
	Loaded   int       `json:"loaded"`
	Indexed  int       `json:"indexed"`
	Excluded int       `json:"excluded"`
	Errors   int       `json:"errors"`
	Warnings int       `json:"warnings"`
}
