package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/claro-core/internal/core/domain"
)

// Validator checks a single content record against the structural
// invariants of the schema. It is purely structural and single-pass: no
// cross-record knowledge (duplicate ids and cross-reference resolution
// belong to the build and the cross-reference pass). It never fails;
// every problem becomes a finding.
type Validator struct {
	now func() time.Time
}

// NewValidator creates a validator.
func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// Validate returns all findings for one record. Severity follows the
// fixed rule table; LEVEL_GAP and DANGLING_CROSS_REFERENCE exclusion
// policy is mode-dependent and applied by the build, not here.
func (v *Validator) Validate(rec *domain.ContentRecord) []domain.Finding {
	var findings []domain.Finding
	add := func(rule domain.Rule, sev domain.Severity, path, msg string) {
		findings = append(findings, domain.Finding{
			Rule:     rule,
			Severity: sev,
			RecordID: rec.ID,
			Path:     path,
			Message:  msg,
		})
	}

	if strings.TrimSpace(rec.ID) == "" {
		add(domain.RuleMissingID, domain.SeverityError, "id", "record has no id")
	}
	if strings.TrimSpace(rec.Name) == "" {
		add(domain.RuleMissingPrimaryName, domain.SeverityError, "name", "primary-locale name is required")
	}
	if rec.Type != "" && !domain.KnownRecordType(rec.Type) {
		add(domain.RuleUnknownRecordType, domain.SeverityWarning, "type",
			fmt.Sprintf("unknown record type %q", rec.Type))
	}
	if rec.Status != "" && rec.Status != domain.StatusDraft &&
		rec.Status != domain.StatusPublished && rec.Status != domain.StatusArchived {
		add(domain.RuleUnknownStatus, domain.SeverityWarning, "status",
			fmt.Sprintf("unknown status %q", rec.Status))
	}

	v.validateLevels(rec, add)
	v.validateCitations(rec, add)
	v.validateMedia(rec, add)
	v.validateCrossRefShapes(rec, add)

	return findings
}

type addFunc func(rule domain.Rule, sev domain.Severity, path, msg string)

func (v *Validator) validateLevels(rec *domain.ContentRecord, add addFunc) {
	if len(rec.Levels) == 0 {
		add(domain.RuleEmptyLevels, domain.SeverityError, "levels", "record has no levels")
		return
	}

	// Gaps are detected by comparing the sorted distinct level numbers
	// against the maximal contiguous prefix 1..n.
	nums := rec.Levels.Numbers()
	if len(nums) != len(rec.Levels) {
		add(domain.RuleLevelGap, domain.SeverityError, "levels", "duplicate level numbers")
	}
	for i, n := range nums {
		if n != i+1 {
			add(domain.RuleLevelGap, domain.SeverityError, "levels",
				fmt.Sprintf("levels %v do not form a contiguous prefix: missing level %d", nums, i+1))
			break
		}
	}

	bilingual := recordTargetsBilingual(rec)

	for i := range rec.Levels {
		e := &rec.Levels[i]
		path := fmt.Sprintf("levels[%d]", e.Level)

		if e.Level < domain.MinLevel || e.Level > domain.MaxLevelNumber {
			add(domain.RuleLevelKeyMismatch, domain.SeverityError, path,
				fmt.Sprintf("level %d is outside 1..%d", e.Level, domain.MaxLevelNumber))
		}
		if e.SourceKey != 0 && e.SourceKey != e.Level {
			add(domain.RuleLevelKeyMismatch, domain.SeverityError, path,
				fmt.Sprintf("entry authored under key %d declares level %d", e.SourceKey, e.Level))
		}
		if strings.TrimSpace(e.Body()) == "" {
			add(domain.RuleMissingPrimaryBody, domain.SeverityError, path,
				"primary-locale body is required and non-empty")
		}
		if bilingual && !e.HasSpanish() {
			add(domain.RuleMissingSecondaryBody, domain.SeverityWarning, path+".contentEs",
				"record targets bilingual support but this level has no Spanish body")
		}

		v.validateKeyTerms(e, path, add)
		v.validateAdvisory(e.PatientCounselingPoints, path+".patientCounselingPoints", add)
		v.validateAdvisory(e.ClinicalNotes, path+".clinicalNotes", add)
	}
}

func (v *Validator) validateKeyTerms(e *domain.LevelEntry, path string, add addFunc) {
	seen := make(map[string]int, len(e.KeyTerms))
	for i, kt := range e.KeyTerms {
		key := strings.ToLower(strings.TrimSpace(kt.Term))
		if prev, dup := seen[key]; dup {
			add(domain.RuleDuplicateKeyTerm, domain.SeverityWarning,
				fmt.Sprintf("%s.keyTerms[%d].term", path, i),
				fmt.Sprintf("term %q duplicates keyTerms[%d] (case-insensitive)", kt.Term, prev))
			continue
		}
		seen[key] = i
	}
}

func (v *Validator) validateAdvisory(points []string, path string, add addFunc) {
	for i, p := range points {
		if strings.TrimSpace(p) == "" {
			add(domain.RuleEmptyAdvisoryPoint, domain.SeverityWarning,
				fmt.Sprintf("%s[%d]", path, i), "advisory entries must be non-empty")
		}
	}
}

func (v *Validator) validateCitations(rec *domain.ContentRecord, add addFunc) {
	// Future-dated access dates are judged against the record's updatedAt;
	// a record with no updatedAt is judged against the wall clock.
	ref := rec.UpdatedAt
	if ref.IsZero() {
		ref = v.now()
	}

	for i, c := range rec.Citations {
		if !validAbsoluteURL(c.URL) {
			add(domain.RuleInvalidCitationURL, domain.SeverityWarning,
				fmt.Sprintf("citations[%d].url", i),
				fmt.Sprintf("%q is not a valid absolute URL", c.URL))
		}
		if c.AccessedDate == "" {
			continue
		}
		accessed, err := c.ParseAccessedDate()
		if err != nil {
			add(domain.RuleInvalidCitationDate, domain.SeverityWarning,
				fmt.Sprintf("citations[%d].accessedDate", i),
				fmt.Sprintf("%q is not a valid timestamp", c.AccessedDate))
			continue
		}
		if accessed.After(ref) {
			add(domain.RuleCitationDateFuture, domain.SeverityWarning,
				fmt.Sprintf("citations[%d].accessedDate", i),
				fmt.Sprintf("accessed date %s is after the record's updatedAt", c.AccessedDate))
		}
	}
}

func (v *Validator) validateMedia(rec *domain.ContentRecord, add addFunc) {
	for i, m := range rec.Media {
		if !validAbsoluteURL(m.URL) {
			add(domain.RuleInvalidMediaURL, domain.SeverityWarning,
				fmt.Sprintf("media[%d].url", i),
				fmt.Sprintf("%q is not a valid absolute URL", m.URL))
		}
	}
}

// validateCrossRefShapes checks only what one record can know about its
// own references; target existence is the cross-reference pass's job.
func (v *Validator) validateCrossRefShapes(rec *domain.ContentRecord, add addFunc) {
	for i, xref := range rec.CrossReferences {
		if xref.Relationship != "" && !domain.KnownRelationship(xref.Relationship) {
			add(domain.RuleUnknownRelationship, domain.SeverityWarning,
				fmt.Sprintf("crossReferences[%d].relationship", i),
				fmt.Sprintf("unknown relationship %q", xref.Relationship))
		}
	}
}

// recordTargetsBilingual reports whether the record shows any intent to
// carry Spanish content. Missing Spanish bodies are only worth flagging
// for records that do; an English-only record is not incomplete.
func recordTargetsBilingual(rec *domain.ContentRecord) bool {
	if rec.NameEs != "" {
		return true
	}
	for _, e := range rec.Levels {
		if e.HasSpanish() {
			return true
		}
	}
	return false
}

func validAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
