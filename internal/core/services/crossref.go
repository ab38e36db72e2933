package services

import (
	"fmt"

	"github.com/custodia-labs/claro-core/internal/core/domain"
)

// ResolveCrossRefs walks every indexed record's declared references and
// reports the ones that cannot be honored: dangling targets, self
// references, and parent/child pairs that contradict each other. It runs
// once per build, after per-record validation, so query time never has
// to re-check the graph.
//
// Dangling references are errors in strict mode and warnings otherwise;
// either way the referencing record stays in the registry and the query
// surface simply omits the unresolvable entries.
func ResolveCrossRefs(reg *domain.Registry, strict bool) *domain.CrossRefReport {
	report := &domain.CrossRefReport{}

	danglingSev := domain.SeverityWarning
	if strict {
		danglingSev = domain.SeverityError
	}

	for _, id := range reg.IDs() {
		rec, _ := reg.Get(id)
		for i, xref := range rec.CrossReferences {
			path := fmt.Sprintf("crossReferences[%d]", i)

			if xref.TargetID == "" {
				report.Dangling = append(report.Dangling, domain.DanglingRef{
					SourceID: id,
					Reason:   "empty target id",
				})
				report.Findings = append(report.Findings, domain.Finding{
					Rule:     domain.RuleDanglingCrossRef,
					Severity: danglingSev,
					RecordID: id,
					Path:     path + ".targetId",
					Message:  "cross-reference has an empty target id",
				})
				continue
			}

			if xref.TargetID == id {
				// Almost certainly an authoring error, never fatal.
				report.Findings = append(report.Findings, domain.Finding{
					Rule:     domain.RuleSelfReference,
					Severity: domain.SeverityWarning,
					RecordID: id,
					Path:     path,
					Message:  "record references itself",
				})
				continue
			}

			if !reg.Contains(xref.TargetID) {
				report.Dangling = append(report.Dangling, domain.DanglingRef{
					SourceID: id,
					TargetID: xref.TargetID,
					Reason:   "target not in registry",
				})
				report.Findings = append(report.Findings, domain.Finding{
					Rule:     domain.RuleDanglingCrossRef,
					Severity: danglingSev,
					RecordID: id,
					Path:     path,
					Message:  fmt.Sprintf("target %q does not exist", xref.TargetID),
				})
				continue
			}

			if conflict, ok := relationshipConflict(reg, id, xref); ok {
				report.Findings = append(report.Findings, domain.Finding{
					Rule:     domain.RuleRelationshipConflict,
					Severity: domain.SeverityWarning,
					RecordID: id,
					Path:     path,
					Message:  conflict,
				})
			}
		}
	}

	return report
}

// relationshipConflict applies the symmetry heuristic: A declaring B as
// parent while B declares A as parent (or child/child) cannot both be
// right. Reported once per unordered pair, from the lexically smaller
// source, so rebuilding from identical input yields identical findings.
func relationshipConflict(reg *domain.Registry, sourceID string, xref domain.CrossReference) (string, bool) {
	if xref.Relationship != domain.RelParent && xref.Relationship != domain.RelChild {
		return "", false
	}
	if sourceID >= xref.TargetID {
		return "", false
	}

	target, ok := reg.Get(xref.TargetID)
	if !ok {
		return "", false
	}
	for _, back := range target.CrossReferences {
		if back.TargetID == sourceID && back.Relationship == xref.Relationship {
			return fmt.Sprintf("%s declares %q as %s but %q declares %s as %s too",
				sourceID, xref.TargetID, xref.Relationship,
				xref.TargetID, sourceID, back.Relationship), true
		}
	}
	return "", false
}
