// Package profile builds the flat applicant profile consumed by scoring.
package profile

import "schoolscout-engine/internal/domain"

// Aggregate merges the three profile fragments into one flat Profile.
// Pure shallow merge; the fragments are disjoint by key namespace, so
// there is nothing to resolve. Missing fields stay nil and mean "unknown".
// Unit-context fields no scoring criterion reads are left on the fragment.
func Aggregate(a domain.AcademicRecord, c domain.ClinicalRecord, u domain.UnitContext) domain.Profile {
	p := domain.Profile{
		AcademicRecord: a,
		ClinicalRecord: c,
	}

	if u.PrereqsDone != nil {
		p.PrereqsKnown = true
		p.PrereqsDone = make(map[string]bool, len(u.PrereqsDone))
		for _, k := range u.PrereqsDone {
			p.PrereqsDone[k] = true
		}
	}
	return p
}
