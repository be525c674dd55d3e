// Package filter implements the school filter pipeline: a school survives
// only if it passes every active filter group.
package filter

import (
	"strings"

	"schoolscout-engine/internal/domain"
)

// Apply returns the order-preserving subsequence of schools matching c.
func Apply(schools []domain.School, c Criteria) []domain.School {
	out := make([]domain.School, 0, len(schools))
	for _, s := range schools {
		if Matches(s, c) {
			out = append(out, s)
		}
	}
	return out
}

// Matches reports whether one school passes every active group in c.
func Matches(s domain.School, c Criteria) bool {
	return passesSearch(s, c) &&
		passesStates(s, c) &&
		passesTuition(s, c) &&
		passesGRE(s, c) &&
		passesRequires(s, c) &&
		passesDoesNotRequire(s, c) &&
		passesSpecialty(s, c) &&
		passesProgramType(s, c) &&
		passesGPATypes(s, c) &&
		passesOther(s, c)
}

// search: case-insensitive substring over name OR city OR state.
func passesSearch(s domain.School, c Criteria) bool {
	q := strings.ToLower(strings.TrimSpace(c.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.City), q) ||
		strings.Contains(strings.ToLower(s.State), q)
}

func passesStates(s domain.School, c Criteria) bool {
	if len(c.States) == 0 {
		return true
	}
	for _, st := range c.States {
		if strings.EqualFold(st, s.State) {
			return true
		}
	}
	return false
}

// tuition: always active, inclusive range over effective tuition. A
// malformed range (max not above 0) degrades to unbounded rather than
// excluding everything.
func passesTuition(s domain.School, c Criteria) bool {
	t := s.EffectiveTuition()
	if t < c.TuitionMin {
		return false
	}
	if c.TuitionMax <= 0 {
		return true
	}
	return t <= c.TuitionMax
}

// GRE: OR across the checked boxes. "required" means required with no
// waiver path; "waived" is its own branch, not a sub-case of "required".
func passesGRE(s domain.School, c Criteria) bool {
	if !c.GRENotRequired && !c.GRERequired && !c.GREWaived {
		return true
	}
	if c.GRENotRequired && !s.GRERequired {
		return true
	}
	if c.GRERequired && s.GRERequired && !s.GREWaivable() {
		return true
	}
	if c.GREWaived && s.GREWaivable() {
		return true
	}
	return false
}

// requires: AND — every selected requirement must be present. Unmapped keys
// are skipped, not failed.
func passesRequires(s domain.School, c Criteria) bool {
	for _, key := range c.Requires {
		v, ok := s.RequirementFlag(key)
		if !ok {
			continue
		}
		if !v {
			return false
		}
	}
	return true
}

// does-not-require: AND over negation.
func passesDoesNotRequire(s domain.School, c Criteria) bool {
	for _, key := range c.DoesNotRequire {
		v, ok := s.RequirementFlag(key)
		if !ok {
			continue
		}
		if v {
			return false
		}
	}
	return true
}

// specialty: each checked box is independently required (AND), unlike GRE.
func passesSpecialty(s domain.School, c Criteria) bool {
	if c.AcceptsNICU && !s.AcceptsNICU {
		return false
	}
	if c.AcceptsPICU && !s.AcceptsPICU {
		return false
	}
	if c.AcceptsER && !s.AcceptsER {
		return false
	}
	if c.AcceptsOtherICU && !s.AcceptsOtherICU {
		return false
	}
	return true
}

// program type: OR across the checked types.
func passesProgramType(s domain.School, c Criteria) bool {
	if !c.FrontLoaded && !c.Integrated {
		return true
	}
	if c.FrontLoaded && s.ProgramType == domain.ProgramFrontLoaded {
		return true
	}
	if c.Integrated && s.ProgramType == domain.ProgramIntegrated {
		return true
	}
	return false
}

func passesGPATypes(s domain.School, c Criteria) bool {
	if c.GPAScience && !s.GPAScience {
		return false
	}
	if c.GPANursing && !s.GPANursing {
		return false
	}
	if c.GPACumulative && !s.GPACumulative {
		return false
	}
	if c.GPAGraduate && !s.GPAGraduate {
		return false
	}
	if c.GPALast60 && !s.GPALast60 {
		return false
	}
	return true
}

func passesOther(s domain.School, c Criteria) bool {
	if c.AllowsWorkDuring && !s.AllowsWorkDuring {
		return false
	}
	if c.UsesNursingCAS && !s.UsesNursingCAS {
		return false
	}
	if c.RollingAdmissions && !s.RollingAdmissions {
		return false
	}
	if c.PartiallyOnline && !s.PartiallyOnline {
		return false
	}
	if c.AcceptsRelatedBach && !s.AcceptsRelatedBach {
		return false
	}
	return true
}
