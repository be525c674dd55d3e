package domain

import "time"

type ProgramType string

const (
	ProgramFrontLoaded ProgramType = "front_loaded"
	ProgramIntegrated  ProgramType = "integrated"
)

// School is one CRNA program in the catalog.
// GRERequired + GREWaiver together encode the GRE tri-state: not required
// (GRERequired=false), required (GRERequired=true, GREWaiver=nil), required
// but waivable (GRERequired=true, GREWaiver names the waiver path).
type School struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`

	TuitionInState    *float64 `json:"tuitionInState"`
	TuitionOutOfState *float64 `json:"tuitionOutOfState"`

	GRERequired bool    `json:"greRequired"`
	GREWaiver   *string `json:"greWaiver"`

	RequiresCCRN        bool `json:"requiresCcrn"`
	RequiresShadowing   bool `json:"requiresShadowing"`
	RequiresOrganicChem bool `json:"requiresOrganicChem"`
	RequiresBiochem     bool `json:"requiresBiochem"`
	RequiresStatistics  bool `json:"requiresStatistics"`
	RequiresPhysics     bool `json:"requiresPhysics"`

	AcceptsNICU     bool `json:"acceptsNicu"`
	AcceptsPICU     bool `json:"acceptsPicu"`
	AcceptsER       bool `json:"acceptsEr"`
	AcceptsOtherICU bool `json:"acceptsOtherIcu"`

	ProgramType ProgramType `json:"programType"`

	GPAScience    bool `json:"gpaScience"`
	GPANursing    bool `json:"gpaNursing"`
	GPACumulative bool `json:"gpaCumulative"`
	GPAGraduate   bool `json:"gpaGraduate"`
	GPALast60     bool `json:"gpaLast60"`

	AllowsWorkDuring   bool `json:"allowsWorkDuring"`
	UsesNursingCAS     bool `json:"usesNursingCas"`
	RollingAdmissions  bool `json:"rollingAdmissions"`
	PartiallyOnline    bool `json:"partiallyOnline"`
	AcceptsRelatedBach bool `json:"acceptsRelatedBach"`

	MinGPA      *float64 `json:"minGpa"`
	MinICUYears *float64 `json:"minIcuYears"`

	ApplicationDeadline *time.Time `json:"applicationDeadline"`
}

// EffectiveTuition is the single number used by the tuition filter and sort:
// in-state if present, else out-of-state, else 0.
func (s School) EffectiveTuition() float64 {
	if s.TuitionInState != nil {
		return *s.TuitionInState
	}
	if s.TuitionOutOfState != nil {
		return *s.TuitionOutOfState
	}
	return 0
}

// GREWaivable reports whether a waiver path exists.
func (s School) GREWaivable() bool { return s.GREWaiver != nil }

// RequirementFlag resolves a requirement key ("ccrn", "shadowing", ...) to the
// school's boolean field. Unmapped keys return (false, false) so callers can
// skip them instead of failing.
func (s School) RequirementFlag(key string) (value, ok bool) {
	switch key {
	case "gre":
		return s.GRERequired, true
	case "ccrn":
		return s.RequiresCCRN, true
	case "shadowing":
		return s.RequiresShadowing, true
	case "organic_chem":
		return s.RequiresOrganicChem, true
	case "biochem":
		return s.RequiresBiochem, true
	case "statistics":
		return s.RequiresStatistics, true
	case "physics":
		return s.RequiresPhysics, true
	}
	return false, false
}

// PrereqKeys lists the prerequisite-subject requirement keys, in catalog order.
var PrereqKeys = []string{"organic_chem", "biochem", "statistics", "physics"}
