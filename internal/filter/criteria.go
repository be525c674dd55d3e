package filter

// Criteria is the typed filter object. Every field is opt-in: the zero value
// of a group deactivates it, and Default() matches every school. The tuition
// range is always evaluated, but a non-positive max means unbounded, so the
// zero value still excludes nothing.
//
// Group semantics (pinned by the tests in filter_test.go):
//   - GRE and program-type groups are OR within the group;
//   - every other group is AND within the group;
//   - active groups are always ANDed with each other.
type Criteria struct {
	Search string   `json:"search"`
	States []string `json:"states" validate:"dive,len=2"`

	TuitionMin float64 `json:"tuitionMin" validate:"gte=0"`
	TuitionMax float64 `json:"tuitionMax" validate:"gte=0"`

	GRENotRequired bool `json:"greNotRequired"`
	GRERequired    bool `json:"greRequired"`
	GREWaived      bool `json:"greWaived"`

	Requires       []string `json:"requires"`
	DoesNotRequire []string `json:"doesNotRequire"`

	AcceptsNICU     bool `json:"acceptsNicu"`
	AcceptsPICU     bool `json:"acceptsPicu"`
	AcceptsER       bool `json:"acceptsEr"`
	AcceptsOtherICU bool `json:"acceptsOtherIcu"`

	FrontLoaded bool `json:"frontLoaded"`
	Integrated  bool `json:"integrated"`

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
}

// Default returns criteria that match every school.
func Default() Criteria {
	return Criteria{}
}
