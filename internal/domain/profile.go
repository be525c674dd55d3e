package domain

// Profile fragments. Pointers everywhere: nil means "unknown", and unknown
// never counts for or against a school when scoring.

type AcademicRecord struct {
	CumulativeGPA *float64 `json:"cumulativeGpa" validate:"omitempty,gte=0,lte=5"`
	ScienceGPA    *float64 `json:"scienceGpa" validate:"omitempty,gte=0,lte=5"`
	NursingGPA    *float64 `json:"nursingGpa" validate:"omitempty,gte=0,lte=5"`
	GraduateGPA   *float64 `json:"graduateGpa" validate:"omitempty,gte=0,lte=5"`
	Last60GPA     *float64 `json:"last60Gpa" validate:"omitempty,gte=0,lte=5"`
	GREScore      *int     `json:"greScore" validate:"omitempty,gte=260,lte=340"`
}

type ClinicalRecord struct {
	UnitType     *string  `json:"unitType"` // NICU / PICU / ER / ICU / ...
	ICUYears     *float64 `json:"icuYears" validate:"omitempty,gte=0,lte=60"`
	HasCCRN      *bool    `json:"hasCcrn"`
	ShadowedCRNA *bool    `json:"shadowedCrna"`
}

type UnitContext struct {
	State          *string  `json:"state" validate:"omitempty,len=2"`
	PrereqsDone    []string `json:"prereqsDone"` // requirement keys, see PrereqKeys
	WantsWorkHours *bool    `json:"wantsWorkHours"`
}

// Profile is the flat merge the scoring engine consumes. Only fields some
// scoring criterion reads belong here; unit-context answers the engine does
// not score (home state, work-hour preference) stay on the fragments.
type Profile struct {
	AcademicRecord
	ClinicalRecord

	PrereqsDone map[string]bool `json:"prereqsDone"`
	// PrereqsKnown is false when the unit context carried no prerequisite
	// information at all, so prereq criteria stay "unknown" instead of
	// reading an empty set as "nothing completed".
	PrereqsKnown bool `json:"prereqsKnown"`
}
