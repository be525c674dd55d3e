package rank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolscout-engine/internal/config"
	"schoolscout-engine/internal/domain"
	"schoolscout-engine/internal/rank"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }
func b(v bool) *bool         { return &v }
func str(v string) *string   { return &v }

func scorer() rank.WeightedScorer {
	return rank.WeightedScorer{Cfg: config.Config{}} // compiled-in defaults
}

func fullProfile() domain.Profile {
	return domain.Profile{
		AcademicRecord: domain.AcademicRecord{
			CumulativeGPA: f64(3.8),
			GREScore:      i(315),
		},
		ClinicalRecord: domain.ClinicalRecord{
			UnitType:     str("ICU"),
			ICUYears:     f64(3),
			HasCCRN:      b(true),
			ShadowedCRNA: b(true),
		},
		PrereqsKnown: true,
		PrereqsDone: map[string]bool{
			"organic_chem": true, "biochem": true, "statistics": true, "physics": true,
		},
	}
}

func demandingSchool() domain.School {
	return domain.School{
		ID: "x", Name: "X",
		MinGPA:      f64(3.0),
		MinICUYears: f64(1),
		GRERequired: true, // no waiver
		RequiresCCRN:        true,
		RequiresShadowing:   true,
		RequiresOrganicChem: true,
		RequiresStatistics:  true,
	}
}

func TestScore_FullMatchIsHundred(t *testing.T) {
	fit := scorer().Score(demandingSchool(), fullProfile())
	assert.Equal(t, 100, fit.Value)
	for _, r := range fit.Breakdown {
		require.NotNil(t, r.Matched, "criterion %s should be known", r.Criterion)
		assert.True(t, *r.Matched, "criterion %s should match", r.Criterion)
	}
}

func TestScore_EmptyProfileScoresZeroWithEmptyBreakdown(t *testing.T) {
	// nothing is known, so no criterion can enter the denominator
	fit := scorer().Score(demandingSchool(), domain.Profile{})
	assert.Equal(t, 0, fit.Value)
	assert.Empty(t, fit.Breakdown)
}

func TestScore_UnknownCriterionIsNeutral(t *testing.T) {
	// an unanswered criterion must score exactly like a school that never
	// had the criterion: it leaves the numerator and denominator together
	p := fullProfile()
	p.GREScore = nil
	p.HasCCRN = b(false) // keep the score off 100 so the comparison means something

	withCriterion := demandingSchool() // GRE required, no waiver
	withoutCriterion := demandingSchool()
	withoutCriterion.GRERequired = false

	unknown := scorer().Score(withCriterion, p)
	absent := scorer().Score(withoutCriterion, p)
	assert.Equal(t, absent.Value, unknown.Value)

	// the unknown criterion still appears in the breakdown, unmatched-unknown
	var greRow *rank.CriterionResult
	for idx := range unknown.Breakdown {
		if unknown.Breakdown[idx].Criterion == "gre" {
			greRow = &unknown.Breakdown[idx]
		}
	}
	require.NotNil(t, greRow)
	assert.Nil(t, greRow.Matched)
}

func TestScore_BoundsUnderPartialFailure(t *testing.T) {
	p := fullProfile()
	p.CumulativeGPA = f64(2.0) // far below every minimum
	p.HasCCRN = b(false)
	p.ShadowedCRNA = b(false)
	p.GREScore = i(260)
	p.PrereqsDone = map[string]bool{}

	fit := scorer().Score(demandingSchool(), p)
	assert.GreaterOrEqual(t, fit.Value, 0)
	assert.LessOrEqual(t, fit.Value, 100)
	assert.Less(t, fit.Value, 100)
}

func TestScore_GPAGraceBandGivesHalfCredit(t *testing.T) {
	school := domain.School{ID: "g", MinGPA: f64(3.5)}

	at := scorer().Score(school, domain.Profile{
		AcademicRecord: domain.AcademicRecord{CumulativeGPA: f64(3.5)},
		ClinicalRecord: domain.ClinicalRecord{UnitType: str("ICU")},
	})
	within := scorer().Score(school, domain.Profile{
		AcademicRecord: domain.AcademicRecord{CumulativeGPA: f64(3.35)},
		ClinicalRecord: domain.ClinicalRecord{UnitType: str("ICU")},
	})
	below := scorer().Score(school, domain.Profile{
		AcademicRecord: domain.AcademicRecord{CumulativeGPA: f64(3.1)},
		ClinicalRecord: domain.ClinicalRecord{UnitType: str("ICU")},
	})

	assert.Greater(t, at.Value, within.Value)
	assert.Greater(t, within.Value, below.Value)
}

func TestScore_WaivableGREIsNotScored(t *testing.T) {
	school := domain.School{ID: "w", GRERequired: true, GREWaiver: str("substitute GPA")}
	fit := scorer().Score(school, fullProfile())
	for _, r := range fit.Breakdown {
		assert.NotEqual(t, "gre", r.Criterion, "waivable GRE must not appear in the breakdown")
	}
}

func TestScore_PrereqsPartialFraction(t *testing.T) {
	school := domain.School{
		ID:                  "p",
		RequiresOrganicChem: true,
		RequiresBiochem:     true,
	}
	p := domain.Profile{
		ClinicalRecord: domain.ClinicalRecord{UnitType: str("ICU")},
		PrereqsKnown:   true,
		PrereqsDone:    map[string]bool{"organic_chem": true},
	}

	fit := scorer().Score(school, p)
	var row *rank.CriterionResult
	for idx := range fit.Breakdown {
		if fit.Breakdown[idx].Criterion == "prereqs" {
			row = &fit.Breakdown[idx]
		}
	}
	require.NotNil(t, row)
	assert.InDelta(t, 0.5, row.Fraction, 1e-9)
	require.NotNil(t, row.Matched)
	assert.False(t, *row.Matched)
}

func TestScore_UnitTypeMapping(t *testing.T) {
	school := domain.School{ID: "u", AcceptsNICU: false, AcceptsOtherICU: false}

	cases := []struct {
		unit string
		want int
	}{
		{"ICU", 100},   // adult critical care always accepted
		{"cvicu", 100}, // case-insensitive
		{"NICU", 0},    // school does not take NICU
		{"burn unit", 0}, // falls to other-ICU, which is off
	}
	for _, tc := range cases {
		fit := scorer().Score(school, domain.Profile{
			ClinicalRecord: domain.ClinicalRecord{UnitType: str(tc.unit)},
		})
		assert.Equal(t, tc.want, fit.Value, "unit %q", tc.unit)
	}
}
