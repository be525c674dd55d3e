package rank

import (
	"math"
	"strings"

	"schoolscout-engine/internal/config"
	"schoolscout-engine/internal/domain"
)

// WeightedScorer evaluates each school's weighted criteria against the
// applicant profile. The central rule: criteria the profile cannot answer are
// excluded from both numerator and denominator, so an incomplete profile
// shrinks the scale instead of dragging the score down.
type WeightedScorer struct {
	Cfg config.Config
}

func (s WeightedScorer) Score(school domain.School, profile domain.Profile) FitScore {
	w := s.Cfg.Scoring.Weights.OrDefault()
	grace := s.Cfg.Scoring.GPAGraceBand
	if grace <= 0 {
		grace = 0.2
	}
	minGRE := s.Cfg.Scoring.MinGRE
	if minGRE <= 0 {
		minGRE = 300
	}

	var results []CriterionResult
	var num, den float64

	add := func(criterion string, weight float64, fraction float64, known bool) {
		if weight <= 0 {
			return
		}
		r := CriterionResult{Criterion: criterion, Weight: weight}
		if known {
			r.Fraction = fraction
			matched := fraction >= 1
			r.Matched = &matched
			num += weight * fraction
			den += weight
		}
		results = append(results, r)
	}

	if school.MinGPA != nil {
		if profile.CumulativeGPA == nil {
			add("gpa", w.GPA, 0, false)
		} else {
			add("gpa", w.GPA, thresholdFraction(*profile.CumulativeGPA, *school.MinGPA, grace), true)
		}
	}

	if school.MinICUYears != nil {
		if profile.ICUYears == nil {
			add("experience", w.Experience, 0, false)
		} else {
			add("experience", w.Experience, thresholdFraction(*profile.ICUYears, *school.MinICUYears, *school.MinICUYears/2), true)
		}
	}

	if profile.UnitType == nil {
		add("specialty", w.Specialty, 0, false)
	} else {
		add("specialty", w.Specialty, boolFraction(unitAccepted(school, *profile.UnitType)), true)
	}

	if school.RequiresCCRN {
		if profile.HasCCRN == nil {
			add("ccrn", w.Certification, 0, false)
		} else {
			add("ccrn", w.Certification, boolFraction(*profile.HasCCRN), true)
		}
	}

	if school.RequiresShadowing {
		if profile.ShadowedCRNA == nil {
			add("shadowing", w.Shadowing, 0, false)
		} else {
			add("shadowing", w.Shadowing, boolFraction(*profile.ShadowedCRNA), true)
		}
	}

	if required := requiredPrereqs(school); len(required) > 0 {
		if !profile.PrereqsKnown {
			add("prereqs", w.Prereqs, 0, false)
		} else {
			done := 0
			for _, k := range required {
				if profile.PrereqsDone[k] {
					done++
				}
			}
			add("prereqs", w.Prereqs, float64(done)/float64(len(required)), true)
		}
	}

	// A waivable GRE is not score-relevant: the applicant always has a path.
	if school.GRERequired && !school.GREWaivable() {
		if profile.GREScore == nil {
			add("gre", w.GRE, 0, false)
		} else {
			add("gre", w.GRE, thresholdFraction(float64(*profile.GREScore), float64(minGRE), 10), true)
		}
	}

	if den == 0 {
		return FitScore{Value: 0}
	}
	return FitScore{
		Value:     int(math.Round(100 * num / den)),
		Breakdown: results,
	}
}

// thresholdFraction gives full credit at or above min, half credit within
// the grace band below it, nothing further down.
func thresholdFraction(got, min, grace float64) float64 {
	switch {
	case got >= min:
		return 1
	case got >= min-grace:
		return 0.5
	default:
		return 0
	}
}

func boolFraction(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func unitAccepted(s domain.School, unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "nicu":
		return s.AcceptsNICU
	case "picu":
		return s.AcceptsPICU
	case "er", "ed":
		return s.AcceptsER
	case "icu", "sicu", "micu", "cvicu", "ccu":
		// adult critical care is the baseline unit every program accepts
		return true
	default:
		return s.AcceptsOtherICU
	}
}

func requiredPrereqs(s domain.School) []string {
	var out []string
	for _, k := range domain.PrereqKeys {
		if v, ok := s.RequirementFlag(k); ok && v {
			out = append(out, k)
		}
	}
	return out
}
