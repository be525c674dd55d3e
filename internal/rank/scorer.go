package rank

import "schoolscout-engine/internal/domain"

// Scorer computes a 0-100 fit score for one school against one profile.
type Scorer interface {
	Score(school domain.School, profile domain.Profile) FitScore
}

// FitScore is the score plus the per-criterion breakdown explaining it.
type FitScore struct {
	Value     int               `json:"value"`
	Breakdown []CriterionResult `json:"breakdown"`
}

// CriterionResult records how one weighted criterion was evaluated.
// Matched is nil when the profile lacked the data to evaluate it; such
// criteria carry no weight in either direction.
type CriterionResult struct {
	Criterion string  `json:"criterion"`
	Matched   *bool   `json:"matched"`
	Weight    float64 `json:"weight"`
	Fraction  float64 `json:"fraction"`
}
