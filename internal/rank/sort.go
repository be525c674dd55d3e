package rank

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"schoolscout-engine/internal/domain"
)

type SortKey string

const (
	SortByFitScore SortKey = "fitScore"
	SortByName     SortKey = "name"
	SortByDeadline SortKey = "deadline"
	SortByTuition  SortKey = "tuition"
)

type SortSpec struct {
	Key SortKey `json:"key"`
	Dir string  `json:"dir"` // asc | desc
}

// Annotated is a catalog record enriched for presentation.
type Annotated struct {
	domain.School
	Fit      FitScore `json:"fitScore"`
	IsSaved  bool     `json:"isSaved"`
	IsTarget bool     `json:"isTarget"`
}

// Sort returns a new, stably ordered slice; the input is never mutated.
// Unknown keys are a no-op so a bad spec degrades to the original order.
// Missing deadlines always sort last, in both directions.
func Sort(items []Annotated, spec SortSpec) []Annotated {
	out := make([]Annotated, len(items))
	copy(out, items)

	var cmp func(a, b Annotated) int
	switch spec.Key {
	case SortByName:
		coll := collate.New(language.English, collate.Loose)
		cmp = func(a, b Annotated) int { return coll.CompareString(a.Name, b.Name) }
	case SortByFitScore:
		cmp = func(a, b Annotated) int { return compareInt(a.Fit.Value, b.Fit.Value) }
	case SortByTuition:
		cmp = func(a, b Annotated) int { return compareFloat(a.EffectiveTuition(), b.EffectiveTuition()) }
	case SortByDeadline:
		cmp = compareDeadline
	default:
		return out
	}

	desc := spec.Dir == "desc"
	sort.SliceStable(out, func(i, j int) bool {
		// missing-deadline placement is direction-independent
		if spec.Key == SortByDeadline {
			in, jn := out[i].ApplicationDeadline == nil, out[j].ApplicationDeadline == nil
			if in != jn {
				return jn
			}
			if in && jn {
				return false
			}
		}
		c := cmp(out[i], out[j])
		if desc {
			c = -c
		}
		return c < 0
	})
	return out
}

func compareDeadline(a, b Annotated) int {
	switch {
	case a.ApplicationDeadline.Before(*b.ApplicationDeadline):
		return -1
	case a.ApplicationDeadline.After(*b.ApplicationDeadline):
		return 1
	default:
		return 0
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
