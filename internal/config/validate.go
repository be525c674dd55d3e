package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a cleaned-up copy of cfg plus everything a
// UI should show the user before saving.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.Port < 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 0..65535")
	}

	if out.Remote.CacheTTLSeconds < 0 {
		res.addErr("remote.cache_ttl_seconds must be >= 0")
	}
	if out.Remote.RefreshHours < 0 {
		res.addErr("remote.refresh_hours must be >= 0")
	}
	if out.Remote.RedisURL != "" && out.Remote.DatabaseURL == "" {
		res.addWarn("remote.redis_url is set but remote.database_url is empty; the cache has nothing to cache.")
	}

	var dirs []Directory
	seen := map[string]bool{}
	for i, d := range out.Sources.Directories {
		d.Name = strings.TrimSpace(d.Name)
		d.URL = strings.TrimSpace(d.URL)
		if d.URL == "" {
			res.addErr("sources.directories[%d].url cannot be empty", i)
			continue
		}
		if d.Name == "" {
			res.addErr("sources.directories[%d].name cannot be empty", i)
			continue
		}
		if seen[strings.ToLower(d.URL)] {
			res.addWarn("duplicate directory url: %q", d.URL)
			continue
		}
		seen[strings.ToLower(d.URL)] = true
		dirs = append(dirs, d)
	}
	out.Sources.Directories = dirs

	if out.Scoring.RecommendMinScore < 0 || out.Scoring.RecommendMinScore > 100 {
		res.addErr("scoring.recommend_min_score must be 0..100")
	}
	if out.Scoring.GPAGraceBand < 0 || out.Scoring.GPAGraceBand > 1 {
		res.addErr("scoring.gpa_grace_band must be 0..1")
	}
	if out.Scoring.MinGRE < 0 {
		res.addErr("scoring.min_gre must be >= 0")
	}

	w := out.Scoring.Weights
	for name, val := range map[string]float64{
		"gpa": w.GPA, "experience": w.Experience, "specialty": w.Specialty,
		"certification": w.Certification, "shadowing": w.Shadowing,
		"prereqs": w.Prereqs, "gre": w.GRE,
	} {
		if val < 0 {
			res.addErr("scoring.weights.%s must be >= 0", name)
		}
	}

	if out.Retention.CatalogDays < 0 {
		res.addErr("retention.catalog_days must be >= 0")
	}

	return out, res
}
