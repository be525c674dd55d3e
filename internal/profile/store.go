package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"

	"schoolscout-engine/internal/domain"
	"schoolscout-engine/internal/store"
)

const profileKey = "schoolscout:profile"

// Fragments is the persisted shape: the three profile sources as entered.
// The flat Profile is rebuilt on every scoring pass, never stored.
type Fragments struct {
	Academic domain.AcademicRecord `json:"academic"`
	Clinical domain.ClinicalRecord `json:"clinical"`
	Unit     domain.UnitContext    `json:"unit"`
}

// Store keeps the applicant's profile fragments in the local kv table.
type Store struct {
	DB *sql.DB
}

// Load returns the persisted fragments; anything unreadable is coerced to
// the empty (all-unknown) profile.
func (s Store) Load(ctx context.Context) Fragments {
	var f Fragments
	raw, err := store.GetKV(ctx, s.DB, profileKey)
	if err != nil || raw == "" {
		return f
	}
	if jerr := json.Unmarshal([]byte(raw), &f); jerr != nil {
		log.Printf("[profile] corrupt profile cache, resetting: %v", jerr)
		return Fragments{}
	}
	return f
}

func (s Store) Save(ctx context.Context, f Fragments) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return store.SetKV(ctx, s.DB, profileKey, string(b))
}

// Current loads the fragments and aggregates them for scoring.
func (s Store) Current(ctx context.Context) domain.Profile {
	f := s.Load(ctx)
	return Aggregate(f.Academic, f.Clinical, f.Unit)
}
