// Package source provides the school catalog providers and the fallback
// policy composing them.
package source

import (
	"context"
	"log"

	"schoolscout-engine/internal/domain"
)

type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.School, error)
}

// Composite tries each source in order and commits the first non-empty
// result. An error or zero rows falls through to the next provider, so the
// pipeline always has something to run against.
type Composite struct {
	Sources []Source
}

func (c Composite) Name() string { return "composite" }

func (c Composite) Fetch(ctx context.Context) ([]domain.School, error) {
	for _, s := range c.Sources {
		schools, err := s.Fetch(ctx)
		if err != nil {
			log.Printf("[source:%s] error, falling back: %v", s.Name(), err)
			continue
		}
		if len(schools) == 0 {
			log.Printf("[source:%s] empty, falling back", s.Name())
			continue
		}
		return schools, nil
	}
	return nil, nil
}
