package source

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"schoolscout-engine/internal/domain"
)

//go:embed seed.json
var seedJSON []byte

// StaticSource serves the compiled-in catalog. It is the last provider in
// the fallback chain and cannot fail at runtime.
type StaticSource struct{}

func (StaticSource) Name() string { return "static" }

func (StaticSource) Fetch(_ context.Context) ([]domain.School, error) {
	var schools []domain.School
	if err := json.Unmarshal(seedJSON, &schools); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}
	return schools, nil
}
