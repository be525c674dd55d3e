// Package ingest imports program records from external directories into
// the local catalog, which serves as a school source when no remote store
// is configured.
package ingest

import (
	"context"

	"schoolscout-engine/internal/domain"
)

type Connector interface {
	Name() string
	ListPrograms(ctx context.Context) ([]domain.School, error)
}
