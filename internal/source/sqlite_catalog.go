package source

import (
	"context"
	"database/sql"

	"schoolscout-engine/internal/domain"
	"schoolscout-engine/internal/store"
)

// CatalogSource serves programs previously imported into the local sqlite
// catalog by the directory importer. Sits between the remote store and the
// static seed in the fallback chain.
type CatalogSource struct {
	DB *sql.DB
}

func (c CatalogSource) Name() string { return "catalog" }

func (c CatalogSource) Fetch(ctx context.Context) ([]domain.School, error) {
	return store.ListCatalog(ctx, c.DB)
}
