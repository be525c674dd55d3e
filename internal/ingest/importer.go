package ingest

import (
	"context"
	"database/sql"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"schoolscout-engine/internal/config"
	"schoolscout-engine/internal/domain"
	"schoolscout-engine/internal/store"
)

const connectorTimeout = 5 * time.Minute

// RunImport fans the configured connectors out, then upserts everything
// they returned into the local catalog. A failing connector is logged and
// skipped; the others still land.
func RunImport(ctx context.Context, db *sql.DB, cfg config.Config) (added int, err error) {
	limiter := NewHostLimiter(1.0, 2)

	var connectors []Connector
	for _, dir := range cfg.Sources.Directories {
		connectors = append(connectors, NewDirectoryConnector(dir, limiter))
	}
	if len(connectors) == 0 {
		return 0, nil
	}

	type result struct {
		name     string
		programs []domain.School
	}

	var g errgroup.Group
	results := make(chan result, len(connectors))

	for _, c := range connectors {
		c := c
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, connectorTimeout)
			defer cancel()

			log.Printf("[%s] running...", c.Name())
			programs, err := c.ListPrograms(cctx)
			if err != nil {
				log.Printf("[%s] error: %v", c.Name(), err)
				return nil
			}
			results <- result{name: c.Name(), programs: programs}
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	insertCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for res := range results {
		for _, s := range res.programs {
			ok, ierr := store.UpsertSchool(insertCtx, db, s)
			if ierr != nil {
				log.Printf("[%s] insert error id=%s: %v", res.name, s.ID, ierr)
				continue
			}
			if ok {
				added++
			}
		}
		log.Printf("[%s] done programs=%d", res.name, len(res.programs))
	}
	return added, nil
}
