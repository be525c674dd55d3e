// Package refresh drives the periodic catalog refresh and directory import.
package refresh

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"schoolscout-engine/internal/config"
	"schoolscout-engine/internal/ingest"
	"schoolscout-engine/internal/schools"
)

// Refresher wraps robfig/cron around the schools service.
type Refresher struct {
	cron   *cron.Cron
	svc    *schools.Service
	db     *sql.DB
	cfgVal *atomic.Value // stores config.Config
	spec   string
}

func New(svc *schools.Service, db *sql.DB, cfgVal *atomic.Value, intervalHours int) *Refresher {
	if intervalHours <= 0 {
		intervalHours = 6
	}
	return &Refresher{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		svc:    svc,
		db:     db,
		cfgVal: cfgVal,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and fires one refresh immediately so the engine
// never serves an empty snapshot while waiting for the first tick.
func (r *Refresher) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.spec, func() { r.RunOnce(ctx) })
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	r.cron.Start()
	log.Printf("[refresh] cron started spec=%s", r.spec)

	go r.RunOnce(ctx)
	return nil
}

func (r *Refresher) Stop() {
	r.cron.Stop()
	log.Println("[refresh] cron stopped")
}

// RunOnce imports the configured directories into the local catalog, then
// refreshes the serving snapshot through the source chain.
func (r *Refresher) RunOnce(ctx context.Context) {
	cfg, _ := r.cfgVal.Load().(config.Config)

	if added, err := ingest.RunImport(ctx, r.db, cfg); err != nil {
		log.Printf("[refresh] import error: %v", err)
	} else if added > 0 {
		log.Printf("[refresh] import added=%d", added)
	}

	if err := r.svc.Refresh(ctx); err != nil {
		log.Printf("[refresh] snapshot error: %v", err)
	}
}
