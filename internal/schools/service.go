// Package schools composes the catalog pipeline: source snapshot ->
// per-school fit score -> filter -> view-mode gate -> sort -> saved/target
// annotation.
package schools

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"schoolscout-engine/internal/config"
	"schoolscout-engine/internal/domain"
	"schoolscout-engine/internal/events"
	"schoolscout-engine/internal/filter"
	"schoolscout-engine/internal/profile"
	"schoolscout-engine/internal/rank"
	"schoolscout-engine/internal/saved"
)

// ViewModeRecommended gates the list to schools scoring at or above the
// configured threshold.
const ViewModeRecommended = "recommended"

type RefreshStatus struct {
	LastRunAt  string `json:"last_run_at"`
	LastOkAt   string `json:"last_ok_at"`
	LastError  string `json:"last_error"`
	LastSource string `json:"last_source"`
	LastCount  int    `json:"last_count"`
	Running    bool   `json:"running"`
}

type Service struct {
	CfgVal   *atomic.Value // stores config.Config
	Source   SchoolSource
	Saved    *saved.Store
	Profiles profile.Store
	Hub      *events.Hub

	mu       sync.Mutex
	snapshot []domain.School
	// committedGen enforces last-write-wins: a fetch that started before a
	// newer commit is discarded when it finally lands.
	nextGen      uint64
	committedGen uint64

	status atomic.Value // stores RefreshStatus
}

// SchoolSource matches source.Source without importing it, so tests can
// plug in fakes.
type SchoolSource interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.School, error)
}

// Refresh fetches the catalog and swaps the snapshot unless a newer fetch
// already committed. Never leaves the pipeline without a list: on error the
// previous snapshot stays in place.
func (s *Service) Refresh(ctx context.Context) error {
	gen := atomic.AddUint64(&s.nextGen, 1)

	st := s.Status()
	st.Running = true
	st.LastRunAt = time.Now().Format(time.RFC3339)
	s.status.Store(st)

	schools, err := s.Source.Fetch(ctx)

	st = s.Status()
	st.Running = false
	if err != nil {
		st.LastError = err.Error()
		s.status.Store(st)
		log.Printf("[schools] refresh error: %v", err)
		return err
	}

	s.mu.Lock()
	committed := gen > s.committedGen
	if committed {
		s.committedGen = gen
		s.snapshot = schools
	}
	s.mu.Unlock()

	if !committed {
		// superseded in-flight result: a newer fetch already landed, so the
		// ok-fields describe that one, not this one
		s.status.Store(st)
		return nil
	}

	st.LastError = ""
	st.LastOkAt = time.Now().Format(time.RFC3339)
	st.LastSource = s.Source.Name()
	st.LastCount = len(schools)
	s.status.Store(st)

	log.Printf("[schools] refresh ok count=%d", len(schools))
	if s.Hub != nil {
		s.Hub.Publish(events.MakeEvent("", events.TypeCatalogRefreshed, 1,
			map[string]any{"count": len(schools)}))
	}
	return nil
}

// Snapshot returns the current school list (possibly the fallback catalog).
func (s *Service) Snapshot() []domain.School {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.School(nil), s.snapshot...)
}

func (s *Service) Status() RefreshStatus {
	if v := s.status.Load(); v != nil {
		return v.(RefreshStatus)
	}
	return RefreshStatus{}
}

// Query runs the full pipeline for the current applicant profile.
func (s *Service) Query(ctx context.Context, criteria filter.Criteria, sortSpec rank.SortSpec, viewMode string) []rank.Annotated {
	cfg, _ := s.CfgVal.Load().(config.Config)
	scorer := rank.WeightedScorer{Cfg: cfg}
	prof := s.Profiles.Current(ctx)

	kept := filter.Apply(s.Snapshot(), criteria)

	annotated := make([]rank.Annotated, 0, len(kept))
	for _, school := range kept {
		fit := scorer.Score(school, prof)
		if viewMode == ViewModeRecommended && fit.Value < cfg.RecommendMinScore() {
			continue
		}
		annotated = append(annotated, rank.Annotated{
			School:   school,
			Fit:      fit,
			IsSaved:  s.Saved.IsSaved(school.ID),
			IsTarget: s.Saved.IsTarget(school.ID),
		})
	}

	return rank.Sort(annotated, sortSpec)
}
