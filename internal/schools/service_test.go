package schools_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolscout-engine/internal/config"
	"schoolscout-engine/internal/domain"
	"schoolscout-engine/internal/filter"
	"schoolscout-engine/internal/profile"
	"schoolscout-engine/internal/rank"
	"schoolscout-engine/internal/saved"
	"schoolscout-engine/internal/schools"
	"schoolscout-engine/internal/store"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

type fakeSource struct {
	fetch func(ctx context.Context) ([]domain.School, error)
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Fetch(ctx context.Context) ([]domain.School, error) {
	return f.fetch(ctx)
}

func fixedSource(schoolList ...domain.School) *fakeSource {
	return &fakeSource{fetch: func(context.Context) ([]domain.School, error) {
		return schoolList, nil
	}}
}

func newTestService(t *testing.T, src schools.SchoolSource) (*schools.Service, profile.Store) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))

	var cfgVal atomic.Value
	cfgVal.Store(config.Config{})

	profiles := profile.Store{DB: db.Pool}
	svc := &schools.Service{
		CfgVal:   &cfgVal,
		Source:   src,
		Saved:    saved.New(saved.SQLiteLocal{DB: db.Pool}, nil, nil),
		Profiles: profiles,
	}
	return svc, profiles
}

func TestRefresh_SwapsSnapshot(t *testing.T) {
	svc, _ := newTestService(t, fixedSource(domain.School{ID: "a", Name: "Alpha"}))
	ctx := context.Background()

	require.Empty(t, svc.Snapshot())
	require.NoError(t, svc.Refresh(ctx))

	snap := svc.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "a", snap[0].ID)

	st := svc.Status()
	assert.Equal(t, "fake", st.LastSource)
	assert.Equal(t, 1, st.LastCount)
	assert.Empty(t, st.LastError)
	assert.False(t, st.Running)
}

func TestRefresh_ErrorKeepsPreviousSnapshot(t *testing.T) {
	src := fixedSource(domain.School{ID: "a", Name: "Alpha"})
	svc, _ := newTestService(t, src)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx))

	src.fetch = func(context.Context) ([]domain.School, error) {
		return nil, errors.New("upstream down")
	}
	require.Error(t, svc.Refresh(ctx))

	snap := svc.Snapshot()
	require.Len(t, snap, 1, "failed refresh must not clear the catalog")
	assert.Equal(t, "upstream down", svc.Status().LastError)
}

func TestRefresh_StaleFetchCannotOvertakeNewerCommit(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	old := []domain.School{{ID: "old-1", Name: "Old 1"}, {ID: "old-2", Name: "Old 2"}}
	fresh := []domain.School{{ID: "fresh", Name: "Fresh"}}

	var first atomic.Bool
	first.Store(true)
	src := &fakeSource{fetch: func(context.Context) ([]domain.School, error) {
		if first.CompareAndSwap(true, false) {
			close(started)
			<-release // the first fetch is slow
			return old, nil
		}
		return fresh, nil
	}}
	svc, _ := newTestService(t, src)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = svc.Refresh(ctx) // slow, started first
	}()
	<-started

	// second refresh starts later but lands first
	require.NoError(t, svc.Refresh(ctx))
	close(release)
	wg.Wait()

	snap := svc.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "fresh", snap[0].ID, "a stale in-flight result must be discarded")

	// the status keeps describing the winning commit, not the loser
	st := svc.Status()
	assert.Equal(t, 1, st.LastCount)
	assert.False(t, st.Running)
}

func TestQuery_FullPipeline(t *testing.T) {
	strong := domain.School{ID: "strong", Name: "Strong U", State: "AL", MinGPA: f64(3.0)}
	weak := domain.School{ID: "weak", Name: "Weak U", State: "AL", MinGPA: f64(3.8), RequiresCCRN: true}
	other := domain.School{ID: "other", Name: "Other U", State: "TX", MinGPA: f64(3.0)}

	svc, profiles := newTestService(t, fixedSource(strong, weak, other))
	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))

	hasCCRN := false
	require.NoError(t, profiles.Save(ctx, profile.Fragments{
		Academic: domain.AcademicRecord{CumulativeGPA: f64(3.2)},
		Clinical: domain.ClinicalRecord{UnitType: str("ICU"), HasCCRN: &hasCCRN},
	}))

	svc.Saved.Save(ctx, "strong")
	svc.Saved.MakeTarget(ctx, "strong")

	crit := filter.Default()
	crit.States = []string{"AL"}

	got := svc.Query(ctx, crit, rank.SortSpec{Key: rank.SortByFitScore, Dir: "desc"}, "")
	require.Len(t, got, 2, "the TX school is filtered out")
	assert.Equal(t, "strong", got[0].ID)
	assert.Equal(t, "weak", got[1].ID)
	assert.Greater(t, got[0].Fit.Value, got[1].Fit.Value)
	assert.True(t, got[0].IsSaved)
	assert.True(t, got[0].IsTarget)
	assert.False(t, got[1].IsSaved)
}

func TestQuery_RecommendedGate(t *testing.T) {
	strong := domain.School{ID: "strong", Name: "Strong U", MinGPA: f64(3.0)}
	weak := domain.School{ID: "weak", Name: "Weak U", MinGPA: f64(3.8), RequiresCCRN: true}

	svc, profiles := newTestService(t, fixedSource(strong, weak))
	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))

	hasCCRN := false
	require.NoError(t, profiles.Save(ctx, profile.Fragments{
		Academic: domain.AcademicRecord{CumulativeGPA: f64(3.2)},
		Clinical: domain.ClinicalRecord{UnitType: str("ICU"), HasCCRN: &hasCCRN},
	}))

	got := svc.Query(ctx, filter.Default(), rank.SortSpec{}, schools.ViewModeRecommended)
	require.Len(t, got, 1, "below-threshold schools are gated in recommended mode")
	assert.Equal(t, "strong", got[0].ID)
}

func TestQuery_EmptyProfileStillLists(t *testing.T) {
	svc, _ := newTestService(t, fixedSource(
		domain.School{ID: "a", Name: "Alpha", MinGPA: f64(3.0)},
	))
	ctx := context.Background()
	require.NoError(t, svc.Refresh(ctx))

	got := svc.Query(ctx, filter.Default(), rank.SortSpec{}, "")
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Fit.Value, "nothing known scores zero, never errors")
}
