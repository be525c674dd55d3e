package identity_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolscout-engine/internal/identity"
	"schoolscout-engine/internal/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))
	return db
}

func TestLoad_MintsAndPersistsAnonID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	m1 := identity.Load(ctx, db.Pool)
	require.NotEmpty(t, m1.AnonID())

	m2 := identity.Load(ctx, db.Pool)
	assert.Equal(t, m1.AnonID(), m2.AnonID(), "anon id is stable across restarts")
}

func TestSession_SurvivesRestart(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	m1 := identity.Load(ctx, db.Pool)
	m1.SetSession("user-1")

	m2 := identity.Load(ctx, db.Pool)
	id, ok := m2.Session()
	assert.True(t, ok, "session identity persists across restarts")
	assert.Equal(t, "user-1", id)

	m2.ClearSession()
	m3 := identity.Load(ctx, db.Pool)
	_, ok = m3.Session()
	assert.False(t, ok, "a cleared session stays cleared")
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	m := identity.Load(context.Background(), db.Pool)

	_, ok := m.Session()
	assert.False(t, ok, "fresh identity is anonymous")

	m.SetSession("user-1")
	id, ok := m.Session()
	assert.True(t, ok)
	assert.Equal(t, "user-1", id)

	m.ClearSession()
	_, ok = m.Session()
	assert.False(t, ok)
}
