package saved_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolscout-engine/internal/saved"
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

func TestSQLiteLocal_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	l := saved.SQLiteLocal{DB: db.Pool}

	savedIDs, targetIDs := l.Load()
	assert.Empty(t, savedIDs)
	assert.Empty(t, targetIDs)

	require.NoError(t, l.Store([]string{"a", "b"}, []string{"b"}))

	savedIDs, targetIDs = l.Load()
	assert.Equal(t, []string{"a", "b"}, savedIDs)
	assert.Equal(t, []string{"b"}, targetIDs)
}

func TestSQLiteLocal_CorruptCacheReadsEmpty(t *testing.T) {
	db := openTestDB(t)
	l := saved.SQLiteLocal{DB: db.Pool}

	require.NoError(t, store.SetKV(context.Background(), db.Pool, "schoolscout:saved_ids", "{broken"))
	require.NoError(t, store.SetKV(context.Background(), db.Pool, "schoolscout:target_ids", `["ok"]`))

	savedIDs, targetIDs := l.Load()
	assert.Empty(t, savedIDs, "corrupt JSON is coerced to an empty list")
	assert.Equal(t, []string{"ok"}, targetIDs)
}

func TestStoreOverSQLite_SurvivesRestart(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	s1 := saved.New(saved.SQLiteLocal{DB: db.Pool}, nil, nil)
	s1.Save(ctx, "a")
	s1.MakeTarget(ctx, "b")

	// a fresh store over the same database sees the same state
	s2 := saved.New(saved.SQLiteLocal{DB: db.Pool}, nil, nil)
	assert.Equal(t, []string{"a", "b"}, s2.SavedIDs())
	assert.Equal(t, []string{"b"}, s2.TargetIDs())
}
