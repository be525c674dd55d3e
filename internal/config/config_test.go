package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  port: 40001
remote:
  refresh_hours: 12
scoring:
  recommend_min_score: 70
  weights:
    gpa: 30
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40001, cfg.App.Port)
	assert.Equal(t, 12, cfg.Remote.RefreshHours)
	assert.Equal(t, 70, cfg.Scoring.RecommendMinScore)
	assert.Equal(t, 30.0, cfg.Scoring.Weights.GPA)
}

func TestSaveAtomic_RoundTripAndBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	var first Config
	first.App.Port = 40001
	require.NoError(t, SaveAtomic(path, first))

	var second Config
	second.App.Port = 40002
	require.NoError(t, SaveAtomic(path, second))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40002, got.App.Port)

	bak, err := Load(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, 40001, bak.App.Port)
}

func TestEnsureUserConfig_CopiesOnce(t *testing.T) {
	dataDir := t.TempDir()
	defaultPath := filepath.Join(t.TempDir(), "default.yml")
	require.NoError(t, os.WriteFile(defaultPath, []byte("app:\n  port: 40001\n"), 0o644))

	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)

	cfg, err := Load(userPath)
	require.NoError(t, err)
	assert.Equal(t, 40001, cfg.App.Port)

	// a user edit survives subsequent bootstraps
	require.NoError(t, os.WriteFile(userPath, []byte("app:\n  port: 50000\n"), 0o644))
	again, err := EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)
	assert.Equal(t, userPath, again)

	cfg, err = Load(userPath)
	require.NoError(t, err)
	assert.Equal(t, 50000, cfg.App.Port)
}
