package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahulNewbie/rest-app/internal/catalog"
	"github.com/RahulNewbie/rest-app/internal/config"
	"github.com/RahulNewbie/rest-app/internal/history"
	"github.com/RahulNewbie/rest-app/internal/logging"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("RESTAPP_CONFIG", "")

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, config.DefaultRefreshInterval, cfg.Refresh.Interval)
}

func TestLoadConfig_DiscoversFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restapp.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 9001\n"), 0o644))
	t.Setenv("RESTAPP_CONFIG", path)

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Server.Port)
}

func TestLoadConfig_BrokenEnvPathFails(t *testing.T) {
	t.Setenv("RESTAPP_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	_, err := loadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_ExplicitPathInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[output]\nformat = \"xml\"\n"), 0o644))

	_, err := loadConfig(path)
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.True(t, cfgErr.HasErrors())
}

func TestPruneHistory(t *testing.T) {
	db, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := history.NewStore(db)

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, store.Record(context.Background(), catalog.Attempt{StartedAt: old, FinishedAt: old}))
	require.NoError(t, store.Record(context.Background(), catalog.Attempt{StartedAt: time.Now(), FinishedAt: time.Now()}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pruneHistory(store, 24*time.Hour, logging.Discard())(ctx) }()

	assert.Eventually(t, func() bool {
		entries, err := store.Recent(context.Background(), 10)
		return err == nil && len(entries) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("prune job did not stop")
	}
}
