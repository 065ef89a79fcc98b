package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/engramdb/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.Storage.DataPath)
	assert.Equal(t, "stub-deterministic", cfg.Embedding.Model)
	assert.Equal(t, 1000, cfg.Embedding.CacheSize)
	assert.Equal(t, 2000, cfg.Index.SizeThreshold)
	assert.True(t, cfg.Features.EnableVectorSearch)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("ENGRAMDB_DATA_PATH", "/tmp/custom")
	t.Setenv("ENGRAMDB_EMBEDDING_CACHE_SIZE", "500")
	t.Setenv("ENGRAMDB_ENABLE_HYBRID_RANKER", "false")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom", cfg.Storage.DataPath)
	assert.Equal(t, 500, cfg.Embedding.CacheSize)
	assert.False(t, cfg.Features.EnableHybridRanker)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  datapath: /srv/engramdb\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/engramdb", cfg.Storage.DataPath)
}

func TestLoad_MissingYAMLFileIsNotAnError(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "./data", cfg.Storage.DataPath)
}
