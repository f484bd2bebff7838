package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chara.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"cache_capacity: 128\nconfidence_threshold: 0.6\njobs: 8\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.CacheCapacity)
	assert.InDelta(t, 0.6, cfg.ConfidenceThreshold, 1e-9)
	assert.Equal(t, 8, cfg.Jobs)
	// Unset fields keep defaults.
	assert.InDelta(t, DefaultConfig().HintBonus, cfg.HintBonus, 1e-9)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chara.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_capacity: [not an int"), 0644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_NonPositiveValuesCorrected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chara.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_capacity: -5\njobs: 0\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Greater(t, cfg.CacheCapacity, 0)
	assert.Greater(t, cfg.Jobs, 0)
}
