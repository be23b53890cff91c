package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "allow", cfg.OnConflict)
	assert.Equal(t, "git", cfg.GitPath)
	assert.Equal(t, DefaultDBFile, filepath.Base(cfg.DBPath))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().OnConflict, cfg.OnConflict)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "db_path: /tmp/ids.sqlite3\non_conflict: reject\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ids.sqlite3", cfg.DBPath)
	assert.Equal(t, "reject", cfg.OnConflict)
	// Unset fields keep their defaults.
	assert.Equal(t, "git", cfg.GitPath)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: [broken"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("COMMIT_AS_DB overrides db path", func(t *testing.T) {
		t.Setenv("COMMIT_AS_DB", "/tmp/override.sqlite3")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/tmp/override.sqlite3", cfg.DBPath)
	})

	t.Run("COMMIT_AS_ON_CONFLICT overrides conflict mode", func(t *testing.T) {
		t.Setenv("COMMIT_AS_ON_CONFLICT", "replace")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "replace", cfg.OnConflict)
	})

	t.Run("environment beats config file", func(t *testing.T) {
		t.Setenv("COMMIT_AS_DB", "/tmp/env-wins.sqlite3")

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("db_path: /tmp/file-loses.sqlite3\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/env-wins.sqlite3", cfg.DBPath)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := &Config{DBPath: "/tmp/ids.sqlite3", OnConflict: "reject", GitPath: "git"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.DBPath, loaded.DBPath)
	assert.Equal(t, cfg.OnConflict, loaded.OnConflict)
}
