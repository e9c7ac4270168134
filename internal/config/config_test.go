package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TABLEBOOK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "", cfg.API.BaseURL)
	require.Equal(t, 10, cfg.API.TimeoutSeconds)
	require.Equal(t, int64(1), cfg.Session.UserID)
	require.Equal(t, 10, cfg.UI.PageSize)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "file", cfg.Logging.Output)
	require.Equal(t, ":8085", cfg.Server.Addr)
	require.Contains(t, cfg.Database.Path, "tablebook.db")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "http://localhost:9000"

[ui]
page_size = 25

[session]
user_id = 42
`), 0o644))
	t.Setenv("TABLEBOOK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9000", cfg.API.BaseURL)
	require.Equal(t, 25, cfg.UI.PageSize)
	require.Equal(t, int64(42), cfg.Session.UserID)
	// untouched keys keep their defaults
	require.Equal(t, ":8085", cfg.Server.Addr)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("TABLEBOOK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.UI.PageSize = 7
	cfg.API.BaseURL = "http://127.0.0.1:8085"
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7, got.UI.PageSize)
	require.Equal(t, "http://127.0.0.1:8085", got.API.BaseURL)
}
