package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultPath), false, nil)
	require.NoError(t, err)

	assert.Equal(t, StoreFile, cfg.Store.Kind)
	assert.Equal(t, ".", cfg.Store.Dir)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "localhost:6379", cfg.Store.Redis.Addr)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_MissingRequired(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true, nil)
	assert.Error(t, err)
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "voyager.yaml", `
root_url: https://cdn.example.org/scenes/
log_level: debug
store:
  kind: redis
  redis:
    addr: redis:6379
    db: 2
    ttl: 1h30m
`)
	cfg, err := Load(path, true, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.org/scenes/", cfg.RootURL)
	assert.Equal(t, StoreRedis, cfg.Store.Kind)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, 90*time.Minute, cfg.Store.Redis.TTL)
	assert.Equal(t, ".", cfg.Store.Dir, "unset keys keep their defaults")
}

func TestLoad_JSONWithOverrides(t *testing.T) {
	path := write(t, "voyager.json", `{"store": {"kind": "file", "dir": "scenes"}}`)
	cfg, err := Load(path, true, map[string]any{"store.dir": "other", "log_level": "warn"})
	require.NoError(t, err)

	assert.Equal(t, "other", cfg.Store.Dir)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown kind", "store:\n  kind: s3\n"},
		{"unknown key", "colour: red\n"},
		{"bad level", "log_level: loud\n"},
		{"http without base", "store:\n  kind: http\n"},
		{"malformed", "store: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, "voyager.yaml", tt.content), true, nil)
			assert.Error(t, err)
		})
	}
}
