package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, Duration(800*time.Millisecond), cfg.Scoring.QuietPeriod)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen: ":9090"
database:
  type: postgres
  dsn: "host=db user=app dbname=assets"
scoring:
  remoteUrl: "https://scores.internal"
  quietPeriod: 1s
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "https://scores.internal", cfg.Scoring.RemoteURL)
	assert.Equal(t, Duration(time.Second), cfg.Scoring.QuietPeriod)
	// Untouched sections keep their defaults.
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/does/not/exist.yaml")
	assert.Error(t, err)
}
