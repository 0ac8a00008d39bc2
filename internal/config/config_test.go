package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("{}\n"), 0o600))
	t.Setenv(ConfigPathEnvVar, empty)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 12, cfg.ResultLimit)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, SourcePostgres, cfg.CorpusSource)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "port: 9000\ncorpus_source: csv\ndataset_path: data.csv\nresult_limit: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RESULT_LIMIT", "20")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("MIN_SCORE", "0.25")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, SourceCSV, cfg.CorpusSource)
	assert.Equal(t, "data.csv", cfg.DatasetPath)
	assert.Equal(t, 20, cfg.ResultLimit)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.InDelta(t, 0.25, cfg.MinScore, 1e-12)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Port = 0
	cfg.CorpusSource = "s3"
	cfg.ResultLimit = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
	assert.Contains(t, err.Error(), "corpus_source")
	assert.Contains(t, err.Error(), "result_limit")
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSOrigins: "http://localhost:5173, https://yes-chef.app ,"}
	assert.Equal(t, []string{"http://localhost:5173", "https://yes-chef.app"}, cfg.AllowedOrigins())
}
