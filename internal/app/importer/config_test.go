package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeder.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source_path: /data/gpus.json\ndry_run: true\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/gpus.json", cfg.SourcePath)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("SEEDER_SOURCE_PATH", "/env/gpus.json")
	t.Setenv("SEEDER_DEFAULT_CURRENCY", "EUR")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/env/gpus.json", cfg.SourcePath)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	assert.False(t, cfg.DryRun)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
