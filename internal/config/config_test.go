package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Thresholds.Promotional = 0.45
	cfg.Batch.Workers = 3
	cfg.RiskLog.Enabled = false

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "reference", cfg.Reference.Dir)
	assert.InDelta(t, 0.3, cfg.Thresholds.Promotional, 0.001)
	assert.InDelta(t, 100000, cfg.Thresholds.LargeAmount, 0.001)
	assert.Equal(t, filepath.Join("data", "smsledger.db"), cfg.Store.Path)
	assert.Zero(t, cfg.Batch.Workers)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.RiskLog.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("thresholds:\n  promotional: 0.5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cfg.Thresholds.Promotional, 0.001)
	assert.InDelta(t, 100000, cfg.Thresholds.LargeAmount, 0.001)
	assert.Equal(t, "reference", cfg.Reference.Dir)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("thresholds:\n  promotional: 1.5\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thresholds.promotional")
}

func TestSaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "dir: reference")
	assert.Contains(t, contents, "promotional: 0.3")
	assert.Contains(t, contents, "large_amount: 100000")
	assert.Contains(t, contents, "risk_log:")
}

func TestResolve_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Resolve(viper.New(), filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestResolve_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("thresholds:\n  promotional: 0.5\nbatch:\n  workers: 2\n"), 0o644))
	t.Setenv("SMSLEDGER_BATCH_WORKERS", "6")

	cfg, err := Resolve(viper.New(), path)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cfg.Thresholds.Promotional, 0.001)
	assert.Equal(t, 6, cfg.Batch.Workers)
	assert.Equal(t, "reference", cfg.Reference.Dir)
}

func TestResolve_InvalidEnv(t *testing.T) {
	t.Setenv("SMSLEDGER_THRESHOLDS_LARGE_AMOUNT", "-1")

	_, err := Resolve(viper.New(), "")
	require.Error(t, err)
}

func TestResolvePaths(t *testing.T) {
	cfg := Default()

	assert.Equal(t, filepath.Join("/proj", "reference"), cfg.ReferenceDir("/proj"))
	assert.Equal(t, filepath.Join("/proj", "data", "smsledger.db"), cfg.StorePath("/proj"))

	cfg.Store.Path = "/var/lib/sms.db"
	assert.Equal(t, "/var/lib/sms.db", cfg.StorePath("/proj"))
}
