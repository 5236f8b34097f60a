package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Construction Co")
	cfg.Database.Path = "books/test.db"
	cfg.Thresholds.MinCollectionRatio = 85

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Company.Name, got.Company.Name)
	assert.Equal(t, cfg.Company.Currency, got.Company.Currency)
	assert.Equal(t, "books/test.db", got.Database.Path)
	assert.Equal(t, cfg.Cash.AccountCode, got.Cash.AccountCode)
	assert.InDelta(t, 85, got.Thresholds.MinCollectionRatio, 0.001)
	assert.InDelta(t, cfg.Thresholds.MaxDebtToAssets, got.Thresholds.MaxDebtToAssets, 0.001)
	assert.Equal(t, cfg.Backup.Dir, got.Backup.Dir)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Al-Rafidain Builders")

	assert.Equal(t, "Al-Rafidain Builders", cfg.Company.Name)
	assert.Equal(t, "IQD", cfg.Company.Currency)
	assert.Equal(t, "sitebook.db", cfg.Database.Path)
	assert.Equal(t, "1010", cfg.Cash.AccountCode)
	assert.InDelta(t, 70, cfg.Thresholds.MinCollectionRatio, 0.001)
	assert.InDelta(t, 1.0, cfg.Thresholds.MaxDebtToAssets, 0.001)
	assert.Equal(t, "backups", cfg.Backup.Dir)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Construction Co")
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Construction Co")
	assert.Contains(t, contents, "currency: IQD")
	assert.Contains(t, contents, "account_code: \"1010\"")
	assert.Contains(t, contents, "min_collection_ratio: 70")
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(EnvDatabasePath, "/tmp/override.db")
	t.Setenv(EnvCurrency, "USD")

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default("Test")))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", got.Database.Path)
	assert.Equal(t, "USD", got.Company.Currency)
}

func TestDotEnvFile(t *testing.T) {
	t.Setenv(EnvDatabasePath, "")
	os.Unsetenv(EnvDatabasePath)

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, Save(path, Default("Test")))
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(EnvDatabasePath+"=from_dotenv.db\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv.db", got.Database.Path)
}
