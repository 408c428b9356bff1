package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 500, cfg.Sweep.BatchSize)
	assert.Equal(t, 500, cfg.Sweep.PageSize)
	assert.Equal(t, 50, cfg.Sweep.SampleLimit)
	assert.Contains(t, cfg.Sweep.ExcludedFolders, "generated/invoices")
	assert.Contains(t, cfg.Sweep.ExcludedFolders, "chat/attachments")
	assert.Equal(t, 64, cfg.Deletion.QueueDepth)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
}

func TestValidateRequiresDatabasePath(t *testing.T) {
	cfg := Default()
	cfg.MediaStore.Bucket = "mentora-media"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.path")
}

func TestValidateRequiresBucket(t *testing.T) {
	cfg := Default()
	cfg.Database.Path = "/var/lib/mentora/app.db"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mediaStore.bucket")
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assetgc.yaml")
	data := `
database:
  path: /var/lib/mentora/app.db
mediaStore:
  bucket: mentora-media
  endpoint: http://localhost:9000
  usePathStyle: true
sweep:
  batchSize: 100
  excludedFolders:
    - generated/invoices
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/mentora/app.db", cfg.Database.Path)
	assert.Equal(t, "mentora-media", cfg.MediaStore.Bucket)
	assert.True(t, cfg.MediaStore.UsePathStyle)
	assert.Equal(t, 100, cfg.Sweep.BatchSize)
	// File value replaces the default list entirely.
	assert.Equal(t, []string{"generated/invoices"}, cfg.Sweep.ExcludedFolders)
	// Untouched sections keep defaults.
	assert.Equal(t, 500, cfg.Sweep.PageSize)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ASSETGC_DB_PATH", "/tmp/env.db")
	t.Setenv("ASSETGC_S3_BUCKET", "env-bucket")
	t.Setenv("ASSETGC_SWEEP_BATCH_SIZE", "25")
	t.Setenv("ASSETGC_S3_PATH_STYLE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
	assert.Equal(t, "env-bucket", cfg.MediaStore.Bucket)
	assert.Equal(t, 25, cfg.Sweep.BatchSize)
	assert.True(t, cfg.MediaStore.UsePathStyle)
}

func TestEnvOverrideIgnoresBadInt(t *testing.T) {
	t.Setenv("ASSETGC_DB_PATH", "/tmp/env.db")
	t.Setenv("ASSETGC_S3_BUCKET", "env-bucket")
	t.Setenv("ASSETGC_SWEEP_BATCH_SIZE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Sweep.BatchSize)
}
