// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: "scholarship-portal"
database:
  mongo:
    uri: "mongodb://localhost:27017"
    database: "scholarships"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, "applications", cfg.Database.Mongo.Collection)

	assert.Equal(t, 5, cfg.RateLimit.Submission.MaxRequests)
	assert.Equal(t, 60000, cfg.RateLimit.Submission.Window)
	assert.Equal(t, 3, cfg.RateLimit.Status.MaxRequests)
	assert.Equal(t, 10, cfg.RateLimit.Bucket.Capacity)
	assert.Equal(t, 0.5, cfg.RateLimit.Bucket.RefillRate)

	assert.Equal(t, 3600000, cfg.Frequency.MinInterval)
	assert.Equal(t, int64(2<<20), cfg.Uploads.MaxDocumentBytes)
	assert.Equal(t, int64(1<<20), cfg.Uploads.MaxPhotoBytes)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFileRejectsMissingMongoURI(t *testing.T) {
	path := writeConfig(t, `
app:
  name: "scholarship-portal"
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.mongo.uri")
}

func TestLoadFromFileRejectsRedisWithoutAddress(t *testing.T) {
	path := writeConfig(t, `
database:
  mongo:
    uri: "mongodb://localhost:27017"
    database: "scholarships"
  redis:
    enabled: true
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.redis.address")
}

func TestIsProduction(t *testing.T) {
	assert.True(t, AppConfig{Environment: "production"}.IsProduction())
	assert.False(t, AppConfig{Environment: "development"}.IsProduction())
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, "1m0s", GetDuration(60000).String())
}
