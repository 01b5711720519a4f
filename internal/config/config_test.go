package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "localhost:9000", cfg.Minio.Endpoint)
	assert.Equal(t, "data", cfg.Minio.Bucket)
	assert.False(t, cfg.Minio.Secure)
	assert.Equal(t, "", cfg.Upload.BasePrefix)
	assert.Equal(t, 4, cfg.Upload.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "minio.internal:9000")
	t.Setenv("MINIO_BUCKET_NAME", "archive")
	t.Setenv("MINIO_SECURE", "true")
	t.Setenv("BASE_UPLOAD_PATH", "uploads")
	t.Setenv("UPLOAD_WORKERS", "8")

	cfg := Load()

	assert.Equal(t, "minio.internal:9000", cfg.Minio.Endpoint)
	assert.Equal(t, "archive", cfg.Minio.Bucket)
	assert.True(t, cfg.Minio.Secure)
	assert.Equal(t, "uploads", cfg.Upload.BasePrefix)
	assert.Equal(t, 8, cfg.Upload.Workers)
}

func TestLoad_WorkerFloor(t *testing.T) {
	t.Setenv("UPLOAD_WORKERS", "0")

	assert.Equal(t, 1, Load().Upload.Workers)
}

func TestLoad_FreshInstancePerCall(t *testing.T) {
	first := Load()
	second := Load()

	assert.NotSame(t, first, second)
}
