package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, BackendFirebase, cfg.Backend)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.NotEmpty(t, cfg.S3Bucket)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":8080")
	t.Setenv("BACKEND", BackendPostgres)
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("S3_BUCKET", "override-bucket")

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.loadEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, BackendPostgres, cfg.Backend)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "override-bucket", cfg.S3Bucket)
}

func TestLoadEnvIgnoresEmptyAndInvalid(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("TOKEN_TTL", "not-a-duration")

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.loadEnv()

	assert.Equal(t, ":5000", cfg.Addr, "empty env value keeps the default")
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL, "invalid duration keeps the default")
}
