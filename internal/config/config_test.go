package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "resume-builder", cfg.Auth.Issuer)
	assert.Equal(t, 2.0, cfg.Export.Scale)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PORT", "8081")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("RASTERIZER", "chrome")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("PUBLIC_BASE_URL", "https://cv.example.com")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8081", cfg.HTTP.Addr())
	assert.Equal(t, RasterizerChrome, cfg.Export.Rasterizer)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "https://cv.example.com", cfg.HTTP.PublicBaseURL)
}

func TestRejectsUnknownRasterizer(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("RASTERIZER", "gpu")
	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RASTERIZER")
}

func TestRejectsWeakJWTSecret(t *testing.T) {
	for name, secret := range map[string]string{
		"empty": "",
		"short": "change-me-in-production",
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", secret)
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "JWT_SECRET")
		})
	}
}
