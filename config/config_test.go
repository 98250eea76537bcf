package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "configured-secret")
	assert.Equal(t, []byte("configured-secret"), JWTSecret())
	assert.Equal(t, "configured-secret", Load().JWTSecret)

	// t.Setenv registered the restore; unset to exercise the fallback.
	require.NoError(t, os.Unsetenv("JWT_SECRET"))
	assert.Equal(t, []byte(defaultJWTSecret), JWTSecret())
	assert.Equal(t, defaultJWTSecret, Load().JWTSecret)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	require.NoError(t, os.Unsetenv("PORT"))

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./static/uploads", cfg.UploadDir)
}
