package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_USER", "menuboard")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "menuboard")
	t.Setenv("JWT_SECRET", "a-long-enough-jwt-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "menuboard", cfg.DBUser)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DBUser")
	assert.Contains(t, err.Error(), "DBName")
	assert.Contains(t, err.Error(), "JWTSecret")
}

func TestValidateConfigShortSecret(t *testing.T) {
	cfg := &Config{
		ServerPort: "8080",
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "menuboard",
		DBName:     "menuboard",
		JWTSecret:  "short",
	}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWTSecret")
}
