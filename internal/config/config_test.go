package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, time.Hour, cfg.Auth.TokenExpiry)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.False(t, cfg.ReadingLists.UniqueTitles)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("TOKEN_EXPIRY", "30m")
	t.Setenv("READING_LIST_UNIQUE_TITLES", "true")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "super-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenExpiry)
	assert.True(t, cfg.ReadingLists.UniqueTitles)
}
