package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	cfg, err := FromViper(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, AuthModeDev, cfg.AuthMode)
	assert.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
	assert.Equal(t, "http://localhost:8080/mcp", cfg.ResourceURL())
	assert.Equal(t, 720*time.Hour, cfg.LogRetention)
	assert.Equal(t, []string{"lists.read", "lists.write"}, cfg.OAuthScopes)
	assert.False(t, cfg.DevToolsEnabled)
	assert.Contains(t, cfg.DSN(), "sslmode=disable")
}

func TestFromViperReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AUTH_MODE", "OAuth")
	t.Setenv("OAUTH_ISSUER", "https://auth.example.com/")
	t.Setenv("OAUTH_AUDIENCE", "listshare")
	t.Setenv("PUBLIC_BASE_URL", "https://lists.example.com/")
	t.Setenv("DB_SSL", "true")
	t.Setenv("DEV_TOOLS_ENABLED", "true")
	t.Setenv("LOG_RETENTION", "48h")

	cfg, err := FromViper(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, AuthModeOAuth, cfg.AuthMode)
	assert.Equal(t, "https://auth.example.com", cfg.OAuthIssuer)
	assert.Equal(t, "https://auth.example.com/.well-known/jwks.json", cfg.OAuthJWKSURL)
	assert.Equal(t, "https://lists.example.com/mcp", cfg.ResourceURL())
	assert.Equal(t, 48*time.Hour, cfg.LogRetention)
	assert.True(t, cfg.DevToolsEnabled)
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}

func TestDatabaseURLOverridesParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/lists")
	cfg, err := FromViper(NewViper())
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/lists", cfg.DSN())
}

func TestValidateRejectsUnknownAuthMode(t *testing.T) {
	t.Setenv("AUTH_MODE", "basic")
	_, err := FromViper(NewViper())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_MODE")
}

func TestValidateRejectsDevModeInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	_, err := FromViper(NewViper())
	require.Error(t, err)

	t.Setenv("AUTH_MODE", "oauth")
	_, err = FromViper(NewViper())
	require.NoError(t, err, "missing oauth settings are not a startup error")
}
