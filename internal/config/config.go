package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	AuthModeDev   = "dev"
	AuthModeOAuth = "oauth"
)

type Config struct {
	// Server
	Port          string
	AppEnv        string
	PublicBaseURL string
	CORSOrigins   string

	// Logging
	LogLevel     string
	LogRetention time.Duration

	// Database
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSL       bool

	// Identity
	AuthMode      string
	DevUserID     string
	DevHandle     string
	OAuthIssuer   string
	OAuthAudience string
	OAuthJWKSURL  string
	OAuthScopes   []string

	// Dev tools
	DevToolsEnabled bool

	SentryDSN string
}

// NewViper returns a viper instance reading the environment, with the
// defaults applied. Callers may bind command-line flags onto it before
// calling FromViper.
func NewViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_RETENTION", "720h")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "listshare")
	v.SetDefault("DB_SSL", false)
	v.SetDefault("AUTH_MODE", AuthModeDev)
	v.SetDefault("DEV_USER_ID", "dev-user")
	v.SetDefault("DEV_HANDLE", "dev")
	v.SetDefault("OAUTH_SCOPES", "lists.read,lists.write")
	v.SetDefault("DEV_TOOLS_ENABLED", false)
	return v
}

// LoadDotEnv copies an optional .env file into the environment. Variables
// that are already set win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:          v.GetString("PORT"),
		AppEnv:        v.GetString("APP_ENV"),
		PublicBaseURL: strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		CORSOrigins:   v.GetString("CORS_ORIGINS"),

		LogLevel:     strings.ToLower(v.GetString("LOG_LEVEL")),
		LogRetention: parseDuration(v.GetString("LOG_RETENTION"), 720*time.Hour),

		DatabaseURL: v.GetString("DATABASE_URL"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBUser:      v.GetString("DB_USER"),
		DBPassword:  v.GetString("DB_PASSWORD"),
		DBName:      v.GetString("DB_NAME"),
		DBSSL:       v.GetBool("DB_SSL"),

		AuthMode:      strings.ToLower(strings.TrimSpace(v.GetString("AUTH_MODE"))),
		DevUserID:     v.GetString("DEV_USER_ID"),
		DevHandle:     v.GetString("DEV_HANDLE"),
		OAuthIssuer:   strings.TrimRight(v.GetString("OAUTH_ISSUER"), "/"),
		OAuthAudience: v.GetString("OAUTH_AUDIENCE"),
		OAuthJWKSURL:  v.GetString("OAUTH_JWKS_URL"),
		OAuthScopes:   splitList(v.GetString("OAUTH_SCOPES")),

		DevToolsEnabled: v.GetBool("DEV_TOOLS_ENABLED"),

		SentryDSN: v.GetString("SENTRY_DSN"),
	}

	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + cfg.Port
	}
	if cfg.OAuthJWKSURL == "" && cfg.OAuthIssuer != "" {
		cfg.OAuthJWKSURL = cfg.OAuthIssuer + "/.well-known/jwks.json"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate only rejects settings that make the process unsafe to start.
// Incomplete OAuth settings are reported per request instead.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeDev, AuthModeOAuth:
	default:
		return fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeDev, AuthModeOAuth, c.AuthMode)
	}
	if c.IsProduction() && c.AuthMode == AuthModeDev {
		return fmt.Errorf("AUTH_MODE=%s is not allowed when APP_ENV=production", AuthModeDev)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// ResourceURL is the protected resource identifier advertised to MCP clients.
func (c *Config) ResourceURL() string {
	return c.PublicBaseURL + "/mcp"
}

func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	sslMode := "disable"
	if c.DBSSL {
		sslMode = "require"
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + sslMode +
		" TimeZone=UTC"
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
