package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Store   StoreConfig   `mapstructure:"store"   validate:"required"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig contains all server-related configuration settings.
// LogLevel is matched case-insensitively by the logger; unknown names fall
// back to info with a warning rather than failing startup.
type ServerConfig struct {
	Port                   int      `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level"                validate:"required"`
	Version                string   `mapstructure:"version"                  validate:"required"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// StoreConfig contains settings for the task store.
type StoreConfig struct {
	// SeedDemoData inserts a handful of sample tasks at startup.
	SeedDemoData bool `mapstructure:"seed_demo_data"`
	// DefaultPageLimit is the list limit used when a request does not supply one.
	DefaultPageLimit int `mapstructure:"default_page_limit" validate:"gt=0"`
}

// AuthConfig contains settings for the optional bearer-token guard.
// An empty JWTSecret disables authentication entirely.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// Enabled reports whether mutating routes require a bearer token.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

// MetricsConfig contains Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"    validate:"required,startswith=/"`
}
