// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, an optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

// Store backend identifiers.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreBackend selects the persistence engine: memory or postgres.
	StoreBackend string `koanf:"store_backend"`

	// PostgresDSN is the connection string for the postgres backend.
	PostgresDSN string `koanf:"postgres_dsn"`

	// JWTSecret verifies bearer tokens issued by the identity provider.
	JWTSecret string `koanf:"jwt_secret"`

	// SearchCaseSensitive controls dashboard search matching.
	SearchCaseSensitive bool `koanf:"search_case_sensitive"`

	// RecentAttemptLimit bounds the dashboard recent-attempts list.
	RecentAttemptLimit int `koanf:"recent_attempt_limit"`

	// ActivityFeedLimit bounds the merged recent-activity feed.
	ActivityFeedLimit int `koanf:"activity_feed_limit"`

	// RecentInterviewLimit bounds the interviews drawn into the feed.
	RecentInterviewLimit int `koanf:"recent_interview_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		StoreBackend:         BackendMemory,
		PostgresDSN:          "",
		JWTSecret:            "dev-secret",
		SearchCaseSensitive:  false,
		RecentAttemptLimit:   10,
		ActivityFeedLimit:    5,
		RecentInterviewLimit: 5,
	}
}
