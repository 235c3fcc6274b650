package config

import "time"

// SessionConfig controls browser session behavior.
type SessionConfig struct {
	// TTL caps a session's lifetime when the API token carries no
	// readable expiry of its own.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// CookieSecure marks the session cookie Secure. Disable only for
	// plain-HTTP local development.
	CookieSecure bool `env:"SESSION_COOKIE_SECURE" envDefault:"true"`

	// KeyPrefix namespaces session keys in Redis.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"session:"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = 24 * time.Hour
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "session:"
	}
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}
