package config

import (
	"strings"
	"time"
)

// APIConfig contains configuration for the upstream directory API.
type APIConfig struct {
	// BaseURL is the root of the directory API, including the /api
	// prefix (e.g., "https://api.deutschebedrijven.nl/api").
	BaseURL string `env:"DIRECTORY_API_BASE_URL" envDefault:"http://localhost:8080/api"`

	// Timeout bounds every request to the API.
	Timeout time.Duration `env:"DIRECTORY_API_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout <= 0 {
		a.Timeout = 10 * time.Second
	}
}
